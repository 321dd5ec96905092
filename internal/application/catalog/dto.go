package catalog

import (
	"time"

	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ProductRequest is the body for creating or replacing a vending product
type ProductRequest struct {
	PLU         string `json:"plu" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Category    string `json:"category" binding:"max=100"`
}

func (r ProductRequest) details() catalog.ProductDetails {
	return catalog.ProductDetails{
		PLU:         r.PLU,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
}

// ProductResponse represents a vending product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	PLU         string    `json:"plu"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain VendingProduct to ProductResponse
func ToProductResponse(p *catalog.VendingProduct) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		PLU:         p.PLU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.VendingProduct) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
