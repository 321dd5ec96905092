package partner

import (
	"time"

	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CustomerRequest is the body for creating or replacing a customer
type CustomerRequest struct {
	CompanyName string `json:"company_name" binding:"max=200"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Address     string `json:"address" binding:"max=300"`
	City        string `json:"city" binding:"max=100"`
	PostCode    string `json:"post_code" binding:"max=20"`
	Country     string `json:"country" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	TaxNumber   string `json:"tax_number" binding:"required,max=50"`
}

func (r CustomerRequest) details() partner.CustomerDetails {
	return partner.CustomerDetails{
		CompanyName: r.CompanyName,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Address:     r.Address,
		City:        r.City,
		PostCode:    r.PostCode,
		Country:     r.Country,
		Phone:       r.Phone,
		Email:       r.Email,
		TaxNumber:   r.TaxNumber,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	CompanyName string    `json:"company_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PostCode    string    `json:"post_code"`
	Country     string    `json:"country"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	TaxNumber   string    `json:"tax_number"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		CompanyName: c.CompanyName,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Address:     c.Address,
		City:        c.City,
		PostCode:    c.PostCode,
		Country:     c.Country,
		Phone:       c.Phone,
		Email:       c.Email,
		TaxNumber:   c.TaxNumber,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
