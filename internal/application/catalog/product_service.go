package catalog

import (
	"context"

	"github.com/futurevend/backend/internal/domain/catalog"
	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles vending product operations
type ProductService struct {
	productRepo catalog.ProductRepository
	uniqueness  *integrity.UniquenessValidator
	guard       *integrity.DeletionGuard
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	uniqueness *integrity.UniquenessValidator,
	guard *integrity.DeletionGuard,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		uniqueness:  uniqueness,
		guard:       guard,
		logger:      logger,
	}
}

// Create creates a new vending product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewVendingProduct(tenantID, req.details())
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, product, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Vending product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("plu", product.PLU),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	filter = filter.Normalize()

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update replaces a product's fields
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.details()); err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, product, product.ID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product that no transaction references
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return err
	}

	if err := s.guard.CanDelete(ctx, integrity.KindVendingProduct, productID); err != nil {
		return err
	}

	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}

func (s *ProductService) checkUnique(ctx context.Context, product *catalog.VendingProduct, excludeID uuid.UUID) error {
	return s.uniqueness.Validate(ctx, integrity.KindVendingProduct, product.TenantID, excludeID,
		integrity.Key{Field: integrity.FieldPLU, Value: product.PLU},
	)
}
