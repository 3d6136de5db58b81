package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"go.uber.org/zap"
)

// CatalogService handles brand and product operations
type CatalogService struct {
	brands   commerce.BrandRepository
	products commerce.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(brands commerce.BrandRepository, products commerce.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{brands: brands, products: products, logger: logger}
}

// GetBrand loads one brand by id.
func (s *CatalogService) GetBrand(ctx context.Context, id uuid.UUID) (*commerce.Brand, error) {
	return s.brands.GetByID(ctx, nil, id)
}

// CreateBrand validates the input and persists a new brand.
func (s *CatalogService) CreateBrand(ctx context.Context, in CreateBrandInput) (*commerce.Brand, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	brand, err := commerce.NewBrand(in.Name)
	if err != nil {
		return nil, err
	}
	if err := s.brands.Create(ctx, nil, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand, leaving its products brandless.
func (s *CatalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.brands.Delete(ctx, nil, id)
}

// GetProduct loads one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*commerce.Product, error) {
	return s.products.GetByID(ctx, nil, id)
}

// CreateProduct validates the input and persists a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*commerce.Product, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	product, err := commerce.NewProduct(commerce.ProductKind(in.Kind), in.Name)
	if err != nil {
		return nil, err
	}
	product.Description = in.Description
	product.SKU = in.SKU
	product.BrandID = in.BrandID
	if err := s.products.Create(ctx, nil, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	return product, nil
}

// DeleteProduct removes a product. Configurations referencing it go with it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, nil, id)
}
