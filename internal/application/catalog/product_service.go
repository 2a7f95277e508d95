package catalog

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, supplierRepo partner.SupplierRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Code, req.Barcode, req.Unit); err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		if err := product.AdjustStock(req.Quantity); err != nil {
			return nil, err
		}
	}
	product.MinStockLevel = req.MinStockLevel

	if err := s.applyPrices(product, req.CostPrice, req.PurchasePrice, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := s.applySupplier(ctx, product, req.SupplierID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update updates a product's descriptive fields, prices and supplier.
// Stock is deliberately not writable here.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found").
				WithDetail("product_id", id)
		}
		return nil, err
	}

	if err := product.Update(req.Name, req.Code, req.Barcode, req.Unit); err != nil {
		return nil, err
	}
	product.MinStockLevel = req.MinStockLevel

	if err := s.applyPrices(product, req.CostPrice, req.PurchasePrice, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := s.applySupplier(ctx, product, req.SupplierID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get loads one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found").
				WithDetail("product_id", id)
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*ProductListResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *toProductResponse(&products[i]))
	}
	return &ProductListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found").
				WithDetail("product_id", id)
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) applyPrices(product *catalog.Product, cost, purchase, selling *decimal.Decimal) error {
	costM := valueobject.NewMoney(product.CostPrice)
	purchaseM := valueobject.NewMoney(product.PurchasePrice)
	sellingM := valueobject.NewMoney(product.SellingPrice)
	if cost != nil {
		costM = valueobject.NewMoney(*cost)
	}
	if purchase != nil {
		purchaseM = valueobject.NewMoney(*purchase)
	}
	if selling != nil {
		sellingM = valueobject.NewMoney(*selling)
	}
	return product.SetPrices(costM, purchaseM, sellingM)
}

func (s *ProductService) applySupplier(ctx context.Context, product *catalog.Product, supplierID *uuid.UUID) error {
	if supplierID == nil {
		return nil
	}
	supplier, err := s.supplierRepo.FindByID(ctx, *supplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier not found").
				WithDetail("supplier_id", *supplierID)
		}
		return err
	}
	product.SetSupplier(supplier.ID, supplier.Name)
	return nil
}
