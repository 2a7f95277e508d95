package catalog

import (
	"context"
	"testing"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product with opening stock and supplier snapshot", func(t *testing.T) {
		products := new(MockProductRepository)
		suppliers := new(MockSupplierRepository)
		service := NewProductService(products, suppliers)

		supplier, err := partner.NewSupplier("Globex Supplies", "555-0200")
		require.NoError(t, err)

		suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
		products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:          "Widget",
			Code:          "WID-1",
			Quantity:      25,
			MinStockLevel: 5,
			CostPrice:     decimalPtr(60),
			PurchasePrice: decimalPtr(55),
			SellingPrice:  decimalPtr(100),
			SupplierID:    &supplier.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget", resp.Name)
		assert.Equal(t, 25, resp.Quantity)
		assert.Equal(t, "Globex Supplies", resp.SupplierName)
		assert.Equal(t, "100.00", resp.SellingPrice.StringFixed(2))
		assert.False(t, resp.LowStock)
		products.AssertExpectations(t)
	})

	t.Run("rejects selling below cost", func(t *testing.T) {
		products := new(MockProductRepository)
		service := NewProductService(products, new(MockSupplierRepository))

		_, err := service.Create(ctx, CreateProductRequest{
			Name:         "Widget",
			CostPrice:    decimalPtr(60),
			SellingPrice: decimalPtr(50),
		})

		assert.True(t, shared.IsCode(err, "INVALID_PRICE"))
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), new(MockSupplierRepository))

		_, err := service.Create(ctx, CreateProductRequest{Name: "  "})
		assert.True(t, shared.IsCode(err, "INVALID_PRODUCT_NAME"))
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("does not touch stock", func(t *testing.T) {
		products := new(MockProductRepository)
		service := NewProductService(products, new(MockSupplierRepository))

		product, err := catalog.NewProduct("Widget")
		require.NoError(t, err)
		require.NoError(t, product.AdjustStock(7))

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		products.On("Save", mock.Anything, product).Return(nil)

		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Name:          "Widget Mk2",
			MinStockLevel: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget Mk2", resp.Name)
		assert.Equal(t, 7, resp.Quantity)
	})

	t.Run("reports a missing product", func(t *testing.T) {
		products := new(MockProductRepository)
		service := NewProductService(products, new(MockSupplierRepository))

		id := uuid.New()
		products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateProductRequest{Name: "Widget"})
		assert.True(t, shared.IsCode(err, "PRODUCT_NOT_FOUND"))
	})
}
