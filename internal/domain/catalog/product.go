package catalog

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product/SKU in the catalog. It doubles as the
// inventory record: Quantity is the on-hand stock shared by every sale,
// purchase and return that references the product.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Code          string          `gorm:"type:varchar(50);index"`
	Barcode       string          `gorm:"type:varchar(50);index"`
	Unit          string          `gorm:"type:varchar(20)"`
	Quantity      int             `gorm:"not null;default:0"` // On-hand stock
	MinStockLevel int             `gorm:"not null;default:0"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName  string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, code, barcode, unit string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Code = code
	p.Barcode = barcode
	p.Unit = unit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices updates cost, purchase and selling prices.
// Selling below cost is rejected; selling at cost (zero margin) is allowed.
func (p *Product) SetPrices(costPrice, purchasePrice, sellingPrice valueobject.Money) error {
	if costPrice.IsNegative() || purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	if sellingPrice.LessThan(costPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be below cost price")
	}

	p.CostPrice = costPrice.Amount()
	p.PurchasePrice = purchasePrice.Amount()
	p.SellingPrice = sellingPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSupplier records the supplying partner with a denormalized name snapshot
func (p *Product) SetSupplier(supplierID uuid.UUID, supplierName string) {
	p.SupplierID = &supplierID
	p.SupplierName = supplierName
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AdjustStock applies a signed delta to the on-hand quantity.
// A negative delta may not drive the quantity below zero: goods that were
// sold onward or damaged cannot leave the shelf a second time.
func (p *Product) AdjustStock(delta int) error {
	newQuantity := p.Quantity + delta
	if newQuantity < 0 {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			"Insufficient stock for "+p.Name).
			WithDetail("product_id", p.ID).
			WithDetail("requested", -delta).
			WithDetail("available", p.Quantity)
	}

	p.Quantity = newQuantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// CanFulfill reports whether the on-hand stock covers the given quantity
func (p *Product) CanFulfill(quantity int) bool {
	return p.Quantity >= quantity
}

// IsBelowMinimum reports whether stock has fallen under the alert threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinStockLevel > 0 && p.Quantity < p.MinStockLevel
}

// GetCostPriceMoney returns the cost price as a Money value object
func (p *Product) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.CostPrice)
}

// GetSellingPriceMoney returns the selling price as a Money value object
func (p *Product) GetSellingPriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.SellingPrice)
}

// GetPurchasePriceMoney returns the purchase price as a Money value object
func (p *Product) GetPurchasePriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.PurchasePrice)
}
