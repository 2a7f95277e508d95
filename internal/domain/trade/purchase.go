package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem represents a line item in a completed purchase.
// Like SaleItem it snapshots product name and unit price at transaction
// time and carries the mutable ReturnedQuantity counter with the same
// 0 <= ReturnedQuantity <= Quantity invariant. Purchases track no cost
// price: the unit price already is what the goods cost us.
type PurchaseItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         int             `gorm:"not null"`
	PricePerItem     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReturnedQuantity int             `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// RemainingQuantity returns how many units can still be returned
func (i *PurchaseItem) RemainingQuantity() int {
	return i.Quantity - i.ReturnedQuantity
}

// PurchaseItemInput carries the data needed to build one purchase line
type PurchaseItemInput struct {
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PricePerItem valueobject.Money
}

// Purchase represents a completed purchase transaction; the aggregate
// root for return settlement on the purchase side.
type Purchase struct {
	shared.BaseAggregateRoot
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName string          `gorm:"type:varchar(200)"`
	PurchaseDate time.Time       `gorm:"not null"`
	Items        []PurchaseItem  `gorm:"foreignKey:PurchaseID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ActorID      uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase from line inputs
func NewPurchase(supplierID *uuid.UUID, supplierName string, actorID uuid.UUID, inputs []PurchaseItemInput) (*Purchase, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "A purchase requires at least one item")
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		PurchaseDate:      time.Now(),
		Items:             make([]PurchaseItem, 0, len(inputs)),
		ActorID:           actorID,
	}

	total := valueobject.Zero()

	for _, in := range inputs {
		if in.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if in.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}

		now := time.Now()
		purchase.Items = append(purchase.Items, PurchaseItem{
			ID:           uuid.New(),
			PurchaseID:   purchase.ID,
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			Quantity:     in.Quantity,
			PricePerItem: in.PricePerItem.Amount(),
			CreatedAt:    now,
			UpdatedAt:    now,
		})

		total = total.Add(in.PricePerItem.MultiplyByInt(in.Quantity))
	}

	purchase.TotalAmount = total.Amount()

	return purchase, nil
}

// FindItem returns the line item for the given product, or nil
func (p *Purchase) FindItem(productID uuid.UUID) *PurchaseItem {
	for i := range p.Items {
		if p.Items[i].ProductID == productID {
			return &p.Items[i]
		}
	}
	return nil
}

// Lines projects every line item, fully returned ones included.
func (p *Purchase) Lines() []ReturnableLine {
	lines := make([]ReturnableLine, 0, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		lines = append(lines, ReturnableLine{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			ReturnedQuantity:  item.ReturnedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			PricePerItem:      item.PricePerItem,
		})
	}
	return lines
}

// ReturnableLines projects the per-line remaining-returnable quantities,
// omitting fully returned lines. Advisory only; re-derived from a fresh
// snapshot inside the settlement transaction.
func (p *Purchase) ReturnableLines() []ReturnableLine {
	all := p.Lines()
	lines := make([]ReturnableLine, 0, len(all))
	for _, line := range all {
		if line.RemainingQuantity <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ApplyReturn increments a line item's returned-quantity counter,
// enforcing the counter invariant.
func (p *Purchase) ApplyReturn(productID uuid.UUID, quantity int) error {
	item := p.FindItem(productID)
	if item == nil {
		return NewItemNotFoundError(productID)
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if remaining := item.RemainingQuantity(); quantity > remaining {
		return NewExceedsReturnableError(item.ProductName, quantity, remaining)
	}

	item.ReturnedQuantity += quantity
	item.UpdatedAt = time.Now()
	return nil
}

// Settle recomputes the purchase total after a return. Suppliers carry
// no profit concept, so only TotalAmount moves.
func (p *Purchase) Settle(creditTotal valueobject.Money) {
	p.TotalAmount = valueobject.NewMoney(p.TotalAmount).Subtract(creditTotal).Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
