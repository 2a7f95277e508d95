package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem represents a line item in a completed sale.
// ProductName, PricePerItem and CostPrice are snapshots taken at
// transaction time; they intentionally do not track the live product
// record (price-at-transaction-time semantics). Quantity is immutable
// after creation; ReturnedQuantity is the only mutable field and holds
// the invariant 0 <= ReturnedQuantity <= Quantity at all times.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         int             `gorm:"not null"`
	PricePerItem     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CostPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReturnedQuantity int             `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// RemainingQuantity returns how many units can still be returned
func (i *SaleItem) RemainingQuantity() int {
	return i.Quantity - i.ReturnedQuantity
}

// LineTotal returns PricePerItem * Quantity as Money
func (i *SaleItem) LineTotal() valueobject.Money {
	return valueobject.NewMoney(i.PricePerItem).MultiplyByInt(i.Quantity)
}

// SaleItemInput carries the data needed to build one sale line
type SaleItemInput struct {
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PricePerItem valueobject.Money
	CostPrice    valueobject.Money
}

// Sale represents a completed sale transaction. It is the aggregate root
// for return settlement on the sale side: its line-item counters and
// financial totals are mutated only by its own creation and by settling
// returns against it.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID   *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName string          `gorm:"type:varchar(200)"`
	SaleDate     time.Time       `gorm:"not null"`
	Items        []SaleItem      `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalProfit  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ActorID      uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale from line inputs, computing line snapshots
// and the financial totals through Money arithmetic.
func NewSale(customerID *uuid.UUID, customerName string, actorID uuid.UUID, inputs []SaleItemInput) (*Sale, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale requires at least one item")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		SaleDate:          time.Now(),
		Items:             make([]SaleItem, 0, len(inputs)),
	}
	sale.ActorID = actorID

	totalAmount := valueobject.Zero()
	totalCost := valueobject.Zero()

	for _, in := range inputs {
		if in.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if in.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}

		now := time.Now()
		sale.Items = append(sale.Items, SaleItem{
			ID:           uuid.New(),
			SaleID:       sale.ID,
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			Quantity:     in.Quantity,
			PricePerItem: in.PricePerItem.Amount(),
			CostPrice:    in.CostPrice.Amount(),
			CreatedAt:    now,
			UpdatedAt:    now,
		})

		totalAmount = totalAmount.Add(in.PricePerItem.MultiplyByInt(in.Quantity))
		totalCost = totalCost.Add(in.CostPrice.MultiplyByInt(in.Quantity))
	}

	sale.TotalAmount = totalAmount.Amount()
	sale.TotalCost = totalCost.Amount()
	sale.TotalProfit = totalAmount.Subtract(totalCost).Amount()

	return sale, nil
}

// FindItem returns the line item for the given product, or nil
func (s *Sale) FindItem(productID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// Lines projects every line item, fully returned ones included.
func (s *Sale) Lines() []ReturnableLine {
	lines := make([]ReturnableLine, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		lines = append(lines, ReturnableLine{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			ReturnedQuantity:  item.ReturnedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			PricePerItem:      item.PricePerItem,
			CostPrice:         item.CostPrice,
		})
	}
	return lines
}

// ReturnableLines projects the per-line remaining-returnable quantities.
// Lines that have been fully returned are omitted. The projection is
// advisory: it reflects this snapshot of the sale and must be re-derived
// inside the settlement transaction before being trusted for mutation.
func (s *Sale) ReturnableLines() []ReturnableLine {
	all := s.Lines()
	lines := make([]ReturnableLine, 0, len(all))
	for _, line := range all {
		if line.RemainingQuantity <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ApplyReturn increments a line item's returned-quantity counter.
// The counter invariant is enforced here as the last line of defense:
// even a validated request cannot push ReturnedQuantity past Quantity.
func (s *Sale) ApplyReturn(productID uuid.UUID, quantity int) error {
	item := s.FindItem(productID)
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

// Settle recomputes the sale's financial totals after a return: the
// refunded revenue leaves TotalAmount, the cost of the goods leaves
// TotalCost, and the profit given up equals refunded revenue minus the
// cost leaving with it.
func (s *Sale) Settle(refundTotal, costReduction valueobject.Money) {
	amount := valueobject.NewMoney(s.TotalAmount).Subtract(refundTotal)
	cost := valueobject.NewMoney(s.TotalCost).Subtract(costReduction)
	profit := valueobject.NewMoney(s.TotalProfit).Subtract(refundTotal.Subtract(costReduction))

	s.TotalAmount = amount.Amount()
	s.TotalCost = cost.Amount()
	s.TotalProfit = profit.Amount()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
