package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleReturnItem is one line of an immutable sale-return record. All
// fields are snapshots taken from the validated sale line at settlement
// time, never re-joined to live data.
type SaleReturnItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	Quantity     int             `gorm:"not null"`
	PricePerItem decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}

// SaleReturn records one settled return against a sale. It is created
// exactly once per successful settlement and never updated or deleted.
type SaleReturn struct {
	shared.BaseAggregateRoot
	OriginalSaleID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID        *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName      string           `gorm:"type:varchar(200)"`
	ReturnDate        time.Time        `gorm:"not null"`
	Items             []SaleReturnItem `gorm:"foreignKey:SaleReturnID;references:ID"`
	TotalRefundAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	ActorID           uuid.UUID        `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// ReturnLineInput carries one validated line into a return record
type ReturnLineInput struct {
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PricePerItem valueobject.Money
}

// NewSaleReturn assembles the immutable return record from validated
// line items and the computed refund total. Pure assembly: no mutation
// of the sale, no I/O.
func NewSaleReturn(sale *Sale, actorID uuid.UUID, lines []ReturnLineInput, refundTotal valueobject.Money) (*SaleReturn, error) {
	if len(lines) == 0 {
		return nil, NewEmptySelectionError()
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	sr := &SaleReturn{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OriginalSaleID:    sale.ID,
		CustomerID:        sale.CustomerID,
		CustomerName:      sale.CustomerName,
		ReturnDate:        time.Now(),
		Items:             make([]SaleReturnItem, 0, len(lines)),
		TotalRefundAmount: refundTotal.Amount(),
		ActorID:           actorID,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
		}
		sr.Items = append(sr.Items, SaleReturnItem{
			ID:           uuid.New(),
			SaleReturnID: sr.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			Quantity:     line.Quantity,
			PricePerItem: line.PricePerItem.Amount(),
			CreatedAt:    time.Now(),
		})
	}

	return sr, nil
}
