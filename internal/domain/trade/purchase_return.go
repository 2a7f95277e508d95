package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseReturnItem is one line of an immutable purchase-return record
type PurchaseReturnItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         int             `gorm:"not null"`
	PricePerItem     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseReturnItem) TableName() string {
	return "purchase_return_items"
}

// PurchaseReturn records one settled return against a purchase; created
// exactly once per successful settlement, never updated or deleted.
type PurchaseReturn struct {
	shared.BaseAggregateRoot
	OriginalPurchaseID uuid.UUID            `gorm:"type:uuid;not null;index"`
	SupplierID         *uuid.UUID           `gorm:"type:uuid;index"`
	SupplierName       string               `gorm:"type:varchar(200)"`
	ReturnDate         time.Time            `gorm:"not null"`
	Items              []PurchaseReturnItem `gorm:"foreignKey:PurchaseReturnID;references:ID"`
	TotalCreditAmount  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	ActorID            uuid.UUID            `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// NewPurchaseReturn assembles the immutable return record from validated
// line items and the computed credit total. Pure assembly.
func NewPurchaseReturn(purchase *Purchase, actorID uuid.UUID, lines []ReturnLineInput, creditTotal valueobject.Money) (*PurchaseReturn, error) {
	if len(lines) == 0 {
		return nil, NewEmptySelectionError()
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	pr := &PurchaseReturn{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		OriginalPurchaseID: purchase.ID,
		SupplierID:         purchase.SupplierID,
		SupplierName:       purchase.SupplierName,
		ReturnDate:         time.Now(),
		Items:              make([]PurchaseReturnItem, 0, len(lines)),
		TotalCreditAmount:  creditTotal.Amount(),
		ActorID:            actorID,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
		}
		pr.Items = append(pr.Items, PurchaseReturnItem{
			ID:               uuid.New(),
			PurchaseReturnID: pr.ID,
			ProductID:        line.ProductID,
			ProductName:      line.ProductName,
			Quantity:         line.Quantity,
			PricePerItem:     line.PricePerItem.Amount(),
			CreatedAt:        time.Now(),
		})
	}

	return pr, nil
}
