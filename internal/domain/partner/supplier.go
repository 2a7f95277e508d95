package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supplier represents a supplying counterparty
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	PhoneNumber string          `gorm:"type:varchar(50);index"`
	Address     string          `gorm:"type:varchar(500)"`
	BalanceDue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, phoneNumber string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, phoneNumber, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.PhoneNumber = phoneNumber
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
