package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer represents a buying counterparty
type Customer struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	PhoneNumber string          `gorm:"type:varchar(50);index"`
	Address     string          `gorm:"type:varchar(500)"`
	BalanceDue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phoneNumber string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
	}, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phoneNumber, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	c.Name = name
	c.PhoneNumber = phoneNumber
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
