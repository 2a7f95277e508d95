package partner

import (
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest creates a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateCustomerRequest updates a customer's contact information
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// CustomerResponse describes a customer
type CustomerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Address     string          `json:"address,omitempty"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
}

// CustomerListResponse is a paginated list of customers
type CustomerListResponse struct {
	Items    []CustomerResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// CreateSupplierRequest creates a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateSupplierRequest updates a supplier's contact information
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// SupplierResponse describes a supplier
type SupplierResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Address     string          `json:"address,omitempty"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
}

// SupplierListResponse is a paginated list of suppliers
type SupplierListResponse struct {
	Items    []SupplierResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func toCustomerResponse(customer *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		PhoneNumber: customer.PhoneNumber,
		Address:     customer.Address,
		BalanceDue:  customer.BalanceDue,
	}
}

func toSupplierResponse(supplier *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          supplier.ID,
		Name:        supplier.Name,
		PhoneNumber: supplier.PhoneNumber,
		Address:     supplier.Address,
		BalanceDue:  supplier.BalanceDue,
	}
}
