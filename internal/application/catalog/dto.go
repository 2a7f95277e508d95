package catalog

import (
	"time"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Code          string           `json:"code"`
	Barcode       string           `json:"barcode"`
	Unit          string           `json:"unit"`
	Quantity      int              `json:"quantity"`
	MinStockLevel int              `json:"min_stock_level"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
}

// UpdateProductRequest updates a product's descriptive fields and prices.
// Stock is not writable here; it moves only through trades and returns.
type UpdateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Code          string           `json:"code"`
	Barcode       string           `json:"barcode"`
	Unit          string           `json:"unit"`
	MinStockLevel int              `json:"min_stock_level"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
}

// ProductResponse describes a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	LowStock      bool            `json:"low_stock"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func toProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Code:          product.Code,
		Barcode:       product.Barcode,
		Unit:          product.Unit,
		Quantity:      product.Quantity,
		MinStockLevel: product.MinStockLevel,
		CostPrice:     product.CostPrice,
		PurchasePrice: product.PurchasePrice,
		SellingPrice:  product.SellingPrice,
		SupplierID:    product.SupplierID,
		SupplierName:  product.SupplierName,
		LowStock:      product.IsBelowMinimum(),
		UpdatedAt:     product.UpdatedAt,
	}
}
