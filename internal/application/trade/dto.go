package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineRequest is one requested sale line. Price and cost are
// snapshotted from the product at creation time, not taken from the
// caller.
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest creates a completed sale
type CreateSaleRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	Items      []SaleLineRequest `json:"items" binding:"required,min=1"`
}

// PurchaseLineRequest is one requested purchase line
type PurchaseLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreatePurchaseRequest creates a completed purchase
type CreatePurchaseRequest struct {
	SupplierID *uuid.UUID            `json:"supplier_id"`
	AmountPaid decimal.Decimal       `json:"amount_paid"`
	Items      []PurchaseLineRequest `json:"items" binding:"required,min=1"`
}

// SaleItemResponse is one sale line in a response
type SaleItemResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	PricePerItem     decimal.Decimal `json:"price_per_item"`
	ReturnedQuantity int             `json:"returned_quantity"`
}

// SaleResponse describes a sale
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	CustomerID   *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	SaleDate     time.Time          `json:"sale_date"`
	Items        []SaleItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	TotalCost    decimal.Decimal    `json:"total_cost"`
	TotalProfit  decimal.Decimal    `json:"total_profit"`
	AmountPaid   decimal.Decimal    `json:"amount_paid"`
	Version      int                `json:"version"`
}

// SaleListResponse is a paginated list of sales
type SaleListResponse struct {
	Items    []SaleResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// PurchaseItemResponse is one purchase line in a response
type PurchaseItemResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	PricePerItem     decimal.Decimal `json:"price_per_item"`
	ReturnedQuantity int             `json:"returned_quantity"`
}

// PurchaseResponse describes a purchase
type PurchaseResponse struct {
	ID           uuid.UUID              `json:"id"`
	SupplierID   *uuid.UUID             `json:"supplier_id,omitempty"`
	SupplierName string                 `json:"supplier_name,omitempty"`
	PurchaseDate time.Time              `json:"purchase_date"`
	Items        []PurchaseItemResponse `json:"items"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	AmountPaid   decimal.Decimal        `json:"amount_paid"`
	Version      int                    `json:"version"`
}

// PurchaseListResponse is a paginated list of purchases
type PurchaseListResponse struct {
	Items    []PurchaseResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ReturnRecordItemResponse is one line of a return record
type ReturnRecordItemResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
}

// SaleReturnResponse describes an immutable sale return record
type SaleReturnResponse struct {
	ID                uuid.UUID                  `json:"id"`
	OriginalSaleID    uuid.UUID                  `json:"original_sale_id"`
	CustomerName      string                     `json:"customer_name,omitempty"`
	ReturnDate        time.Time                  `json:"return_date"`
	Items             []ReturnRecordItemResponse `json:"items"`
	TotalRefundAmount decimal.Decimal            `json:"total_refund_amount"`
}

// SaleReturnListResponse is a paginated list of sale return records
type SaleReturnListResponse struct {
	Items    []SaleReturnResponse `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// PurchaseReturnResponse describes an immutable purchase return record
type PurchaseReturnResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	OriginalPurchaseID uuid.UUID                  `json:"original_purchase_id"`
	SupplierName       string                     `json:"supplier_name,omitempty"`
	ReturnDate         time.Time                  `json:"return_date"`
	Items              []ReturnRecordItemResponse `json:"items"`
	TotalCreditAmount  decimal.Decimal            `json:"total_credit_amount"`
}

// PurchaseReturnListResponse is a paginated list of purchase return records
type PurchaseReturnListResponse struct {
	Items    []PurchaseReturnResponse `json:"items"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

func toSaleResponse(sale *trade.Sale) *SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			PricePerItem:     item.PricePerItem,
			ReturnedQuantity: item.ReturnedQuantity,
		})
	}
	return &SaleResponse{
		ID:           sale.ID,
		CustomerID:   sale.CustomerID,
		CustomerName: sale.CustomerName,
		SaleDate:     sale.SaleDate,
		Items:        items,
		TotalAmount:  sale.TotalAmount,
		TotalCost:    sale.TotalCost,
		TotalProfit:  sale.TotalProfit,
		AmountPaid:   sale.AmountPaid,
		Version:      sale.Version,
	}
}

func toPurchaseResponse(purchase *trade.Purchase) *PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(purchase.Items))
	for _, item := range purchase.Items {
		items = append(items, PurchaseItemResponse{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			PricePerItem:     item.PricePerItem,
			ReturnedQuantity: item.ReturnedQuantity,
		})
	}
	return &PurchaseResponse{
		ID:           purchase.ID,
		SupplierID:   purchase.SupplierID,
		SupplierName: purchase.SupplierName,
		PurchaseDate: purchase.PurchaseDate,
		Items:        items,
		TotalAmount:  purchase.TotalAmount,
		AmountPaid:   purchase.AmountPaid,
		Version:      purchase.Version,
	}
}

func toSaleReturnResponse(sr *trade.SaleReturn) *SaleReturnResponse {
	items := make([]ReturnRecordItemResponse, 0, len(sr.Items))
	for _, item := range sr.Items {
		items = append(items, ReturnRecordItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
		})
	}
	return &SaleReturnResponse{
		ID:                sr.ID,
		OriginalSaleID:    sr.OriginalSaleID,
		CustomerName:      sr.CustomerName,
		ReturnDate:        sr.ReturnDate,
		Items:             items,
		TotalRefundAmount: sr.TotalRefundAmount,
	}
}

func toPurchaseReturnResponse(pr *trade.PurchaseReturn) *PurchaseReturnResponse {
	items := make([]ReturnRecordItemResponse, 0, len(pr.Items))
	for _, item := range pr.Items {
		items = append(items, ReturnRecordItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
		})
	}
	return &PurchaseReturnResponse{
		ID:                 pr.ID,
		OriginalPurchaseID: pr.OriginalPurchaseID,
		SupplierName:       pr.SupplierName,
		ReturnDate:         pr.ReturnDate,
		Items:              items,
		TotalCreditAmount:  pr.TotalCreditAmount,
	}
}
