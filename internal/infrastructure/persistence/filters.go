package persistence

import (
	"fmt"
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"code":          true,
	"barcode":       true,
	"quantity":      true,
	"cost_price":    true,
	"selling_price": true,
	"supplier_name": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone_number": true,
	"balance_due":  true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone_number": true,
	"balance_due":  true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"sale_date":     true,
	"customer_name": true,
	"total_amount":  true,
	"total_profit":  true,
	"amount_paid":   true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"purchase_date": true,
	"supplier_name": true,
	"total_amount":  true,
	"amount_paid":   true,
}

// SaleReturnSortFields contains allowed sort fields for sale return records
var SaleReturnSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"return_date":         true,
	"customer_name":       true,
	"total_refund_amount": true,
}

// PurchaseReturnSortFields contains allowed sort fields for purchase return records
var PurchaseReturnSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"return_date":         true,
	"supplier_name":       true,
	"total_credit_amount": true,
}

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC for anything else.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of column
// names. Anything outside the whitelist falls back to defaultField, so
// caller-supplied sort input can never reach the SQL text unchecked.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func applyOrdering(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	return query.Order(fmt.Sprintf("%s %s", field, ValidateSortOrder(filter.OrderDir)))
}

func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
}
