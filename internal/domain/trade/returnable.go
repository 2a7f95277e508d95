package trade

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnableLine is a read-only projection of one aggregate line item:
// how much of it was originally transacted, how much already went back,
// and what each unit is worth. CostPrice is zero for purchase lines.
type ReturnableLine struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `json:"quantity"`
	ReturnedQuantity  int             `json:"returned_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	PricePerItem      decimal.Decimal `json:"price_per_item"`
	CostPrice         decimal.Decimal `json:"-"`
}

// NewItemNotFoundError reports a return selection referencing a product
// that is not part of the original transaction.
func NewItemNotFoundError(productID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(shared.CodeItemNotFound,
		fmt.Sprintf("Item %s not found in original transaction", productID)).
		WithDetail("product_id", productID)
}

// NewExceedsReturnableError reports a return selection asking for more
// units than remain returnable, carrying both quantities so the caller
// can surface them.
func NewExceedsReturnableError(productName string, requested, remaining int) *shared.DomainError {
	return shared.NewDomainError(shared.CodeExceedsReturnable,
		fmt.Sprintf("Cannot return %d of %s. Only %d remaining.", requested, productName, remaining)).
		WithDetail("requested", requested).
		WithDetail("remaining", remaining)
}

// NewEmptySelectionError reports a settlement request with nothing to do.
func NewEmptySelectionError() *shared.DomainError {
	return shared.NewDomainError(shared.CodeEmptySelection, "No items selected for return")
}

// NewAggregateNotFoundError reports a settlement against a transaction
// that does not exist.
func NewAggregateNotFoundError(kind string, id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(shared.CodeAggregateNotFound,
		fmt.Sprintf("%s %s not found", kind, id)).
		WithDetail("aggregate_id", id)
}
