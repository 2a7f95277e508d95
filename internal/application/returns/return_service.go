package returns

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// DefaultMaxSettleAttempts bounds how often a settlement is re-run after
// losing an optimistic-lock race before giving up.
const DefaultMaxSettleAttempts = 3

// ReturnService settles returns against completed sales and purchases.
// Each settlement runs as one atomic unit: re-read the aggregate,
// re-validate the selections against it, bump the per-line returned
// counters, rewrite the financial totals, move stock, and write the
// immutable return record. Lost optimistic-lock races are retried from
// a fresh read up to maxAttempts times.
type ReturnService struct {
	scope       TransactionScope
	sales       trade.SaleRepository
	purchases   trade.PurchaseRepository
	maxAttempts int
}

// NewReturnService creates a ReturnService. The sale and purchase
// repositories serve read-only previews outside the transaction scope.
func NewReturnService(scope TransactionScope, sales trade.SaleRepository, purchases trade.PurchaseRepository) *ReturnService {
	return &ReturnService{
		scope:       scope,
		sales:       sales,
		purchases:   purchases,
		maxAttempts: DefaultMaxSettleAttempts,
	}
}

// WithMaxAttempts overrides the conflict-retry budget.
func (s *ReturnService) WithMaxAttempts(n int) *ReturnService {
	if n > 0 {
		s.maxAttempts = n
	}
	return s
}

// PreviewSaleReturnable lists the sale lines that still have returnable
// units. The answer is advisory: settlement re-validates against a fresh
// snapshot inside its transaction.
func (s *ReturnService) PreviewSaleReturnable(ctx context.Context, saleID uuid.UUID) ([]ReturnableLineResponse, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, trade.NewAggregateNotFoundError("Sale", saleID)
		}
		return nil, err
	}
	return toReturnableLineResponses(sale.ReturnableLines()), nil
}

// PreviewPurchaseReturnable lists the purchase lines that still have
// returnable units.
func (s *ReturnService) PreviewPurchaseReturnable(ctx context.Context, purchaseID uuid.UUID) ([]ReturnableLineResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, trade.NewAggregateNotFoundError("Purchase", purchaseID)
		}
		return nil, err
	}
	return toReturnableLineResponses(purchase.ReturnableLines()), nil
}

// SettleSaleReturn returns the selected units of a completed sale to the
// customer: counters up, refund off the sale totals, stock back on the
// shelf, immutable SaleReturn written.
func (s *ReturnService) SettleSaleReturn(ctx context.Context, saleID, actorID uuid.UUID, selections []ReturnSelection) (*SettleReturnResult, error) {
	return s.settle(ctx, actorID, selections, &saleSettlement{saleID: saleID})
}

// SettlePurchaseReturn returns the selected units of a completed
// purchase to the supplier: counters up, credit off the purchase total,
// stock shipped out (with an in-transaction availability check),
// immutable PurchaseReturn written.
func (s *ReturnService) SettlePurchaseReturn(ctx context.Context, purchaseID, actorID uuid.UUID, selections []ReturnSelection) (*SettleReturnResult, error) {
	return s.settle(ctx, actorID, selections, &purchaseSettlement{purchaseID: purchaseID})
}

func (s *ReturnService) settle(ctx context.Context, actorID uuid.UUID, selections []ReturnSelection, st settlement) (*SettleReturnResult, error) {
	attempts := s.maxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var result *SettleReturnResult
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			res, err := runSettlement(ctx, repos, actorID, selections, st)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !isRetryableConflict(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, shared.NewDomainError(shared.CodeConflictRetryExhausted,
		"Return settlement kept losing to concurrent updates").
		WithDetail("attempts", attempts).
		WithDetail("last_error", lastErr.Error())
}

func isRetryableConflict(err error) bool {
	return shared.IsCode(err, shared.CodeOptimisticLockFailed) ||
		errors.Is(err, shared.ErrConcurrencyConflict)
}

// runSettlement is one settlement attempt inside an open transaction.
// Any error rolls the whole attempt back, leaving counters, totals,
// stock and return records untouched.
func runSettlement(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, selections []ReturnSelection, st settlement) (*SettleReturnResult, error) {
	if err := st.load(ctx, repos); err != nil {
		return nil, err
	}

	validated, err := validateSelections(st.lines(), selections)
	if err != nil {
		return nil, err
	}

	credit := valueobject.Zero()
	costReduction := valueobject.Zero()
	recordLines := make([]trade.ReturnLineInput, 0, len(validated))

	for _, v := range validated {
		if err := st.applyReturn(v.Line.ProductID, v.Quantity); err != nil {
			return nil, err
		}
		price := valueobject.NewMoney(v.Line.PricePerItem)
		credit = credit.Add(price.MultiplyByInt(v.Quantity))
		costReduction = costReduction.Add(valueobject.NewMoney(v.Line.CostPrice).MultiplyByInt(v.Quantity))
		recordLines = append(recordLines, trade.ReturnLineInput{
			ProductID:    v.Line.ProductID,
			ProductName:  v.Line.ProductName,
			Quantity:     v.Quantity,
			PricePerItem: price,
		})
	}

	st.settleTotals(credit, costReduction)
	if err := st.save(ctx, repos); err != nil {
		return nil, err
	}

	for _, v := range validated {
		delta := st.stockDelta(v.Quantity)
		if delta < 0 {
			// Shipping units back to a supplier needs them on hand.
			product, err := repos.Products().FindByID(ctx, v.Line.ProductID)
			if err != nil {
				return nil, err
			}
			if product.Quantity+delta < 0 {
				return nil, shared.NewDomainError(shared.CodeInsufficientStock,
					"Insufficient stock for "+product.Name).
					WithDetail("product_id", product.ID).
					WithDetail("requested", -delta).
					WithDetail("available", product.Quantity)
			}
		}
		if err := repos.Products().AdjustQuantity(ctx, v.Line.ProductID, delta); err != nil {
			if shared.IsCode(err, shared.CodeInsufficientStock) {
				// The guarded update lost a race with a concurrent stock
				// consumer; report the quantities it saw.
				available := 0
				name := v.Line.ProductName
				if product, ferr := repos.Products().FindByID(ctx, v.Line.ProductID); ferr == nil {
					available = product.Quantity
					name = product.Name
				}
				return nil, shared.NewDomainError(shared.CodeInsufficientStock,
					"Insufficient stock for "+name).
					WithDetail("product_id", v.Line.ProductID).
					WithDetail("requested", -delta).
					WithDetail("available", available)
			}
			return nil, err
		}
	}

	returnID, err := st.record(ctx, repos, actorID, recordLines, credit)
	if err != nil {
		return nil, err
	}

	return &SettleReturnResult{ReturnID: returnID, TotalAmount: credit.Amount()}, nil
}
