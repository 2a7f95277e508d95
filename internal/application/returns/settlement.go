package returns

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// settlement abstracts the direction-specific half of a return: which
// aggregate it runs against, which way stock moves when units come
// back, and which record type it writes. The coordinator in
// ReturnService drives both directions through this interface.
type settlement interface {
	// load reads a fresh aggregate snapshot inside the transaction.
	// Every retry attempt starts here, discarding prior state.
	load(ctx context.Context, repos TransactionalRepositories) error
	lines() []trade.ReturnableLine
	applyReturn(productID uuid.UUID, quantity int) error
	// settleTotals rewrites the aggregate's financial totals given the
	// credited value and the cost reduction. Purchases carry no cost
	// concept and ignore the second argument.
	settleTotals(creditTotal, costReduction valueobject.Money)
	save(ctx context.Context, repos TransactionalRepositories) error
	// stockDelta maps returned units to a stock movement: customer
	// returns put units back on the shelf (+), supplier returns ship
	// them out (-).
	stockDelta(quantity int) int
	record(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, lines []trade.ReturnLineInput, total valueobject.Money) (uuid.UUID, error)
}

type saleSettlement struct {
	saleID uuid.UUID
	sale   *trade.Sale
}

func (s *saleSettlement) load(ctx context.Context, repos TransactionalRepositories) error {
	sale, err := repos.Sales().FindByID(ctx, s.saleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return trade.NewAggregateNotFoundError("Sale", s.saleID)
		}
		return err
	}
	s.sale = sale
	return nil
}

func (s *saleSettlement) lines() []trade.ReturnableLine {
	return s.sale.Lines()
}

func (s *saleSettlement) applyReturn(productID uuid.UUID, quantity int) error {
	return s.sale.ApplyReturn(productID, quantity)
}

func (s *saleSettlement) settleTotals(creditTotal, costReduction valueobject.Money) {
	s.sale.Settle(creditTotal, costReduction)
}

func (s *saleSettlement) save(ctx context.Context, repos TransactionalRepositories) error {
	return repos.Sales().SaveWithLock(ctx, s.sale)
}

func (s *saleSettlement) stockDelta(quantity int) int {
	return quantity
}

func (s *saleSettlement) record(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, lines []trade.ReturnLineInput, total valueobject.Money) (uuid.UUID, error) {
	sr, err := trade.NewSaleReturn(s.sale, actorID, lines, total)
	if err != nil {
		return uuid.Nil, err
	}
	if err := repos.SaleReturns().Save(ctx, sr); err != nil {
		return uuid.Nil, err
	}
	return sr.ID, nil
}

type purchaseSettlement struct {
	purchaseID uuid.UUID
	purchase   *trade.Purchase
}

func (s *purchaseSettlement) load(ctx context.Context, repos TransactionalRepositories) error {
	purchase, err := repos.Purchases().FindByID(ctx, s.purchaseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return trade.NewAggregateNotFoundError("Purchase", s.purchaseID)
		}
		return err
	}
	s.purchase = purchase
	return nil
}

func (s *purchaseSettlement) lines() []trade.ReturnableLine {
	return s.purchase.Lines()
}

func (s *purchaseSettlement) applyReturn(productID uuid.UUID, quantity int) error {
	return s.purchase.ApplyReturn(productID, quantity)
}

func (s *purchaseSettlement) settleTotals(creditTotal, _ valueobject.Money) {
	s.purchase.Settle(creditTotal)
}

func (s *purchaseSettlement) save(ctx context.Context, repos TransactionalRepositories) error {
	return repos.Purchases().SaveWithLock(ctx, s.purchase)
}

func (s *purchaseSettlement) stockDelta(quantity int) int {
	return -quantity
}

func (s *purchaseSettlement) record(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, lines []trade.ReturnLineInput, total valueobject.Money) (uuid.UUID, error) {
	pr, err := trade.NewPurchaseReturn(s.purchase, actorID, lines, total)
	if err != nil {
		return uuid.Nil, err
	}
	if err := repos.PurchaseReturns().Save(ctx, pr); err != nil {
		return uuid.Nil, err
	}
	return pr.ID, nil
}
