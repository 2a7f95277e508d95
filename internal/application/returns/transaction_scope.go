package returns

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// return settlement touches. When a function is executed within a
// transaction scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade and catalog
// repositories within a transaction. All repositories returned share
// the same underlying database transaction.
//
// Aggregate boundary notes:
//   - Sales/Purchases: aggregate roots whose line-item counters and
//     financial totals are rewritten by settlement under an optimistic
//     lock. Line items are child entities persisted via association
//     handling when the root is saved.
//   - SaleReturns/PurchaseReturns: append-only repositories for the
//     immutable return records.
//   - Products: stock levels move via atomic relative deltas, never by
//     writing back a read-modify-write absolute value.
type TransactionalRepositories interface {
	// Sales returns the sale repository scoped to the current transaction
	Sales() trade.SaleRepository
	// Purchases returns the purchase repository scoped to the current transaction
	Purchases() trade.PurchaseRepository
	// SaleReturns returns the sale return repository scoped to the current transaction
	SaleReturns() trade.SaleReturnRepository
	// PurchaseReturns returns the purchase return repository scoped to the current transaction
	PurchaseReturns() trade.PurchaseReturnRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	sales           trade.SaleRepository
	purchases       trade.PurchaseRepository
	saleReturns     trade.SaleReturnRepository
	purchaseReturns trade.PurchaseReturnRepository
	products        catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	sales trade.SaleRepository,
	purchases trade.PurchaseRepository,
	saleReturns trade.SaleReturnRepository,
	purchaseReturns trade.PurchaseReturnRepository,
	products catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		sales:           sales,
		purchases:       purchases,
		saleReturns:     saleReturns,
		purchaseReturns: purchaseReturns,
		products:        products,
	}
}

// Execute runs the function against the wrapped repositories without a transaction.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() trade.SaleRepository { return s.sales }

// Purchases returns the purchase repository
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository { return s.purchases }

// SaleReturns returns the sale return repository
func (s *NoOpTransactionScope) SaleReturns() trade.SaleReturnRepository { return s.saleReturns }

// PurchaseReturns returns the purchase return repository
func (s *NoOpTransactionScope) PurchaseReturns() trade.PurchaseReturnRepository {
	return s.purchaseReturns
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }
