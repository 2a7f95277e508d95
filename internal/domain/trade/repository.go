package trade

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	// FindByID loads the sale with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	// SaveWithLock persists the sale and its items only if the stored
	// version matches the one this snapshot was read at.
	SaveWithLock(ctx context.Context, sale *Sale) error
}

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}

// SaleReturnRepository persists immutable sale-return records
type SaleReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReturn, error)
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]SaleReturn, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SaleReturn, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sr *SaleReturn) error
}

// PurchaseReturnRepository persists immutable purchase-return records
type PurchaseReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReturn, error)
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]PurchaseReturn, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseReturn, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, pr *PurchaseReturn) error
}
