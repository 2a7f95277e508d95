package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseReturnRepository implements trade.PurchaseReturnRepository
// using GORM. Return records are append-only; there is no update path.
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// FindByID loads a purchase return with its lines
func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var pr trade.PurchaseReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&pr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pr, nil
}

// FindByPurchase lists the return records settled against one purchase
func (r *GormPurchaseReturnRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]trade.PurchaseReturn, error) {
	var records []trade.PurchaseReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("original_purchase_id = ?", purchaseID).
		Order("return_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll returns a page of purchase returns
func (r *GormPurchaseReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseReturn, error) {
	var records []trade.PurchaseReturn
	query := r.db.WithContext(ctx).Preload("Items")
	query = applyOrdering(query, filter, PurchaseReturnSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts purchase returns
func (r *GormPurchaseReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends a purchase return with its lines
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, pr *trade.PurchaseReturn) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

var _ trade.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)
