package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID loads a purchase with its line items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll returns a page of purchases with their line items
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.db.WithContext(ctx).Preload("Items")
	query = applyOrdering(query, filter, PurchaseSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Purchase{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a purchase with its line items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// SaveWithLock persists the settled total and per-line returned
// counters under the version check.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version-1).
		Updates(map[string]interface{}{
			"total_amount": purchase.TotalAmount,
			"version":      purchase.Version,
			"updated_at":   purchase.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeOptimisticLockFailed,
			"Purchase was modified by another transaction")
	}

	for i := range purchase.Items {
		item := &purchase.Items[i]
		if err := r.db.WithContext(ctx).
			Model(&trade.PurchaseItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"returned_quantity": item.ReturnedQuantity,
				"updated_at":        item.UpdatedAt,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
