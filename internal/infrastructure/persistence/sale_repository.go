package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads a sale with its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll returns a page of sales with their line items
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.db.WithContext(ctx).Preload("Items")
	query = applyOrdering(query, filter, SaleSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Count counts sales
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Sale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a sale with its line items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// SaveWithLock persists the settled totals and per-line returned
// counters only if the stored version still matches the version this
// snapshot was read at. A zero-row update means another transaction
// got there first.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Sale{}).
		Where("id = ? AND version = ?", sale.ID, sale.Version-1).
		Updates(map[string]interface{}{
			"total_amount": sale.TotalAmount,
			"total_cost":   sale.TotalCost,
			"total_profit": sale.TotalProfit,
			"version":      sale.Version,
			"updated_at":   sale.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeOptimisticLockFailed,
			"Sale was modified by another transaction")
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		if err := r.db.WithContext(ctx).
			Model(&trade.SaleItem{}).
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

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
