package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleReturnRepository implements trade.SaleReturnRepository using
// GORM. Return records are append-only; there is no update path.
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

// FindByID loads a sale return with its lines
func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var sr trade.SaleReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sr, nil
}

// FindBySale lists the return records settled against one sale
func (r *GormSaleReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.SaleReturn, error) {
	var records []trade.SaleReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("original_sale_id = ?", saleID).
		Order("return_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll returns a page of sale returns
func (r *GormSaleReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SaleReturn, error) {
	var records []trade.SaleReturn
	query := r.db.WithContext(ctx).Preload("Items")
	query = applyOrdering(query, filter, SaleReturnSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts sale returns
func (r *GormSaleReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.SaleReturn{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends a sale return with its lines
func (r *GormSaleReturnRepository) Save(ctx context.Context, sr *trade.SaleReturn) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

var _ trade.SaleReturnRepository = (*GormSaleReturnRepository)(nil)
