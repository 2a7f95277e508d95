package trade

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/application/returns"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// PurchaseService records completed purchases. Creation snapshots
// product name and purchase price into the purchase lines and
// increments stock in the same transaction.
type PurchaseService struct {
	scope           returns.TransactionScope
	purchases       trade.PurchaseRepository
	purchaseReturns trade.PurchaseReturnRepository
	suppliers       partner.SupplierRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	scope returns.TransactionScope,
	purchases trade.PurchaseRepository,
	purchaseReturns trade.PurchaseReturnRepository,
	suppliers partner.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		scope:           scope,
		purchases:       purchases,
		purchaseReturns: purchaseReturns,
		suppliers:       suppliers,
	}
}

// Create records a completed purchase and moves stock in
func (s *PurchaseService) Create(ctx context.Context, actorID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	var supplierName string
	if req.SupplierID != nil {
		supplier, err := s.suppliers.FindByID(ctx, *req.SupplierID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier not found").
					WithDetail("supplier_id", *req.SupplierID)
			}
			return nil, err
		}
		supplierName = supplier.Name
	}

	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos returns.TransactionalRepositories) error {
		inputs := make([]trade.PurchaseItemInput, 0, len(req.Items))
		for _, line := range req.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found").
						WithDetail("product_id", line.ProductID)
				}
				return err
			}
			inputs = append(inputs, trade.PurchaseItemInput{
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     line.Quantity,
				PricePerItem: valueobject.NewMoney(product.PurchasePrice),
			})
		}

		created, err := trade.NewPurchase(req.SupplierID, supplierName, actorID, inputs)
		if err != nil {
			return err
		}
		created.AmountPaid = req.AmountPaid

		if err := repos.Purchases().Save(ctx, created); err != nil {
			return err
		}
		for _, line := range req.Items {
			if err := repos.Products().AdjustQuantity(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		purchase = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// Get loads one purchase with its lines
func (s *PurchaseService) Get(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, trade.NewAggregateNotFoundError("Purchase", id)
		}
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// List returns a page of purchases
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (*PurchaseListResponse, error) {
	purchases, err := s.purchases.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchases.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, *toPurchaseResponse(&purchases[i]))
	}
	return &PurchaseListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListAllReturns returns a page of purchase return records across all purchases
func (s *PurchaseService) ListAllReturns(ctx context.Context, filter shared.Filter) (*PurchaseReturnListResponse, error) {
	records, err := s.purchaseReturns.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseReturns.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseReturnResponse, 0, len(records))
	for i := range records {
		items = append(items, *toPurchaseReturnResponse(&records[i]))
	}
	return &PurchaseReturnListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListReturns lists the return records settled against one purchase
func (s *PurchaseService) ListReturns(ctx context.Context, purchaseID uuid.UUID) ([]PurchaseReturnResponse, error) {
	records, err := s.purchaseReturns.FindByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseReturnResponse, 0, len(records))
	for i := range records {
		out = append(out, *toPurchaseReturnResponse(&records[i]))
	}
	return out, nil
}
