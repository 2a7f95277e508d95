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

// SalesService records completed sales. Creation snapshots product name,
// selling price and cost price into the sale lines and decrements stock
// in the same transaction, so the sale and its stock movement commit or
// roll back together.
type SalesService struct {
	scope       returns.TransactionScope
	sales       trade.SaleRepository
	saleReturns trade.SaleReturnRepository
	customers   partner.CustomerRepository
}

// NewSalesService creates a new SalesService
func NewSalesService(
	scope returns.TransactionScope,
	sales trade.SaleRepository,
	saleReturns trade.SaleReturnRepository,
	customers partner.CustomerRepository,
) *SalesService {
	return &SalesService{
		scope:       scope,
		sales:       sales,
		saleReturns: saleReturns,
		customers:   customers,
	}
}

// Create records a completed sale and moves stock out
func (s *SalesService) Create(ctx context.Context, actorID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	var customerName string
	if req.CustomerID != nil {
		customer, err := s.customers.FindByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found").
					WithDetail("customer_id", *req.CustomerID)
			}
			return nil, err
		}
		customerName = customer.Name
	}

	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos returns.TransactionalRepositories) error {
		inputs := make([]trade.SaleItemInput, 0, len(req.Items))
		for _, line := range req.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found").
						WithDetail("product_id", line.ProductID)
				}
				return err
			}
			if product.Quantity < line.Quantity {
				return shared.NewDomainError(shared.CodeInsufficientStock,
					"Insufficient stock for "+product.Name).
					WithDetail("product_id", product.ID).
					WithDetail("requested", line.Quantity).
					WithDetail("available", product.Quantity)
			}
			inputs = append(inputs, trade.SaleItemInput{
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     line.Quantity,
				PricePerItem: valueobject.NewMoney(product.SellingPrice),
				CostPrice:    valueobject.NewMoney(product.CostPrice),
			})
		}

		created, err := trade.NewSale(req.CustomerID, customerName, actorID, inputs)
		if err != nil {
			return err
		}
		created.AmountPaid = req.AmountPaid

		if err := repos.Sales().Save(ctx, created); err != nil {
			return err
		}
		for _, line := range req.Items {
			if err := repos.Products().AdjustQuantity(ctx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}
		sale = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Get loads one sale with its lines
func (s *SalesService) Get(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, trade.NewAggregateNotFoundError("Sale", id)
		}
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List returns a page of sales
func (s *SalesService) List(ctx context.Context, filter shared.Filter) (*SaleListResponse, error) {
	sales, err := s.sales.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.sales.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *toSaleResponse(&sales[i]))
	}
	return &SaleListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListAllReturns returns a page of sale return records across all sales
func (s *SalesService) ListAllReturns(ctx context.Context, filter shared.Filter) (*SaleReturnListResponse, error) {
	records, err := s.saleReturns.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleReturns.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleReturnResponse, 0, len(records))
	for i := range records {
		items = append(items, *toSaleReturnResponse(&records[i]))
	}
	return &SaleReturnListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListReturns lists the return records settled against one sale
func (s *SalesService) ListReturns(ctx context.Context, saleID uuid.UUID) ([]SaleReturnResponse, error) {
	records, err := s.saleReturns.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]SaleReturnResponse, 0, len(records))
	for i := range records {
		out = append(out, *toSaleReturnResponse(&records[i]))
	}
	return out, nil
}
