package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/retailpos/backend/internal/application/returns"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stub repositories. The handler tests exercise the full
// service stack; only persistence is faked.

type stubSaleRepo struct {
	sale        *trade.Sale
	lockedSaves int
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Sale, error) {
	if r.sale != nil && r.sale.ID == id {
		return r.sale, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubSaleRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Sale, error) {
	if r.sale == nil {
		return []trade.Sale{}, nil
	}
	return []trade.Sale{*r.sale}, nil
}

func (r *stubSaleRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	if r.sale == nil {
		return 0, nil
	}
	return 1, nil
}

func (r *stubSaleRepo) Save(_ context.Context, sale *trade.Sale) error {
	r.sale = sale
	return nil
}

func (r *stubSaleRepo) SaveWithLock(_ context.Context, sale *trade.Sale) error {
	r.sale = sale
	r.lockedSaves++
	return nil
}

type stubPurchaseRepo struct{}

func (r *stubPurchaseRepo) FindByID(_ context.Context, _ uuid.UUID) (*trade.Purchase, error) {
	return nil, shared.ErrNotFound
}
func (r *stubPurchaseRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.Purchase, error) {
	return []trade.Purchase{}, nil
}
func (r *stubPurchaseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) { return 0, nil }
func (r *stubPurchaseRepo) Save(_ context.Context, _ *trade.Purchase) error         { return nil }
func (r *stubPurchaseRepo) SaveWithLock(_ context.Context, _ *trade.Purchase) error { return nil }

type stubSaleReturnRepo struct {
	saved []trade.SaleReturn
}

func (r *stubSaleReturnRepo) FindByID(_ context.Context, _ uuid.UUID) (*trade.SaleReturn, error) {
	return nil, shared.ErrNotFound
}

func (r *stubSaleReturnRepo) FindBySale(_ context.Context, saleID uuid.UUID) ([]trade.SaleReturn, error) {
	out := []trade.SaleReturn{}
	for _, sr := range r.saved {
		if sr.OriginalSaleID == saleID {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (r *stubSaleReturnRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.SaleReturn, error) {
	return r.saved, nil
}

func (r *stubSaleReturnRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.saved)), nil
}

func (r *stubSaleReturnRepo) Save(_ context.Context, sr *trade.SaleReturn) error {
	r.saved = append(r.saved, *sr)
	return nil
}

type stubPurchaseReturnRepo struct{}

func (r *stubPurchaseReturnRepo) FindByID(_ context.Context, _ uuid.UUID) (*trade.PurchaseReturn, error) {
	return nil, shared.ErrNotFound
}
func (r *stubPurchaseReturnRepo) FindByPurchase(_ context.Context, _ uuid.UUID) ([]trade.PurchaseReturn, error) {
	return []trade.PurchaseReturn{}, nil
}
func (r *stubPurchaseReturnRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.PurchaseReturn, error) {
	return []trade.PurchaseReturn{}, nil
}
func (r *stubPurchaseReturnRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return 0, nil
}
func (r *stubPurchaseReturnRepo) Save(_ context.Context, _ *trade.PurchaseReturn) error { return nil }

type stubProductRepo struct {
	adjustments map[uuid.UUID]int
}

func (r *stubProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (r *stubProductRepo) FindByIDs(_ context.Context, _ []uuid.UUID) ([]catalog.Product, error) {
	return []catalog.Product{}, nil
}
func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return []catalog.Product{}, nil
}
func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) { return 0, nil }
func (r *stubProductRepo) Save(_ context.Context, _ *catalog.Product) error        { return nil }
func (r *stubProductRepo) SaveWithLock(_ context.Context, _ *catalog.Product) error {
	return nil
}

func (r *stubProductRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) error {
	if r.adjustments == nil {
		r.adjustments = make(map[uuid.UUID]int)
	}
	r.adjustments[id] += delta
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubCustomerRepo struct{}

func (r *stubCustomerRepo) FindByID(_ context.Context, _ uuid.UUID) (*partner.Customer, error) {
	return nil, shared.ErrNotFound
}
func (r *stubCustomerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Customer, error) {
	return []partner.Customer{}, nil
}
func (r *stubCustomerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) { return 0, nil }
func (r *stubCustomerRepo) Save(_ context.Context, _ *partner.Customer) error       { return nil }
func (r *stubCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

type saleHandlerFixture struct {
	router      *gin.Engine
	sale        *trade.Sale
	products    *stubProductRepo
	saleReturns *stubSaleReturnRepo
	actorID     uuid.UUID
}

func newSaleHandlerFixture(t *testing.T) *saleHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	actorID := uuid.New()
	sale, err := trade.NewSale(nil, "", actorID, []trade.SaleItemInput{
		{
			ProductID:    uuid.New(),
			ProductName:  "Widget",
			Quantity:     10,
			PricePerItem: valueobject.NewMoneyFromFloat(100),
			CostPrice:    valueobject.NewMoneyFromFloat(60),
		},
	})
	require.NoError(t, err)

	sales := &stubSaleRepo{sale: sale}
	purchases := &stubPurchaseRepo{}
	saleReturns := &stubSaleReturnRepo{}
	purchaseReturns := &stubPurchaseReturnRepo{}
	products := &stubProductRepo{}

	scope := returns.NewNoOpTransactionScope(sales, purchases, saleReturns, purchaseReturns, products)
	salesService := tradeapp.NewSalesService(scope, sales, saleReturns, &stubCustomerRepo{})
	returnService := returns.NewReturnService(scope, sales, purchases)

	handler := NewSaleHandler(salesService, returnService)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return &saleHandlerFixture{
		router:      router,
		sale:        sale,
		products:    products,
		saleReturns: saleReturns,
		actorID:     actorID,
	}
}

func (f *saleHandlerFixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", f.actorID.String())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSaleHandler_Returnable(t *testing.T) {
	t.Run("lists lines with remaining quantity", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		w := f.request(t, http.MethodGet, "/api/v1/sales/"+f.sale.ID.String()+"/returnable", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		lines, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, lines, 1)
		line := lines[0].(map[string]interface{})
		assert.Equal(t, "Widget", line["product_name"])
		assert.Equal(t, float64(10), line["remaining_quantity"])
	})

	t.Run("returns 404 for unknown sale", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		w := f.request(t, http.MethodGet, "/api/v1/sales/"+uuid.NewString()+"/returnable", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a malformed ID", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		w := f.request(t, http.MethodGet, "/api/v1/sales/not-a-uuid/returnable", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSaleHandler_SettleReturn(t *testing.T) {
	t.Run("settles a partial return", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":3}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", body)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["return_id"])
		assert.Equal(t, "300", data["total_amount"])

		// stock went back on the shelf, counters moved, a record exists
		assert.Equal(t, 3, f.products.adjustments[productID])
		assert.Equal(t, 3, f.sale.Items[0].ReturnedQuantity)
		assert.Len(t, f.saleReturns.saved, 1)
	})

	t.Run("rejects a selection beyond the remaining quantity", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":11}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.CodeExceedsReturnable, resp.Error.Code)
		assert.Empty(t, f.saleReturns.saved)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		body := `{"items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.CodeItemNotFound, resp.Error.Code)
	})

	t.Run("returns 404 for unknown sale", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":1}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+uuid.NewString()+"/returns", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("requires an acting user", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":1}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSaleHandler_ListReturns(t *testing.T) {
	t.Run("lists settled returns", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":2}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = f.request(t, http.MethodGet, "/api/v1/sales/"+f.sale.ID.String()+"/returns", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		records, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, records, 1)
	})

	t.Run("history endpoint lists returns across sales", func(t *testing.T) {
		f := newSaleHandlerFixture(t)
		productID := f.sale.Items[0].ProductID

		body := `{"items":[{"product_id":"` + productID.String() + `","quantity":1}]}`
		w := f.request(t, http.MethodPost, "/api/v1/sales/"+f.sale.ID.String()+"/returns", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = f.request(t, http.MethodGet, "/api/v1/sales-returns", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		records, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, records, 1)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})
}

func TestSaleHandler_Get(t *testing.T) {
	t.Run("returns the sale with items", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		w := f.request(t, http.MethodGet, "/api/v1/sales/"+f.sale.ID.String(), "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, f.sale.ID.String(), data["id"])
	})

	t.Run("returns 404 for unknown sale", func(t *testing.T) {
		f := newSaleHandlerFixture(t)

		w := f.request(t, http.MethodGet, "/api/v1/sales/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
