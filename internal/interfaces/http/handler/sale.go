package handler

import (
	"github.com/retailpos/backend/internal/application/returns"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale and sale-return API endpoints
type SaleHandler struct {
	BaseHandler
	salesService  *tradeapp.SalesService
	returnService *returns.ReturnService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(salesService *tradeapp.SalesService, returnService *returns.ReturnService) *SaleHandler {
	return &SaleHandler{
		salesService:  salesService,
		returnService: returnService,
	}
}

// RegisterRoutes registers sale routes on the given group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.GET("/:id/returnable", h.Returnable)
		sales.POST("/:id/returns", h.SettleReturn)
		sales.GET("/:id/returns", h.ListReturns)
	}
	rg.GET("/sales-returns", h.ListAllReturns)
}

// SettleReturnRequest carries the line selections for a return
type SettleReturnRequest struct {
	Items []returns.ReturnSelection `json:"items" binding:"required"`
}

// Create records a completed sale
func (h *SaleHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing user ID")
		return
	}

	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get returns a single sale with its line items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.salesService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List returns a page of sales
func (h *SaleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	result, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Returnable lists the sale's lines that still have returnable quantity
func (h *SaleHandler) Returnable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	lines, err := h.returnService.PreviewSaleReturnable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// SettleReturn settles a return against the sale
func (h *SaleHandler) SettleReturn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing user ID")
		return
	}

	var req SettleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.returnService.SettleSaleReturn(c.Request.Context(), id, actorID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListAllReturns returns the sale return history across all sales
func (h *SaleHandler) ListAllReturns(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	result, err := h.salesService.ListAllReturns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// ListReturns lists the return records settled against the sale
func (h *SaleHandler) ListReturns(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	records, err := h.salesService.ListReturns(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}
