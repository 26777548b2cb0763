package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
	"github.com/sangkips/mi-inventory-api/pkg/pagination"
)

// SaleHandler handles the draft sale and the sales history
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) Current(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	sale, err := h.saleService.CurrentSale(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current sale retrieved", sale)
}

// AddItem rings up one unit of a catalog item.
func (h *SaleHandler) AddItem(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item := entity.CatalogItem{ID: req.ID, SKU: req.SKU, Name: req.Name, Price: req.Price}
	sale, err := h.saleService.AddItem(c.Request.Context(), ref, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", sale)
}

func (h *SaleHandler) SetQuantity(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.SetQuantity(c.Request.Context(), ref, c.Param("item_id"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", sale)
}

func (h *SaleHandler) SetLineStatus(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.SetLineStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := enum.ParseLineStatus(req.Status)
	if err != nil {
		response.ValidationError(c, "status", "must be one of active, voided, cancelled, complimentary")
		return
	}
	sale, err := h.saleService.SetLineStatus(c.Request.Context(), ref, c.Param("item_id"), status, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line status updated", sale)
}

func (h *SaleHandler) RemoveItem(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	sale, err := h.saleService.RemoveItem(c.Request.Context(), ref, c.Param("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", sale)
}

func (h *SaleHandler) ApplyDiscount(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.ApplyDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.ApplyDiscount(c.Request.Context(), ref, req.Discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", sale)
}

func (h *SaleHandler) SetServiceDetails(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.ServiceDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.SetServiceDetails(c.Request.Context(), ref, service.ServiceDetailsInput{
		Table:    req.Table,
		Waiter:   req.Waiter,
		Customer: req.Customer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service details updated", sale)
}

func (h *SaleHandler) Clear(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	sale, err := h.saleService.Clear(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale cleared", sale)
}

// Finalize completes the draft sale and starts the next one.
func (h *SaleHandler) Finalize(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.FinalizeSaleRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.saleService.Finalize(c.Request.Context(), ref, service.FinalizeInput{
		PaymentMethod: req.PaymentMethod,
		PrintReceipt:  req.PrintReceipt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Sale finalized", result)
}

// History lists the caller's finalized sales. scope=session narrows the
// listing to the current session.
func (h *SaleHandler) History(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var q request.SaleHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	params := service.HistoryParams{
		Pagination:    &pagination.Params{Page: q.Page, PerPage: q.PerPage},
		SessionOnly:   q.Scope == "session",
		PaymentMethod: q.PaymentMethod,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
	}
	result, err := h.saleService.ListHistory(c.Request.Context(), ref, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Sales history retrieved", result)
}

func (h *SaleHandler) HistorySale(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	sale, err := h.saleService.GetHistorySale(c.Request.Context(), ref, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved", sale)
}
