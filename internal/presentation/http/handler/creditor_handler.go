package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

// CreditorHandler handles creditor and settlement requests
type CreditorHandler struct {
	creditorService *service.CreditorService
}

// NewCreditorHandler creates a new creditor handler
func NewCreditorHandler(creditorService *service.CreditorService) *CreditorHandler {
	return &CreditorHandler{creditorService: creditorService}
}

func (h *CreditorHandler) List(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	creditors, err := h.creditorService.ListCreditors(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Creditors retrieved", creditors)
}

func (h *CreditorHandler) Create(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.CreateCreditorRequest
	if !bindJSON(c, &req) {
		return
	}
	creditor, err := h.creditorService.OpenCreditor(c.Request.Context(), ref, service.OpenCreditorInput{
		SupplierName:   req.SupplierName,
		OriginalAmount: req.OriginalAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Creditor created", creditor)
}

func (h *CreditorHandler) Get(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Creditor")
	if !ok {
		return
	}
	creditor, err := h.creditorService.GetCreditor(c.Request.Context(), ref, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Creditor retrieved", creditor)
}

func (h *CreditorHandler) Balance(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Creditor")
	if !ok {
		return
	}
	balance, err := h.creditorService.RemainingBalance(c.Request.Context(), ref, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Balance retrieved", balance)
}

func (h *CreditorHandler) Settlements(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Creditor")
	if !ok {
		return
	}
	history, err := h.creditorService.SettlementHistory(c.Request.Context(), ref, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settlements retrieved", history)
}

// RecordSettlement applies a payment and returns the updated creditor.
func (h *CreditorHandler) RecordSettlement(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Creditor")
	if !ok {
		return
	}
	var req request.RecordSettlementRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := req.ParsedDate()
	if err != nil {
		response.ValidationError(c, "date", "must be a date in YYYY-MM-DD format")
		return
	}

	recordedBy := req.RecordedBy
	if recordedBy == "" {
		recordedBy = GetUserName(c)
	}
	creditor, err := h.creditorService.RecordSettlement(c.Request.Context(), ref, id, service.RecordSettlementInput{
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
		RecordedBy: recordedBy,
		Date:       date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Settlement recorded", creditor)
}

// Statement downloads the creditor's settlement statement as a PDF.
func (h *CreditorHandler) Statement(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Creditor")
	if !ok {
		return
	}
	pdf, filename, err := h.creditorService.Statement(c.Request.Context(), ref, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", filename, pdf)
}
