package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary returns the caller's takings for a date range.
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var q request.SalesSummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	summary, err := h.reportService.SalesSummary(c.Request.Context(), ref, q.StartDate, q.EndDate, q.Top)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved", summary)
}
