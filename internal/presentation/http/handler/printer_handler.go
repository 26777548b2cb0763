package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printer requests.
type PrinterHandler struct {
	receiptService *service.ReceiptService
	saleService    *service.SaleService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(receiptService *service.ReceiptService, saleService *service.SaleService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService, saleService: saleService}
}

func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus())
}

// TestPrint sends a sample receipt. The receipt is returned even when no
// printer is attached.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}
	response.OK(c, "Test page sent to printer", gin.H{"receipt": receipt})
}

// PrintReceipt reprints the receipt of one of the caller's finalized sales.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.PrintReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sale, err := h.saleService.GetHistorySale(ctx, ref, req.SaleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	receipt, err := h.receiptService.PrintSale(ctx, sale)
	if err != nil {
		response.OK(c, "Receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}
	response.OK(c, "Receipt printed", gin.H{"receipt": receipt})
}
