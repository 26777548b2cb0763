package request

// PrintReceiptRequest reprints the receipt of a finalized sale.
type PrintReceiptRequest struct {
	SaleID string `json:"sale_id" binding:"required"`
}
