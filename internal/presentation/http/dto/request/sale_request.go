package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest carries the catalog record being rung up.
type AddItemRequest struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"name" binding:"max=255"`
	Price decimal.Decimal `json:"price"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type SetLineStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

type ApplyDiscountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

type ServiceDetailsRequest struct {
	Table    string `json:"table" binding:"max=50"`
	Waiter   string `json:"waiter" binding:"max=100"`
	Customer string `json:"customer" binding:"max=255"`
}

type FinalizeSaleRequest struct {
	PaymentMethod string `json:"payment_method"`
	PrintReceipt  bool   `json:"print_receipt"`
}

// SaleHistoryQuery are the query parameters of the sales history listing.
type SaleHistoryQuery struct {
	Page          int        `form:"page"`
	PerPage       int        `form:"per_page"`
	Scope         string     `form:"scope" binding:"omitempty,oneof=session user"`
	PaymentMethod string     `form:"payment_method"`
	StartDate     *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate       *time.Time `form:"end_date" time_format:"2006-01-02"`
}

type SalesSummaryQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Top       int        `form:"top" binding:"omitempty,min=1,max=50"`
}
