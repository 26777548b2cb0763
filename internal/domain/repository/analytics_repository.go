package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethodTotal is the revenue taken through one payment method.
type PaymentMethodTotal struct {
	PaymentMethod string
	SaleCount     int64
	Revenue       decimal.Decimal
}

// TopItemResult is an item's sales performance over active lines.
type TopItemResult struct {
	ItemID       string
	Name         string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// LineStatusCount counts archived lines per status.
type LineStatusCount struct {
	Status    int
	LineCount int64
	Quantity  int64
}

// AnalyticsFilter scopes aggregation to one cashier and a completion window.
type AnalyticsFilter struct {
	CashierID uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time // exclusive
}

// AnalyticsRepository runs aggregation queries over the sales history.
type AnalyticsRepository interface {
	// SalesByPaymentMethod returns totals ordered by revenue.
	SalesByPaymentMethod(ctx context.Context, filter AnalyticsFilter) ([]PaymentMethodTotal, error)
	TopItems(ctx context.Context, filter AnalyticsFilter, limit int) ([]TopItemResult, error)
	LineStatusBreakdown(ctx context.Context, filter AnalyticsFilter) ([]LineStatusCount, error)
}
