package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var errInvalidRange = apperror.NewFieldError("start_date", "must not be after end_date")

// ReportService summarizes the caller's sales history.
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository) *ReportService {
	return &ReportService{analyticsRepo: analyticsRepo, now: time.Now}
}

// SalesSummary is the takings of a cashier over a date range.
type SalesSummary struct {
	From            string               `json:"from"`
	To              string               `json:"to"`
	SaleCount       int64                `json:"sale_count"`
	Revenue         decimal.Decimal      `json:"revenue"`
	ByPaymentMethod []PaymentMethodPoint `json:"by_payment_method"`
	TopItems        []TopItemPoint       `json:"top_items"`
	LineStatuses    []LineStatusPoint    `json:"line_statuses"`
}

type PaymentMethodPoint struct {
	Method    string          `json:"method"`
	SaleCount int64           `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type TopItemPoint struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type LineStatusPoint struct {
	Status   enum.LineStatus `json:"status"`
	Lines    int64           `json:"lines"`
	Quantity int64           `json:"quantity"`
}

// SalesSummary aggregates completed sales between from and to, both
// inclusive calendar days. A missing from defaults to 30 days before to,
// and a missing to defaults to today.
func (s *ReportService) SalesSummary(ctx context.Context, ref SessionRef, from, to *time.Time, topN int) (*SalesSummary, error) {
	y, m, d := s.now().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	if start.After(end) {
		return nil, errInvalidRange
	}
	endExclusive := end.AddDate(0, 0, 1)

	filter := repository.AnalyticsFilter{
		CashierID: ref.UserID,
		StartDate: &start,
		EndDate:   &endExclusive,
	}

	byMethod, err := s.analyticsRepo.SalesByPaymentMethod(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize payment methods: %w", err)
	}
	topItems, err := s.analyticsRepo.TopItems(ctx, filter, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to load top items: %w", err)
	}
	statuses, err := s.analyticsRepo.LineStatusBreakdown(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load line statuses: %w", err)
	}

	summary := &SalesSummary{
		From:            start.Format("2006-01-02"),
		To:              end.Format("2006-01-02"),
		Revenue:         decimal.Zero,
		ByPaymentMethod: make([]PaymentMethodPoint, 0, len(byMethod)),
		TopItems:        make([]TopItemPoint, 0, len(topItems)),
		LineStatuses:    make([]LineStatusPoint, 0, len(statuses)),
	}
	for _, row := range byMethod {
		summary.SaleCount += row.SaleCount
		summary.Revenue = summary.Revenue.Add(row.Revenue)
		summary.ByPaymentMethod = append(summary.ByPaymentMethod, PaymentMethodPoint{
			Method:    row.PaymentMethod,
			SaleCount: row.SaleCount,
			Revenue:   row.Revenue.Round(2),
		})
	}
	for _, row := range topItems {
		summary.TopItems = append(summary.TopItems, TopItemPoint{
			ItemID:       row.ItemID,
			Name:         row.Name,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue.Round(2),
		})
	}
	for _, row := range statuses {
		status := enum.LineStatus(row.Status)
		if !status.IsValid() {
			continue
		}
		summary.LineStatuses = append(summary.LineStatuses, LineStatusPoint{
			Status:   status,
			Lines:    row.LineCount,
			Quantity: row.Quantity,
		})
	}
	summary.Revenue = summary.Revenue.Round(2)
	return summary, nil
}
