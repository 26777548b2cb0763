package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/application/session"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/sangkips/mi-inventory-api/pkg/metrics"
	"github.com/sangkips/mi-inventory-api/pkg/pagination"
	"github.com/sangkips/mi-inventory-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// saleIDAttempts bounds how often Finalize redraws a sale id that is
// already in the history.
const saleIDAttempts = 3

// PaymentIntent is what a finalized sale hands to the payment surface.
type PaymentIntent struct {
	SaleID       string          `json:"sale_id"`
	Method       string          `json:"method"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	PrintReceipt bool            `json:"print_receipt"`
	Sale         *entity.Sale    `json:"-"`
}

// PaymentSink receives payment intents after a sale is finalized.
type PaymentSink interface {
	HandlePaymentIntent(ctx context.Context, intent PaymentIntent) error
}

// FinalizeInput carries the checkout choices.
type FinalizeInput struct {
	PaymentMethod string
	PrintReceipt  bool
}

// FinalizeResult holds the completed sale and the draft that replaced it.
type FinalizeResult struct {
	Sale    *entity.Sale  `json:"sale"`
	Next    *entity.Sale  `json:"next_sale"`
	Payment PaymentIntent `json:"payment"`
	Warning string        `json:"warning,omitempty"`
}

// ServiceDetailsInput are the table-service fields of a draft sale.
type ServiceDetailsInput struct {
	Table    string
	Waiter   string
	Customer string
}

// SaleService runs sale ledger commands against a session's draft sale.
type SaleService struct {
	sessions *session.Store
	history  repository.SaleHistoryRepository
	payments PaymentSink
	metrics  *metrics.Collector
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(
	sessions *session.Store,
	history repository.SaleHistoryRepository,
	payments PaymentSink,
	m *metrics.Collector,
) *SaleService {
	return &SaleService{
		sessions: sessions,
		history:  history,
		payments: payments,
		metrics:  m,
		now:      time.Now,
	}
}

// CurrentSale returns a snapshot of the draft sale.
func (s *SaleService) CurrentSale(ctx context.Context, ref SessionRef) (*entity.Sale, error) {
	return s.command(ref, "view", func(*session.Session, *entity.Sale) error { return nil })
}

func (s *SaleService) AddItem(ctx context.Context, ref SessionRef, item entity.CatalogItem) (*entity.Sale, error) {
	return s.command(ref, "add_item", func(_ *session.Session, sale *entity.Sale) error {
		return sale.AddItem(item)
	})
}

func (s *SaleService) SetQuantity(ctx context.Context, ref SessionRef, itemID string, quantity int) (*entity.Sale, error) {
	return s.command(ref, "set_quantity", func(_ *session.Session, sale *entity.Sale) error {
		return sale.SetQuantity(itemID, quantity)
	})
}

func (s *SaleService) RemoveItem(ctx context.Context, ref SessionRef, itemID string) (*entity.Sale, error) {
	return s.command(ref, "remove_item", func(_ *session.Session, sale *entity.Sale) error {
		return sale.RemoveItem(itemID)
	})
}

func (s *SaleService) SetLineStatus(ctx context.Context, ref SessionRef, itemID string, status enum.LineStatus, reason string) (*entity.Sale, error) {
	sale, err := s.command(ref, "set_line_status", func(_ *session.Session, sale *entity.Sale) error {
		return sale.SetLineStatus(itemID, status, reason)
	})
	if err == nil {
		s.metrics.LineStatusChanges.WithLabelValues(status.String()).Inc()
	}
	return sale, err
}

func (s *SaleService) ApplyDiscount(ctx context.Context, ref SessionRef, amount decimal.Decimal) (*entity.Sale, error) {
	return s.command(ref, "apply_discount", func(_ *session.Session, sale *entity.Sale) error {
		return sale.ApplyDiscount(amount)
	})
}

// SetServiceDetails records table, waiter and customer. A table can only be
// set when the industry has table service.
func (s *SaleService) SetServiceDetails(ctx context.Context, ref SessionRef, in ServiceDetailsInput) (*entity.Sale, error) {
	return s.command(ref, "set_service_details", func(sess *session.Session, sale *entity.Sale) error {
		if in.Table != "" && !sess.State.Capabilities().HasTableService {
			return apperror.NewFieldError("table", "table service is not enabled for this industry")
		}
		return sale.SetServiceDetails(in.Table, in.Waiter, in.Customer)
	})
}

// Clear discards the draft without archiving it and starts a new one.
func (s *SaleService) Clear(ctx context.Context, ref SessionRef) (*entity.Sale, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	var next *entity.Sale
	err = sess.Do(func(sess *session.Session) error {
		if err := CheckSalesAvailable(sess.State); err != nil {
			return err
		}
		sess.Sale = newDraftSale(sess, s.now())
		next = sess.Sale.Clone()
		return nil
	})
	return next, err
}

// Finalize completes the draft sale, appends it to the sales history and
// replaces it with a fresh draft. If the history append fails the draft is
// left as it was. A sale id that collides with an archived sale is redrawn.
func (s *SaleService) Finalize(ctx context.Context, ref SessionRef, in FinalizeInput) (*FinalizeResult, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	var result *FinalizeResult
	err = sess.Do(func(sess *session.Session) error {
		if err := CheckSalesAvailable(sess.State); err != nil {
			return err
		}

		now := s.now()
		staged := sess.Sale.Clone()
		if err := staged.Finalize(in.PaymentMethod, now); err != nil {
			return err
		}
		err := s.history.Append(ctx, staged)
		for attempt := 1; errors.Is(err, repository.ErrDuplicateSaleID) && attempt < saleIDAttempts; attempt++ {
			slog.WarnContext(ctx, "sale id already archived, redrawing", "sale_id", staged.ID, "attempt", attempt)
			staged.ID = utils.NewSaleID()
			err = s.history.Append(ctx, staged)
		}
		if err != nil {
			return fmt.Errorf("failed to archive sale %s: %w", staged.ID, err)
		}

		sess.Sale = newDraftSale(sess, now)
		result = &FinalizeResult{
			Sale: staged.Clone(),
			Next: sess.Sale.Clone(),
			Payment: PaymentIntent{
				SaleID:       staged.ID,
				Method:       staged.PaymentMethod,
				Subtotal:     staged.Subtotal,
				Discount:     staged.Discount,
				Total:        staged.Total,
				PrintReceipt: in.PrintReceipt,
				Sale:         staged,
			},
		}
		return nil
	})
	if err != nil {
		s.reject("finalize", err)
		return nil, err
	}

	s.metrics.SalesFinalized.WithLabelValues(result.Payment.Method).Inc()
	metrics.AddAmount(s.metrics.SalesRevenue, result.Payment.Total)
	slog.InfoContext(ctx, "sale finalized",
		"sale_id", result.Sale.ID,
		"session_id", ref.SessionID,
		"method", result.Payment.Method,
		"total", result.Payment.Total.StringFixed(2),
	)

	if s.payments != nil {
		if err := s.payments.HandlePaymentIntent(ctx, result.Payment); err != nil {
			slog.WarnContext(ctx, "payment intent not handled", "sale_id", result.Sale.ID, "error", err)
			result.Warning = err.Error()
		}
	}
	return result, nil
}

// HistoryParams filters the sales history listing.
type HistoryParams struct {
	Pagination    *pagination.Params
	SessionOnly   bool
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ListHistory returns the user's finalized sales, most recent first.
func (s *SaleService) ListHistory(ctx context.Context, ref SessionRef, params HistoryParams) (*pagination.Result[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.Default()
	}
	params.Pagination.Validate()

	filter := &repository.SaleHistoryFilterParams{
		Pagination:    params.Pagination,
		CashierID:     &ref.UserID,
		PaymentMethod: params.PaymentMethod,
		StartDate:     params.StartDate,
	}
	if params.EndDate != nil {
		// the end date is inclusive of the whole day
		end := params.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &end
	}
	if params.SessionOnly {
		filter.SessionID = &ref.SessionID
	}

	sales, total, err := s.history.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales history: %w", err)
	}
	return pagination.NewResult(sales, pagination.NewMeta(params.Pagination, total)), nil
}

// GetHistorySale returns one archived sale of the user.
func (s *SaleService) GetHistorySale(ctx context.Context, ref SessionRef, id string) (*entity.Sale, error) {
	sale, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale %s: %w", id, err)
	}
	if sale == nil || sale.CashierID != ref.UserID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// command stages fn on a copy of the draft sale and commits the copy only
// when fn succeeds.
func (s *SaleService) command(ref SessionRef, name string, fn func(*session.Session, *entity.Sale) error) (*entity.Sale, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	var snapshot *entity.Sale
	err = sess.Do(func(sess *session.Session) error {
		if err := CheckSalesAvailable(sess.State); err != nil {
			return err
		}
		staged := sess.Sale.Clone()
		if err := fn(sess, staged); err != nil {
			return err
		}
		sess.Sale = staged
		snapshot = staged.Clone()
		return nil
	})
	if err != nil {
		s.reject(name, err)
		return nil, err
	}
	return snapshot, nil
}

func (s *SaleService) reject(command string, err error) {
	reason := rejectionReason(err)
	s.metrics.CommandsRejected.WithLabelValues("sale", reason).Inc()
	slog.Debug("sale command rejected", "command", command, "reason", reason, "error", err)
}
