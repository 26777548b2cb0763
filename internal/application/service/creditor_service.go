package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/application/session"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/sangkips/mi-inventory-api/pkg/metrics"
	"github.com/sangkips/mi-inventory-api/pkg/report"
	"github.com/shopspring/decimal"
)

// OpenCreditorInput describes a new supplier obligation.
type OpenCreditorInput struct {
	SupplierName   string
	OriginalAmount decimal.Decimal
}

// RecordSettlementInput is a payment against a creditor.
type RecordSettlementInput struct {
	Amount     decimal.Decimal
	Method     string
	Reference  string
	Notes      string
	RecordedBy string
	// Date defaults to today.
	Date *time.Time
}

// BalanceView is the balance projection of a creditor.
type BalanceView struct {
	CreditorID       uuid.UUID           `json:"creditor_id"`
	OriginalAmount   decimal.Decimal     `json:"original_amount"`
	TotalPaid        decimal.Decimal     `json:"total_paid"`
	RemainingBalance decimal.Decimal     `json:"remaining_balance"`
	DisplayBalance   decimal.Decimal     `json:"display_balance"`
	Status           enum.CreditorStatus `json:"status"`
	Badge            enum.BadgeCategory  `json:"badge"`
}

// CreditorService runs settlement commands against a session's creditors.
type CreditorService struct {
	sessions *session.Store
	policy   enum.OverpaymentPolicy
	metrics  *metrics.Collector
	now      func() time.Time
}

// NewCreditorService creates a new creditor service
func NewCreditorService(sessions *session.Store, policy enum.OverpaymentPolicy, m *metrics.Collector) *CreditorService {
	return &CreditorService{
		sessions: sessions,
		policy:   policy,
		metrics:  m,
		now:      time.Now,
	}
}

// ListCreditors returns the session's creditors in the order they were opened.
func (s *CreditorService) ListCreditors(ctx context.Context, ref SessionRef) ([]*entity.Creditor, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	var out []*entity.Creditor
	_ = sess.Do(func(sess *session.Session) error {
		out = make([]*entity.Creditor, 0, len(sess.Creditors))
		for _, c := range sess.Creditors {
			out = append(out, c.Clone())
		}
		return nil
	})
	return out, nil
}

func (s *CreditorService) GetCreditor(ctx context.Context, ref SessionRef, id uuid.UUID) (*entity.Creditor, error) {
	var out *entity.Creditor
	err := s.withCreditor(ref, id, func(c *entity.Creditor) error {
		out = c.Clone()
		return nil
	})
	return out, err
}

// OpenCreditor adds a new obligation to the session's creditor book.
func (s *CreditorService) OpenCreditor(ctx context.Context, ref SessionRef, in OpenCreditorInput) (*entity.Creditor, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	creditor, err := entity.NewCreditor(in.SupplierName, in.OriginalAmount, s.now())
	if err != nil {
		s.reject(err)
		return nil, err
	}
	_ = sess.Do(func(sess *session.Session) error {
		sess.Creditors = append(sess.Creditors, creditor)
		return nil
	})
	return creditor.Clone(), nil
}

// RecordSettlement appends a payment to a creditor. The history is left
// untouched when the payment is rejected.
func (s *CreditorService) RecordSettlement(ctx context.Context, ref SessionRef, creditorID uuid.UUID, in RecordSettlementInput) (*entity.Creditor, error) {
	method, err := enum.ParseSettlementMethod(strings.TrimSpace(in.Method))
	if err != nil {
		err = apperror.NewFieldError("method", "must be one of Cash, POS, Transfer, Cheque")
		s.reject(err)
		return nil, err
	}

	date := s.today()
	if in.Date != nil {
		date = *in.Date
	}
	record := entity.SettlementRecord{
		Amount:     in.Amount,
		Date:       date,
		Method:     method,
		Reference:  strings.TrimSpace(in.Reference),
		Notes:      strings.TrimSpace(in.Notes),
		RecordedBy: strings.TrimSpace(in.RecordedBy),
	}

	var out *entity.Creditor
	err = s.withCreditor(ref, creditorID, func(c *entity.Creditor) error {
		if err := c.RecordSettlement(record, s.policy); err != nil {
			return err
		}
		out = c.Clone()
		return nil
	})
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.metrics.SettlementsRecorded.WithLabelValues(method.String()).Inc()
	metrics.AddAmount(s.metrics.SettlementAmount, in.Amount)
	slog.InfoContext(ctx, "settlement recorded",
		"creditor_id", creditorID,
		"amount", in.Amount.StringFixed(2),
		"method", method.String(),
		"status", out.Status().String(),
	)
	return out, nil
}

// RemainingBalance recomputes the balance from the settlement history.
func (s *CreditorService) RemainingBalance(ctx context.Context, ref SessionRef, id uuid.UUID) (*BalanceView, error) {
	var view *BalanceView
	err := s.withCreditor(ref, id, func(c *entity.Creditor) error {
		status := c.Status()
		view = &BalanceView{
			CreditorID:       c.ID,
			OriginalAmount:   c.OriginalAmount,
			TotalPaid:        c.TotalPaid(),
			RemainingBalance: c.RemainingBalance(),
			DisplayBalance:   c.DisplayBalance(),
			Status:           status,
			Badge:            status.Badge(),
		}
		return nil
	})
	return view, err
}

// SettlementHistory returns the settlements in the order they were recorded.
func (s *CreditorService) SettlementHistory(ctx context.Context, ref SessionRef, id uuid.UUID) ([]entity.SettlementRecord, error) {
	var out []entity.SettlementRecord
	err := s.withCreditor(ref, id, func(c *entity.Creditor) error {
		out = c.Clone().Settlements
		return nil
	})
	return out, err
}

// Statement renders the creditor's settlement history as a PDF and returns
// it together with a download file name.
func (s *CreditorService) Statement(ctx context.Context, ref SessionRef, id uuid.UUID) ([]byte, string, error) {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, "", err
	}

	var (
		creditor *entity.Creditor
		company  string
	)
	err = sess.Do(func(sess *session.Session) error {
		c, _, ok := sess.Creditor(id)
		if !ok {
			return apperror.NewNotFoundError("Creditor")
		}
		creditor = c.Clone()
		company = sess.State.CompanyName()
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	pdf, err := report.CreditorStatement(company, creditor, now)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("creditor_statement_%s_%s.pdf", creditor.ID.String()[:8], now.Format("20060102"))
	return pdf, filename, nil
}

// withCreditor runs fn on a staged copy of the creditor and swaps the copy
// in only when fn succeeds.
func (s *CreditorService) withCreditor(ref SessionRef, id uuid.UUID, fn func(*entity.Creditor) error) error {
	sess, err := s.sessions.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return err
	}
	return sess.Do(func(sess *session.Session) error {
		current, idx, ok := sess.Creditor(id)
		if !ok {
			return apperror.NewNotFoundError("Creditor")
		}
		staged := current.Clone()
		if err := fn(staged); err != nil {
			return err
		}
		sess.Creditors[idx] = staged
		return nil
	})
}

func (s *CreditorService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *CreditorService) reject(err error) {
	reason := rejectionReason(err)
	s.metrics.CommandsRejected.WithLabelValues("creditor", reason).Inc()
	slog.Debug("creditor command rejected", "reason", reason, "error", err)
}
