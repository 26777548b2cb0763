package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for settlement dates.
const DateLayout = "2006-01-02"

// DefaultRecorder is used when a settlement arrives without an actor.
const DefaultRecorder = "Procurement Officer"

// SettlementRecord is one payment applied against a creditor. Records are
// never edited or removed once appended.
type SettlementRecord struct {
	ID         uuid.UUID             `json:"id"`
	Amount     decimal.Decimal       `json:"amount"`
	Date       time.Time             `json:"date"`
	Method     enum.SettlementMethod `json:"method"`
	Reference  string                `json:"reference,omitempty"`
	RecordedBy string                `json:"recorded_by"`
	Notes      string                `json:"notes,omitempty"`
}

// MarshalJSON renders the date as YYYY-MM-DD.
func (r SettlementRecord) MarshalJSON() ([]byte, error) {
	type Alias SettlementRecord
	return json.Marshal(&struct {
		Alias
		Date string `json:"date"`
	}{
		Alias: Alias(r),
		Date:  r.Date.Format(DateLayout),
	})
}

// Creditor is an obligation owed to a supplier, paid down by settlements.
type Creditor struct {
	ID             uuid.UUID
	SupplierName   string
	OriginalAmount decimal.Decimal
	CreatedAt      time.Time
	Settlements    []SettlementRecord
}

// NewCreditor opens an obligation. The original amount is fixed from here on.
func NewCreditor(supplierName string, originalAmount decimal.Decimal, createdAt time.Time) (*Creditor, error) {
	var fieldErrors []apperror.FieldError
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "supplier_name", Message: "is required"})
	}
	if !originalAmount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "original_amount", Message: "must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	return &Creditor{
		ID:             uuid.New(),
		SupplierName:   supplierName,
		OriginalAmount: originalAmount,
		CreatedAt:      createdAt,
		Settlements:    []SettlementRecord{},
	}, nil
}

// TotalPaid sums every recorded settlement.
func (c *Creditor) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.Settlements {
		total = total.Add(s.Amount)
	}
	return total
}

// RemainingBalance is originalAmount minus totalPaid. It is negative when
// the creditor has been overpaid.
func (c *Creditor) RemainingBalance() decimal.Decimal {
	return c.OriginalAmount.Sub(c.TotalPaid())
}

// DisplayBalance is RemainingBalance clamped at zero.
func (c *Creditor) DisplayBalance() decimal.Decimal {
	return decimal.Max(decimal.Zero, c.RemainingBalance())
}

// Status is derived from the settlement history on every call.
func (c *Creditor) Status() enum.CreditorStatus {
	return DeriveCreditorStatus(c.OriginalAmount, c.TotalPaid())
}

// DeriveCreditorStatus applies the paid/partially/unpaid rule.
func DeriveCreditorStatus(originalAmount, totalPaid decimal.Decimal) enum.CreditorStatus {
	switch {
	case totalPaid.GreaterThanOrEqual(originalAmount):
		return enum.CreditorStatusFullyPaid
	case totalPaid.IsPositive():
		return enum.CreditorStatusPartiallyPaid
	default:
		return enum.CreditorStatusUnpaid
	}
}

// RecordSettlement validates and appends a settlement. On error the
// settlement history is left untouched.
func (c *Creditor) RecordSettlement(record SettlementRecord, policy enum.OverpaymentPolicy) error {
	var fieldErrors []apperror.FieldError
	if !record.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if !record.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "method", Message: "must be one of Cash, POS, Transfer, Cheque"})
	}
	if record.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "is required"})
	}
	if len(fieldErrors) == 0 && policy == enum.OverpaymentReject {
		remaining := c.RemainingBalance()
		if record.Amount.GreaterThan(remaining) {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "amount",
				Message: "exceeds the remaining balance of " + decimal.Max(decimal.Zero, remaining).StringFixed(2),
			})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if strings.TrimSpace(record.RecordedBy) == "" {
		record.RecordedBy = DefaultRecorder
	}
	c.Settlements = append(c.Settlements, record)
	return nil
}

// Clone returns a copy whose settlement slice is independent of c.
func (c *Creditor) Clone() *Creditor {
	out := *c
	out.Settlements = make([]SettlementRecord, len(c.Settlements))
	copy(out.Settlements, c.Settlements)
	return &out
}

// MarshalJSON adds the derived projections next to the stored fields.
func (c *Creditor) MarshalJSON() ([]byte, error) {
	status := c.Status()
	return json.Marshal(&struct {
		ID               uuid.UUID           `json:"id"`
		SupplierName     string              `json:"supplier_name"`
		OriginalAmount   decimal.Decimal     `json:"original_amount"`
		TotalPaid        decimal.Decimal     `json:"total_paid"`
		RemainingBalance decimal.Decimal     `json:"remaining_balance"`
		DisplayBalance   decimal.Decimal     `json:"display_balance"`
		Status           enum.CreditorStatus `json:"status"`
		Badge            enum.BadgeCategory  `json:"badge"`
		CreatedAt        string              `json:"created_at"`
		Settlements      []SettlementRecord  `json:"settlements"`
	}{
		ID:               c.ID,
		SupplierName:     c.SupplierName,
		OriginalAmount:   c.OriginalAmount,
		TotalPaid:        c.TotalPaid(),
		RemainingBalance: c.RemainingBalance(),
		DisplayBalance:   c.DisplayBalance(),
		Status:           status,
		Badge:            status.Badge(),
		CreatedAt:        c.CreatedAt.Format(DateLayout),
		Settlements:      c.Settlements,
	})
}
