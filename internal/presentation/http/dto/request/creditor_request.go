package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCreditorRequest struct {
	SupplierName   string          `json:"supplier_name" binding:"max=255"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
}

// RecordSettlementRequest is a payment against a creditor. The date is a
// calendar day (YYYY-MM-DD) and defaults to today.
type RecordSettlementRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference" binding:"max=100"`
	Notes      string          `json:"notes" binding:"max=1000"`
	Date       string          `json:"date"`
	RecordedBy string          `json:"recorded_by" binding:"max=255"`
}

// ParsedDate returns nil when no date was sent.
func (r *RecordSettlementRequest) ParsedDate() (*time.Time, error) {
	if r.Date == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
