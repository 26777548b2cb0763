package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settledOn = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func newCreditor(t *testing.T, amount string) *entity.Creditor {
	t.Helper()
	c, err := entity.NewCreditor("ABC Food Supplies", dec(amount), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func settlement(amount string) entity.SettlementRecord {
	return entity.SettlementRecord{
		Amount: dec(amount),
		Date:   settledOn,
		Method: enum.SettlementMethodTransfer,
	}
}

func Test_NewCreditor(t *testing.T) {
	t.Run("starts_unpaid", func(t *testing.T) {
		c := newCreditor(t, "50000")
		assert.Equal(t, enum.CreditorStatusUnpaid, c.Status())
		assert.True(t, dec("50000").Equal(c.RemainingBalance()))
		assert.Empty(t, c.Settlements)
	})

	t.Run("collects_every_field_error", func(t *testing.T) {
		_, err := entity.NewCreditor(" ", decimal.Zero, time.Now())
		require.True(t, apperror.IsValidationError(err))
		appErr := apperror.GetAppError(err)
		require.Len(t, appErr.Errors, 2)
		assert.Equal(t, "supplier_name", appErr.Errors[0].Field)
		assert.Equal(t, "original_amount", appErr.Errors[1].Field)
	})
}

func Test_Creditor_RecordSettlement(t *testing.T) {
	t.Run("partial_then_full", func(t *testing.T) {
		c := newCreditor(t, "50000")

		require.NoError(t, c.RecordSettlement(settlement("20000"), enum.OverpaymentReject))
		assert.Equal(t, enum.CreditorStatusPartiallyPaid, c.Status())
		assert.True(t, dec("30000").Equal(c.RemainingBalance()))

		require.NoError(t, c.RecordSettlement(settlement("30000"), enum.OverpaymentReject))
		assert.Equal(t, enum.CreditorStatusFullyPaid, c.Status())
		assert.True(t, c.RemainingBalance().IsZero())
		assert.True(t, dec("50000").Equal(c.TotalPaid()))
	})

	t.Run("fills_id_and_recorder", func(t *testing.T) {
		c := newCreditor(t, "100")
		require.NoError(t, c.RecordSettlement(settlement("10"), enum.OverpaymentReject))
		rec := c.Settlements[0]
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", rec.ID.String())
		assert.Equal(t, entity.DefaultRecorder, rec.RecordedBy)
	})

	invalid := []struct {
		name   string
		record entity.SettlementRecord
		field  string
	}{
		{name: "zero_amount", record: settlement("0"), field: "amount"},
		{name: "negative_amount", record: settlement("-5"), field: "amount"},
		{
			name:   "unknown_method",
			record: entity.SettlementRecord{Amount: dec("5"), Date: settledOn, Method: enum.SettlementMethod(7)},
			field:  "method",
		},
		{
			name:   "missing_date",
			record: entity.SettlementRecord{Amount: dec("5"), Method: enum.SettlementMethodCash},
			field:  "date",
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreditor(t, "100")
			err := c.RecordSettlement(tt.record, enum.OverpaymentAllow)
			require.True(t, apperror.IsValidationError(err))
			assert.Equal(t, tt.field, apperror.GetAppError(err).Errors[0].Field)
			assert.Empty(t, c.Settlements)
		})
	}

	t.Run("overpayment_rejected_by_default_policy", func(t *testing.T) {
		c := newCreditor(t, "100")
		require.NoError(t, c.RecordSettlement(settlement("60"), enum.OverpaymentReject))

		err := c.RecordSettlement(settlement("40.01"), enum.OverpaymentReject)
		require.True(t, apperror.IsValidationError(err))
		assert.ErrorContains(t, err, "40.00")
		assert.Len(t, c.Settlements, 1)
	})

	t.Run("overpayment_allowed_goes_negative", func(t *testing.T) {
		c := newCreditor(t, "100")
		require.NoError(t, c.RecordSettlement(settlement("150"), enum.OverpaymentAllow))

		assert.True(t, dec("-50").Equal(c.RemainingBalance()))
		assert.True(t, c.DisplayBalance().IsZero())
		assert.Equal(t, enum.CreditorStatusFullyPaid, c.Status())
	})
}

func Test_DeriveCreditorStatus(t *testing.T) {
	tests := []struct {
		paid  string
		want  enum.CreditorStatus
		badge enum.BadgeCategory
	}{
		{paid: "0", want: enum.CreditorStatusUnpaid, badge: enum.BadgeDanger},
		{paid: "0.01", want: enum.CreditorStatusPartiallyPaid, badge: enum.BadgeWarning},
		{paid: "999.99", want: enum.CreditorStatusPartiallyPaid, badge: enum.BadgeWarning},
		{paid: "1000", want: enum.CreditorStatusFullyPaid, badge: enum.BadgeSuccess},
		{paid: "1200", want: enum.CreditorStatusFullyPaid, badge: enum.BadgeSuccess},
	}
	for _, tt := range tests {
		t.Run("paid_"+tt.paid, func(t *testing.T) {
			got := entity.DeriveCreditorStatus(dec("1000"), dec(tt.paid))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.badge, got.Badge())
		})
	}
}

func Test_Creditor_Clone(t *testing.T) {
	c := newCreditor(t, "100")
	require.NoError(t, c.RecordSettlement(settlement("10"), enum.OverpaymentReject))

	staged := c.Clone()
	require.NoError(t, staged.RecordSettlement(settlement("20"), enum.OverpaymentReject))

	assert.Len(t, c.Settlements, 1)
	assert.Len(t, staged.Settlements, 2)
}

func Test_Creditor_MarshalJSON(t *testing.T) {
	c := newCreditor(t, "50000")
	rec := settlement("20000")
	rec.Reference = "TXN123456"
	require.NoError(t, c.RecordSettlement(rec, enum.OverpaymentReject))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ABC Food Supplies", got["supplier_name"])
	assert.Equal(t, "Partially Paid", got["status"])
	assert.Equal(t, "warning", got["badge"])
	assert.Equal(t, "2024-01-10", got["created_at"])

	settlements := got["settlements"].([]any)
	require.Len(t, settlements, 1)
	first := settlements[0].(map[string]any)
	assert.Equal(t, "2024-01-15", first["date"])
	assert.Equal(t, "Transfer", first["method"])
	assert.Equal(t, "TXN123456", first["reference"])
}

func Test_Creditor_SettlementsKeepRecordingOrder(t *testing.T) {
	c := newCreditor(t, "50000")
	record := func(amount, ref string, method enum.SettlementMethod) entity.SettlementRecord {
		r := settlement(amount)
		r.Reference = ref
		r.Method = method
		return r
	}

	require.NoError(t, c.RecordSettlement(record("10000", "CSH-1", enum.SettlementMethodCash), enum.OverpaymentReject))
	assert.Equal(t, enum.CreditorStatusPartiallyPaid, c.Status())
	require.NoError(t, c.RecordSettlement(record("15000", "POS-2", enum.SettlementMethodPOS), enum.OverpaymentReject))
	assert.Equal(t, enum.CreditorStatusPartiallyPaid, c.Status())

	err := c.RecordSettlement(record("30000", "TRF-X", enum.SettlementMethodTransfer), enum.OverpaymentReject)
	require.True(t, apperror.IsValidationError(err))

	require.NoError(t, c.RecordSettlement(record("25000", "CHQ-3", enum.SettlementMethodCheque), enum.OverpaymentReject))
	assert.Equal(t, enum.CreditorStatusFullyPaid, c.Status())
	require.NoError(t, c.RecordSettlement(record("500", "CSH-4", enum.SettlementMethodCash), enum.OverpaymentAllow))

	var refs []string
	seen := map[string]bool{}
	for _, s := range c.Settlements {
		refs = append(refs, s.Reference)
		assert.False(t, seen[s.ID.String()], "settlement ids are distinct")
		seen[s.ID.String()] = true
	}
	assert.Equal(t, []string{"CSH-1", "POS-2", "CHQ-3", "CSH-4"}, refs)
	assert.True(t, dec("50500").Equal(c.TotalPaid()))
	assert.True(t, dec("-500").Equal(c.RemainingBalance()))
	assert.True(t, decimal.Zero.Equal(c.DisplayBalance()))
	assert.Equal(t, enum.CreditorStatusFullyPaid, c.Status())
}
