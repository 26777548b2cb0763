package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreditorService_DemoBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, enum.OverpaymentReject)
	ref := f.open(t)

	creditors, err := f.creditors.ListCreditors(ctx, ref)
	require.NoError(t, err)
	require.Len(t, creditors, 2)

	abc := creditors[0]
	assert.Equal(t, "ABC Food Supplies", abc.SupplierName)
	assert.Equal(t, enum.CreditorStatusPartiallyPaid, abc.Status())
	assert.True(t, dec("30000").Equal(abc.RemainingBalance()))
	require.Len(t, abc.Settlements, 1)
	assert.Equal(t, "TXN123456", abc.Settlements[0].Reference)

	xyz := creditors[1]
	assert.Equal(t, "XYZ Equipment Ltd", xyz.SupplierName)
	assert.Equal(t, enum.CreditorStatusUnpaid, xyz.Status())
}

func Test_CreditorService_OpenAndSettle(t *testing.T) {
	ctx := context.Background()

	t.Run("full_lifecycle", func(t *testing.T) {
		f := newFixture(t, false, enum.OverpaymentReject)
		ref := f.open(t)

		c, err := f.creditors.OpenCreditor(ctx, ref, OpenCreditorInput{SupplierName: "Fresh Farm", OriginalAmount: dec("1000")})
		require.NoError(t, err)
		assert.Equal(t, f.clock, c.CreatedAt)

		_, err = f.creditors.RecordSettlement(ctx, ref, c.ID, RecordSettlementInput{
			Amount: dec("400"), Method: "Cash", RecordedBy: " Tom ",
		})
		require.NoError(t, err)

		balance, err := f.creditors.RemainingBalance(ctx, ref, c.ID)
		require.NoError(t, err)
		assert.True(t, dec("600").Equal(balance.RemainingBalance))
		assert.Equal(t, enum.CreditorStatusPartiallyPaid, balance.Status)
		assert.Equal(t, enum.BadgeWarning, balance.Badge)

		updated, err := f.creditors.RecordSettlement(ctx, ref, c.ID, RecordSettlementInput{Amount: dec("600"), Method: "Cheque"})
		require.NoError(t, err)
		assert.Equal(t, enum.CreditorStatusFullyPaid, updated.Status())

		history, err := f.creditors.SettlementHistory(ctx, ref, c.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Tom", history[0].RecordedBy)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), history[0].Date)
		assert.Equal(t, enum.SettlementMethodCheque, history[1].Method)

		assert.Equal(t, 2, testutil.CollectAndCount(f.metrics.SettlementsRecorded))
		assert.Equal(t, 1000.0, testutil.ToFloat64(f.metrics.SettlementAmount))
	})

	t.Run("invalid_creditor", func(t *testing.T) {
		f := newFixture(t, false, enum.OverpaymentReject)
		ref := f.open(t)

		_, err := f.creditors.OpenCreditor(ctx, ref, OpenCreditorInput{SupplierName: "", OriginalAmount: dec("0")})
		assert.True(t, apperror.IsValidationError(err))

		list, err := f.creditors.ListCreditors(ctx, ref)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unknown_method", func(t *testing.T) {
		f := newFixture(t, true, enum.OverpaymentReject)
		ref := f.open(t)
		list, _ := f.creditors.ListCreditors(ctx, ref)

		_, err := f.creditors.RecordSettlement(ctx, ref, list[1].ID, RecordSettlementInput{Amount: dec("5"), Method: "Bitcoin"})
		require.True(t, apperror.IsValidationError(err))
		assert.Equal(t, "method", apperror.GetAppError(err).Errors[0].Field)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CommandsRejected.WithLabelValues("creditor", "validation")))
	})

	t.Run("explicit_date", func(t *testing.T) {
		f := newFixture(t, true, enum.OverpaymentReject)
		ref := f.open(t)
		list, _ := f.creditors.ListCreditors(ctx, ref)
		day := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

		c, err := f.creditors.RecordSettlement(ctx, ref, list[1].ID, RecordSettlementInput{Amount: dec("5"), Method: "POS", Date: &day})
		require.NoError(t, err)
		assert.Equal(t, day, c.Settlements[0].Date)
	})

	t.Run("unknown_creditor", func(t *testing.T) {
		f := newFixture(t, false, enum.OverpaymentReject)
		ref := f.open(t)

		_, err := f.creditors.RecordSettlement(ctx, ref, uuid.New(), RecordSettlementInput{Amount: dec("5"), Method: "Cash"})
		assert.True(t, apperror.IsNotFound(err))
		_, err = f.creditors.GetCreditor(ctx, ref, uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})
}

func Test_CreditorService_Overpayment(t *testing.T) {
	ctx := context.Background()

	t.Run("reject_keeps_history", func(t *testing.T) {
		f := newFixture(t, true, enum.OverpaymentReject)
		ref := f.open(t)
		list, _ := f.creditors.ListCreditors(ctx, ref)
		abc := list[0]

		_, err := f.creditors.RecordSettlement(ctx, ref, abc.ID, RecordSettlementInput{Amount: dec("30000.01"), Method: "Transfer"})
		require.True(t, apperror.IsValidationError(err))

		history, err := f.creditors.SettlementHistory(ctx, ref, abc.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("allow_goes_negative", func(t *testing.T) {
		f := newFixture(t, true, enum.OverpaymentAllow)
		ref := f.open(t)
		list, _ := f.creditors.ListCreditors(ctx, ref)
		abc := list[0]

		_, err := f.creditors.RecordSettlement(ctx, ref, abc.ID, RecordSettlementInput{Amount: dec("35000"), Method: "Transfer"})
		require.NoError(t, err)

		balance, err := f.creditors.RemainingBalance(ctx, ref, abc.ID)
		require.NoError(t, err)
		assert.True(t, dec("-5000").Equal(balance.RemainingBalance))
		assert.True(t, balance.DisplayBalance.IsZero())
		assert.Equal(t, enum.CreditorStatusFullyPaid, balance.Status)
	})
}

func Test_CreditorService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false, enum.OverpaymentReject)
	first := f.open(t)
	second := f.open(t)

	c, err := f.creditors.OpenCreditor(ctx, first, OpenCreditorInput{SupplierName: "Fresh Farm", OriginalAmount: dec("10")})
	require.NoError(t, err)

	_, err = f.creditors.GetCreditor(ctx, second, c.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.creditors.ListCreditors(ctx, SessionRef{SessionID: first.SessionID, UserID: second.UserID})
	assert.True(t, apperror.IsNotFound(err))
}

func Test_CreditorService_Statement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true, enum.OverpaymentReject)
	ref := f.open(t)
	list, _ := f.creditors.ListCreditors(ctx, ref)
	abc := list[0]

	pdf, filename, err := f.creditors.Statement(ctx, ref, abc.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "creditor_statement_"+abc.ID.String()[:8]+"_20240301.pdf", filename)

	_, _, err = f.creditors.Statement(ctx, ref, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
