package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = entity.ReceiptHeader{StoreName: "Hotel Moja", Address: "Moi Avenue", Phone: "0700 000 000"}

func completedSale(t *testing.T) *entity.Sale {
	t.Helper()
	s := entity.NewSale("SALE-PRINT001", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.Cashier = "Jane"
	require.NoError(t, s.AddItem(item("Chapati", "50")))
	require.NoError(t, s.AddItem(item("Chapati", "50")))
	require.NoError(t, s.AddItem(item("Tea", "80")))
	require.NoError(t, s.AddItem(item("Cake", "300")))
	require.NoError(t, s.SetLineStatus("Cake", enum.LineStatusComplimentary, ""))
	require.NoError(t, s.SetServiceDetails("9", "Amina", ""))
	require.NoError(t, s.ApplyDiscount(dec("30")))
	require.NoError(t, s.Finalize("Cash", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)))
	return s
}

func Test_FormatReceipt(t *testing.T) {
	r := entity.NewSaleReceipt(testHeader, completedSale(t))
	out := string(FormatReceipt(r, printer.Width58mm))

	for _, want := range []string{
		"Hotel Moja",
		"Moi Avenue",
		"SALE-PRINT001",
		"2024-03-01 12:30",
		"Table:",
		"Waiter:",
		"Payment:",
		"2x Chapati",
		"  @ 50.00 each",
		"1x Cake",
		"  (COMP)",
		"Discount:",
		"-30.00",
		"150.00",
		"Thank you for your business!",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Customer:")
}

func Test_ReceiptService_HandlePaymentIntent(t *testing.T) {
	ctx := context.Background()
	sale := completedSale(t)

	t.Run("prints_when_requested", func(t *testing.T) {
		buf := &printer.Buffer{}
		s := NewReceiptService(buf, testHeader, "usb", printer.Width80mm)

		require.NoError(t, s.HandlePaymentIntent(ctx, PaymentIntent{PrintReceipt: true, Sale: sale}))
		require.Len(t, buf.Jobs(), 1)
		assert.Contains(t, string(buf.Jobs()[0]), "SALE-PRINT001")
	})

	t.Run("skips_when_not_requested", func(t *testing.T) {
		buf := &printer.Buffer{}
		s := NewReceiptService(buf, testHeader, "usb", 0)

		require.NoError(t, s.HandlePaymentIntent(ctx, PaymentIntent{PrintReceipt: false, Sale: sale}))
		require.NoError(t, s.HandlePaymentIntent(ctx, PaymentIntent{PrintReceipt: true}))
		assert.Empty(t, buf.Jobs())
	})

	t.Run("printer_failure_is_returned", func(t *testing.T) {
		buf := &printer.Buffer{Err: errBoom}
		s := NewReceiptService(buf, testHeader, "network", 0)

		err := s.HandlePaymentIntent(ctx, PaymentIntent{PrintReceipt: true, Sale: sale})
		assert.ErrorIs(t, err, errBoom)
	})
}

func Test_ReceiptService_StatusAndTestPrint(t *testing.T) {
	buf := &printer.Buffer{}
	s := NewReceiptService(buf, testHeader, "usb", 0)

	status := s.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, printer.Width58mm, status.Width)

	r, err := s.TestPrint()
	require.NoError(t, err)
	assert.Equal(t, "TEST-001", r.InvoiceNo)
	assert.Len(t, buf.Jobs(), 1)

	none := NewReceiptService(buf, testHeader, "none", 0)
	assert.False(t, none.GetStatus().Configured)
}

func Test_ReceiptService_WiredAsPaymentSink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false, enum.OverpaymentReject)
	buf := &printer.Buffer{}
	f.sales.payments = NewReceiptService(buf, testHeader, "usb", 0)
	ref := f.open(t)

	_, err := f.sales.AddItem(ctx, ref, item("Tea", "80"))
	require.NoError(t, err)
	_, err = f.sales.Finalize(ctx, ref, FinalizeInput{PaymentMethod: "Cash", PrintReceipt: true})
	require.NoError(t, err)

	require.Len(t, buf.Jobs(), 1)
	assert.Contains(t, string(buf.Jobs()[0]), "1x Tea")
}
