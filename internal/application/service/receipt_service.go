package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterStatus reports whether a receipt printer is configured and reachable.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// ReceiptService formats sale receipts and sends them to the printer. It is
// the payment sink of the sale service.
type ReceiptService struct {
	printer     printer.Printer
	header      entity.ReceiptHeader
	printerType string
	width       int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(p printer.Printer, header entity.ReceiptHeader, printerType string, width int) *ReceiptService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &ReceiptService{
		printer:     p,
		header:      header,
		printerType: printerType,
		width:       width,
	}
}

func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "" && s.printerType != string(printer.KindNone),
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint prints a fixed sample receipt and returns it.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    s.header,
		InvoiceNo: "TEST-001",
		Date:      time.Now().Format("2006-01-02 15:04"),
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		SubTotal: decimal.NewFromInt(20),
		Discount: decimal.Zero,
		Total:    decimal.NewFromInt(20),
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// HandlePaymentIntent prints the receipt of a finalized sale when the
// cashier asked for one.
func (s *ReceiptService) HandlePaymentIntent(ctx context.Context, intent PaymentIntent) error {
	if !intent.PrintReceipt || intent.Sale == nil {
		return nil
	}
	_, err := s.PrintSale(ctx, intent.Sale)
	return err
}

// PrintSale prints the receipt of sale. The composed receipt is returned
// even when the printer fails.
func (s *ReceiptService) PrintSale(ctx context.Context, sale *entity.Sale) (*entity.Receipt, error) {
	receipt := entity.NewSaleReceipt(s.header, sale)
	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		slog.ErrorContext(ctx, "receipt print failed", "sale_id", sale.ID, "error", err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	slog.InfoContext(ctx, "receipt printed", "sale_id", sale.ID, "items", len(receipt.Items))
	return receipt, nil
}

// FormatReceipt converts a receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Line(r.Header.StoreName).
		Size(printer.FontNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Row("Receipt:", r.InvoiceNo).
		Row("Date:", r.Date)
	if r.Cashier != "" {
		doc.Row("Cashier:", r.Cashier)
	}
	if r.Table != "" {
		doc.Row("Table:", r.Table)
	}
	if r.Waiter != "" {
		doc.Row("Waiter:", r.Waiter)
	}
	if r.Customer != "" {
		doc.Row("Customer:", r.Customer)
	}
	if r.PaymentType != "" {
		doc.Row("Payment:", r.PaymentType)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, item.Total.StringFixed(2))
		if item.Quantity > 1 {
			doc.Linef("  @ %s each", item.UnitPrice.StringFixed(2))
		}
		if item.Note != "" {
			doc.Linef("  (%s)", item.Note)
		}
	}
	doc.Rule('-')

	doc.Row("Subtotal:", r.SubTotal.StringFixed(2))
	if r.Discount.IsPositive() {
		doc.Row("Discount:", "-"+r.Discount.StringFixed(2))
	}
	doc.Bold(true).
		Row("TOTAL:", r.Total.StringFixed(2)).
		Bold(false).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Feed(1).
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}
