package entity

import (
	"fmt"

	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single printed line.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note,omitempty"`
}

// Receipt is composed from a completed sale at print time; it is not stored.
type Receipt struct {
	Header      ReceiptHeader   `json:"header"`
	InvoiceNo   string          `json:"invoice_no"`
	Date        string          `json:"date"`
	Cashier     string          `json:"cashier,omitempty"`
	Customer    string          `json:"customer,omitempty"`
	Table       string          `json:"table,omitempty"`
	Waiter      string          `json:"waiter,omitempty"`
	PaymentType string          `json:"payment_type,omitempty"`
	Items       []ReceiptItem   `json:"items"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// NewSaleReceipt lists active and complimentary lines of sale. Voided and
// cancelled lines are left off the printout.
func NewSaleReceipt(header ReceiptHeader, sale *Sale) *Receipt {
	r := &Receipt{
		Header:      header,
		InvoiceNo:   sale.ID,
		Cashier:     sale.Cashier,
		Customer:    sale.Customer,
		Table:       sale.TableNo,
		Waiter:      sale.Waiter,
		PaymentType: sale.PaymentMethod,
		Items:       []ReceiptItem{},
		SubTotal:    sale.Subtotal,
		Discount:    sale.Discount,
		Total:       sale.Total,
	}
	if sale.CompletedAt != nil {
		r.Date = sale.CompletedAt.Format("2006-01-02 15:04")
	} else {
		r.Date = sale.CreatedAt.Format("2006-01-02 15:04")
	}

	for _, line := range sale.Lines {
		item := ReceiptItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		}
		if line.Discount != nil && line.Discount.IsPositive() {
			item.Note = "less " + line.Discount.StringFixed(2)
		}
		switch line.Status {
		case enum.LineStatusActive:
		case enum.LineStatusComplimentary:
			item.Total = decimal.Zero
			item.Note = "COMP"
		case enum.LineStatusVoided, enum.LineStatusCancelled:
			continue
		default:
			panic(fmt.Sprintf("entity: unhandled %v", line.Status))
		}
		r.Items = append(r.Items, item)
	}
	return r
}
