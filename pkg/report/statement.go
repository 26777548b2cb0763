package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
)

// CreditorStatement renders a creditor's settlement history as a PDF.
func CreditorStatement(companyName string, c *entity.Creditor, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Creditor Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	status := c.Status()
	pdf.SetFont("Arial", "", 11)
	summary := [][2]string{
		{"Supplier", c.SupplierName},
		{"Opened", c.CreatedAt.Format(entity.DateLayout)},
		{"Original Amount", money(c.OriginalAmount.StringFixed(2))},
		{"Total Paid", money(c.TotalPaid().StringFixed(2))},
		{"Balance", money(c.DisplayBalance().StringFixed(2))},
		{"Status", status.String()},
	}
	for _, row := range summary {
		pdf.CellFormat(45, 7, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(28, 9, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 9, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 9, "Method", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 9, "Reference", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 9, "Recorded By", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 9, "Balance After", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(c.Settlements) == 0 {
		pdf.CellFormat(190, 9, "No settlements recorded", "1", 1, "C", false, 0, "")
	}
	running := c.OriginalAmount
	for _, s := range c.Settlements {
		running = running.Sub(s.Amount)
		pdf.CellFormat(28, 8, s.Date.Format(entity.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, money(s.Amount.StringFixed(2)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, s.Method.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, s.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, s.RecordedBy, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, money(running.StringFixed(2)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}
	return buf.Bytes(), nil
}

func money(amount string) string {
	return "ksh " + amount
}
