package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogItem is the record handed to AddItem by the catalog lookup.
// Its values are trusted as given.
type CatalogItem struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SaleLine is a single item row of a sale. Lines that are not active stay
// on the sale for audit but do not count toward its totals.
type SaleLine struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID    string           `gorm:"size:64;not null;index" json:"-"`
	Position  int              `gorm:"not null" json:"-"`
	ItemID    string           `gorm:"size:100;not null" json:"item_id"`
	SKU       string           `gorm:"size:100" json:"sku"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"total"`
	Status    enum.LineStatus  `gorm:"type:smallint;default:0" json:"status"`
	Discount  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"discount,omitempty"`
	Reason    string           `gorm:"size:255" json:"reason,omitempty"`
}

// TableName returns the table name for SaleLine
func (SaleLine) TableName() string {
	return "sale_lines"
}

// BeforeCreate hook to generate UUID
func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Sale is the draft-sale aggregate. While pending it accepts line
// commands; once completed or voided it is immutable.
type Sale struct {
	ID            string          `gorm:"size:64;primaryKey" json:"id"`
	SessionID     uuid.UUID       `gorm:"type:uuid;index" json:"session_id"`
	CashierID     uuid.UUID       `gorm:"type:uuid;index" json:"cashier_id"`
	Cashier       string          `gorm:"size:255" json:"cashier,omitempty"`
	Lines         []SaleLine      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	Status        enum.SaleStatus `gorm:"type:smallint;default:0;index" json:"status"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method,omitempty"`
	TableNo       string          `gorm:"size:50" json:"table,omitempty"`
	Waiter        string          `gorm:"size:255" json:"waiter,omitempty"`
	Customer      string          `gorm:"size:255" json:"customer,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// TableName returns the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// NewSale starts an empty pending sale.
func NewSale(id string, createdAt time.Time) *Sale {
	return &Sale{
		ID:        id,
		Lines:     []SaleLine{},
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Total:     decimal.Zero,
		Status:    enum.SaleStatusPending,
		CreatedAt: createdAt,
	}
}

// AddItem increments the active line for the item or appends a new one
// with quantity 1.
func (s *Sale) AddItem(item CatalogItem) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	if strings.TrimSpace(item.ID) == "" {
		return apperror.NewFieldError("id", "is required")
	}

	if line := s.activeLine(item.ID); line != nil {
		return s.SetQuantity(item.ID, line.Quantity+1)
	}

	sku := item.SKU
	if sku == "" {
		sku = item.ID
	}
	s.Lines = append(s.Lines, SaleLine{
		ID:        uuid.New(),
		ItemID:    item.ID,
		SKU:       sku,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
		Total:     item.Price,
		Status:    enum.LineStatusActive,
	})
	s.recalculate()
	return nil
}

// SetQuantity updates active lines for itemID. A quantity of zero or less
// removes the item instead.
func (s *Sale) SetQuantity(itemID string, quantity int) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	if quantity <= 0 {
		return s.RemoveItem(itemID)
	}

	for i := range s.Lines {
		line := &s.Lines[i]
		if line.ItemID != itemID || line.Status != enum.LineStatusActive {
			continue
		}
		line.Quantity = quantity
		line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}
	s.recalculate()
	return nil
}

// RemoveItem deletes every line for itemID regardless of status.
func (s *Sale) RemoveItem(itemID string) error {
	if err := s.ensurePending(); err != nil {
		return err
	}

	kept := make([]SaleLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	s.Lines = kept
	s.recalculate()
	return nil
}

// SetLineStatus moves lines for itemID to status and records reason.
// An unknown item is not an error.
func (s *Sale) SetLineStatus(itemID string, status enum.LineStatus, reason string) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	if !status.IsValid() {
		return apperror.NewFieldError("status", "must be one of active, voided, cancelled, complimentary")
	}

	for i := range s.Lines {
		if s.Lines[i].ItemID == itemID {
			s.Lines[i].Status = status
			s.Lines[i].Reason = reason
		}
	}
	s.recalculate()
	return nil
}

// ApplyDiscount sets the sale-level discount. Discounts larger than the
// subtotal are kept; the total is clamped at zero.
func (s *Sale) ApplyDiscount(amount decimal.Decimal) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return apperror.NewFieldError("discount", "must not be negative")
	}

	s.Discount = amount
	s.recalculate()
	return nil
}

// SetServiceDetails records table service details on a pending sale.
func (s *Sale) SetServiceDetails(table, waiter, customer string) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	s.TableNo = strings.TrimSpace(table)
	s.Waiter = strings.TrimSpace(waiter)
	s.Customer = strings.TrimSpace(customer)
	return nil
}

// Finalize completes the sale with the given payment method.
func (s *Sale) Finalize(paymentMethod string, at time.Time) error {
	if err := s.ensurePending(); err != nil {
		return err
	}
	if s.ActiveLineCount() == 0 {
		return apperror.NewInvalidStateError("cannot finalize a sale with no active items")
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return apperror.NewFieldError("payment_method", "is required")
	}

	s.Status = enum.SaleStatusCompleted
	s.PaymentMethod = paymentMethod
	s.CompletedAt = &at
	return nil
}

// ActiveLineCount returns the number of lines that count toward the total.
func (s *Sale) ActiveLineCount() int {
	n := 0
	for _, line := range s.Lines {
		if line.Status.CountsTowardTotal() {
			n++
		}
	}
	return n
}

// Line returns the first line for itemID, active or not.
func (s *Sale) Line(itemID string) (SaleLine, bool) {
	for _, line := range s.Lines {
		if line.ItemID == itemID {
			return line, true
		}
	}
	return SaleLine{}, false
}

// Clone returns a deep copy so callers can stage a command without
// touching the original.
func (s *Sale) Clone() *Sale {
	c := *s
	c.Lines = make([]SaleLine, len(s.Lines))
	for i, line := range s.Lines {
		if line.Discount != nil {
			d := *line.Discount
			line.Discount = &d
		}
		c.Lines[i] = line
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func (s *Sale) activeLine(itemID string) *SaleLine {
	for i := range s.Lines {
		if s.Lines[i].ItemID == itemID && s.Lines[i].Status == enum.LineStatusActive {
			return &s.Lines[i]
		}
	}
	return nil
}

func (s *Sale) ensurePending() error {
	if s.Status.IsTerminal() {
		return apperror.NewInvalidStateError(fmt.Sprintf("sale %s is %s", s.ID, s.Status))
	}
	return nil
}

// recalculate derives subtotal and total from the line list and discount.
func (s *Sale) recalculate() {
	subtotal := decimal.Zero
	for _, line := range s.Lines {
		if line.Status.CountsTowardTotal() {
			subtotal = subtotal.Add(line.Total)
		}
	}
	s.Subtotal = subtotal
	s.Total = decimal.Max(decimal.Zero, subtotal.Sub(s.Discount))
}
