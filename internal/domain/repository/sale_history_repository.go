package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/pkg/pagination"
)

// ErrDuplicateSaleID is returned by Append when the sale id is already in
// the history.
var ErrDuplicateSaleID = errors.New("sale id already archived")

// SaleHistoryRepository is the sink finalized sales are appended to.
// The sale engine only writes; listing serves reporting.
type SaleHistoryRepository interface {
	// Append stores a completed sale together with its lines.
	Append(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List returns sales most-recent-first.
	List(ctx context.Context, params *SaleHistoryFilterParams) ([]entity.Sale, int64, error)
}

// SaleHistoryFilterParams contains filtering parameters for history queries
type SaleHistoryFilterParams struct {
	Pagination    *pagination.Params
	SessionID     *uuid.UUID
	CashierID     *uuid.UUID
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time // exclusive
}
