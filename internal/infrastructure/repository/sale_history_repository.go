package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleHistoryRepository struct {
	db *gorm.DB
}

// NewSaleHistoryRepository creates a new sales-history repository
func NewSaleHistoryRepository(db *gorm.DB) domainRepo.SaleHistoryRepository {
	return &saleHistoryRepository{db: db}
}

func (r *saleHistoryRepository) Append(ctx context.Context, sale *entity.Sale) error {
	record := sale.Clone()
	for i := range record.Lines {
		record.Lines[i].SaleID = record.ID
		record.Lines[i].Position = i
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", domainRepo.ErrDuplicateSaleID, record.ID)
	}
	return err
}

func (r *saleHistoryRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines", OrderedLines).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleHistoryRepository) List(ctx context.Context, params *domainRepo.SaleHistoryFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}
	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}
	if params.PaymentMethod != "" {
		query = query.Where("payment_method = ?", params.PaymentMethod)
	}
	if params.StartDate != nil {
		query = query.Where("completed_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("completed_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Lines", OrderedLines).
		Order("completed_at DESC").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}
