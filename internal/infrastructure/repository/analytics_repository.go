package repository

import (
	"context"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	domainRepo "github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// completedSales limits a query on the sales table (aliased s) to the
// filter's completed sales.
func completedSales(filter domainRepo.AnalyticsFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("s.cashier_id = ?", filter.CashierID).
			Where("s.status = ?", enum.SaleStatusCompleted)
		if filter.StartDate != nil {
			db = db.Where("s.completed_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("s.completed_at < ?", *filter.EndDate)
		}
		return db
	}
}

func (r *analyticsRepository) SalesByPaymentMethod(ctx context.Context, filter domainRepo.AnalyticsFilter) ([]domainRepo.PaymentMethodTotal, error) {
	var results []domainRepo.PaymentMethodTotal
	err := r.db.WithContext(ctx).
		Table(entity.Sale{}.TableName()+" AS s").
		Select("s.payment_method AS payment_method, COUNT(*) AS sale_count, COALESCE(SUM(s.total), 0) AS revenue").
		Scopes(completedSales(filter)).
		Group("s.payment_method").
		Order("revenue DESC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TopItems(ctx context.Context, filter domainRepo.AnalyticsFilter, limit int) ([]domainRepo.TopItemResult, error) {
	if limit <= 0 {
		limit = 5
	}
	var results []domainRepo.TopItemResult
	err := r.db.WithContext(ctx).
		Table(entity.SaleLine{}.TableName()+" AS sl").
		Joins("JOIN "+entity.Sale{}.TableName()+" s ON s.id = sl.sale_id").
		Select("sl.item_id AS item_id, MAX(sl.name) AS name, SUM(sl.quantity) AS quantity_sold, COALESCE(SUM(sl.total), 0) AS revenue").
		Scopes(completedSales(filter)).
		Where("sl.status = ?", enum.LineStatusActive).
		Group("sl.item_id").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) LineStatusBreakdown(ctx context.Context, filter domainRepo.AnalyticsFilter) ([]domainRepo.LineStatusCount, error) {
	var results []domainRepo.LineStatusCount
	err := r.db.WithContext(ctx).
		Table(entity.SaleLine{}.TableName()+" AS sl").
		Joins("JOIN "+entity.Sale{}.TableName()+" s ON s.id = sl.sale_id").
		Select("sl.status AS status, COUNT(*) AS line_count, COALESCE(SUM(sl.quantity), 0) AS quantity").
		Scopes(completedSales(filter)).
		Group("sl.status").
		Order("sl.status").
		Scan(&results).Error
	return results, err
}
