package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/config"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	domainRepo "github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/internal/infrastructure/database"
	"github.com/sangkips/mi-inventory-api/internal/infrastructure/repository"
	"github.com/sangkips/mi-inventory-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type archivedSale struct {
	id      string
	session uuid.UUID
	cashier uuid.UUID
	method  string
	at      time.Time
	items   []entity.CatalogItem
	voided  string
}

func buildSale(t *testing.T, a archivedSale) *entity.Sale {
	t.Helper()
	s := entity.NewSale(a.id, a.at.Add(-5*time.Minute))
	s.SessionID = a.session
	s.CashierID = a.cashier
	s.Cashier = "Jane"
	for _, it := range a.items {
		require.NoError(t, s.AddItem(it))
	}
	if a.voided != "" {
		require.NoError(t, s.SetLineStatus(a.voided, enum.LineStatusVoided, "mistake"))
	}
	require.NoError(t, s.Finalize(a.method, a.at))
	return s
}

var (
	tea     = entity.CatalogItem{ID: "tea", Name: "Tea", Price: decimal.NewFromInt(80)}
	mandazi = entity.CatalogItem{ID: "mandazi", Name: "Mandazi", Price: decimal.NewFromInt(20)}
	pilau   = entity.CatalogItem{ID: "pilau", Name: "Pilau", Price: decimal.NewFromInt(350)}
)

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}

func seedHistory(t *testing.T, repo domainRepo.SaleHistoryRepository, session, cashier uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	otherSession := uuid.New()
	sales := []archivedSale{
		{id: "SALE-AAAA0001", session: session, cashier: cashier, method: "Cash", at: at(1, 9), items: []entity.CatalogItem{tea, tea, mandazi}},
		{id: "SALE-AAAA0002", session: session, cashier: cashier, method: "M-Pesa", at: at(2, 12), items: []entity.CatalogItem{pilau, tea}, voided: "tea"},
		{id: "SALE-AAAA0003", session: otherSession, cashier: cashier, method: "Cash", at: at(3, 18), items: []entity.CatalogItem{pilau}},
		{id: "SALE-BBBB0001", session: uuid.New(), cashier: uuid.New(), method: "Cash", at: at(2, 10), items: []entity.CatalogItem{pilau, pilau}},
	}
	for _, a := range sales {
		require.NoError(t, repo.Append(ctx, buildSale(t, a)))
	}
}

func Test_SaleHistoryRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewSaleHistoryRepository(db)
	session, cashier := uuid.New(), uuid.New()
	seedHistory(t, repo, session, cashier)

	t.Run("get_by_id_round_trips_lines_in_order", func(t *testing.T) {
		sale, err := repo.GetByID(ctx, "SALE-AAAA0002")
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
		assert.Equal(t, "M-Pesa", sale.PaymentMethod)
		assert.Equal(t, cashier, sale.CashierID)
		assert.True(t, decimal.NewFromInt(350).Equal(sale.Total))
		require.Len(t, sale.Lines, 2)
		assert.Equal(t, "pilau", sale.Lines[0].ItemID)
		assert.Equal(t, enum.LineStatusVoided, sale.Lines[1].Status)
		assert.Equal(t, "mistake", sale.Lines[1].Reason)
		require.NotNil(t, sale.CompletedAt)
		assert.True(t, at(2, 12).Equal(*sale.CompletedAt))
	})

	t.Run("get_missing_returns_nil", func(t *testing.T) {
		sale, err := repo.GetByID(ctx, "SALE-NOPE0000")
		require.NoError(t, err)
		assert.Nil(t, sale)
	})

	t.Run("list_by_cashier_most_recent_first", func(t *testing.T) {
		sales, total, err := repo.List(ctx, &domainRepo.SaleHistoryFilterParams{CashierID: &cashier})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, sales, 3)
		assert.Equal(t, "SALE-AAAA0003", sales[0].ID)
		assert.Equal(t, "SALE-AAAA0001", sales[2].ID)
		assert.Len(t, sales[2].Lines, 2)
	})

	t.Run("list_filters", func(t *testing.T) {
		start := at(2, 0)
		end := at(3, 0)
		tests := []struct {
			name   string
			params domainRepo.SaleHistoryFilterParams
			want   []string
		}{
			{
				name:   "session",
				params: domainRepo.SaleHistoryFilterParams{CashierID: &cashier, SessionID: &session},
				want:   []string{"SALE-AAAA0002", "SALE-AAAA0001"},
			},
			{
				name:   "payment_method",
				params: domainRepo.SaleHistoryFilterParams{CashierID: &cashier, PaymentMethod: "Cash"},
				want:   []string{"SALE-AAAA0003", "SALE-AAAA0001"},
			},
			{
				name:   "date_window_end_exclusive",
				params: domainRepo.SaleHistoryFilterParams{CashierID: &cashier, StartDate: &start, EndDate: &end},
				want:   []string{"SALE-AAAA0002"},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				sales, total, err := repo.List(ctx, &tt.params)
				require.NoError(t, err)
				assert.Equal(t, int64(len(tt.want)), total)
				ids := make([]string, 0, len(sales))
				for _, s := range sales {
					ids = append(ids, s.ID)
				}
				assert.Equal(t, tt.want, ids)
			})
		}
	})

	t.Run("pagination", func(t *testing.T) {
		sales, total, err := repo.List(ctx, &domainRepo.SaleHistoryFilterParams{
			CashierID:  &cashier,
			Pagination: &pagination.Params{Page: 2, PerPage: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, sales, 1)
		assert.Equal(t, "SALE-AAAA0001", sales[0].ID)
	})

	t.Run("append_twice_fails", func(t *testing.T) {
		dup := buildSale(t, archivedSale{id: "SALE-AAAA0001", cashier: cashier, method: "Cash", at: at(4, 9), items: []entity.CatalogItem{tea}})
		assert.ErrorIs(t, repo.Append(ctx, dup), domainRepo.ErrDuplicateSaleID)
	})
}

func Test_AnalyticsRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	session, cashier := uuid.New(), uuid.New()
	seedHistory(t, repository.NewSaleHistoryRepository(db), session, cashier)
	repo := repository.NewAnalyticsRepository(db)

	start, end := at(1, 0), at(4, 0)
	filter := domainRepo.AnalyticsFilter{CashierID: cashier, StartDate: &start, EndDate: &end}

	t.Run("sales_by_payment_method", func(t *testing.T) {
		rows, err := repo.SalesByPaymentMethod(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Cash", rows[0].PaymentMethod)
		assert.Equal(t, int64(2), rows[0].SaleCount)
		assert.True(t, decimal.NewFromInt(530).Equal(rows[0].Revenue), rows[0].Revenue.String())
		assert.Equal(t, "M-Pesa", rows[1].PaymentMethod)
		assert.True(t, decimal.NewFromInt(350).Equal(rows[1].Revenue), rows[1].Revenue.String())
	})

	t.Run("top_items_skip_inactive_lines", func(t *testing.T) {
		rows, err := repo.TopItems(ctx, filter, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "pilau", rows[0].ItemID)
		assert.Equal(t, int64(2), rows[0].QuantitySold)
		assert.True(t, decimal.NewFromInt(700).Equal(rows[0].Revenue))
		assert.Equal(t, "tea", rows[1].ItemID)
		assert.Equal(t, int64(2), rows[1].QuantitySold)
	})

	t.Run("line_status_breakdown", func(t *testing.T) {
		rows, err := repo.LineStatusBreakdown(ctx, filter)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int(enum.LineStatusActive), rows[0].Status)
		assert.Equal(t, int64(4), rows[0].LineCount)
		assert.Equal(t, int(enum.LineStatusVoided), rows[1].Status)
		assert.Equal(t, int64(1), rows[1].LineCount)
	})

	t.Run("window_excludes_everything", func(t *testing.T) {
		from, to := at(10, 0), at(11, 0)
		rows, err := repo.SalesByPaymentMethod(ctx, domainRepo.AnalyticsFilter{CashierID: cashier, StartDate: &from, EndDate: &to})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func Test_IdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewIdempotencyRepository(openTestDB(t))
	user := uuid.New()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	fresh := &entity.IdempotencyKey{
		Key:          "sess:finalize-1",
		UserID:       user,
		Endpoint:     "POST /api/v1/sales/current/finalize",
		RequestHash:  "abc",
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	stale := &entity.IdempotencyKey{
		Key:          "sess:finalize-0",
		UserID:       user,
		Endpoint:     fresh.Endpoint,
		ResponseCode: 201,
		ExpiresAt:    now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, repo.Create(ctx, stale))

	t.Run("get_by_key_is_scoped_to_user", func(t *testing.T) {
		got, err := repo.GetByKey(ctx, "sess:finalize-1", user)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 201, got.ResponseCode)
		assert.Equal(t, `{"success":true}`, got.ResponseBody)

		got, err = repo.GetByKey(ctx, "sess:finalize-1", uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate_key_fails", func(t *testing.T) {
		dup := *fresh
		dup.ID = uuid.Nil
		assert.ErrorIs(t, repo.Create(ctx, &dup), gorm.ErrDuplicatedKey)
	})

	t.Run("delete_frees_the_key", func(t *testing.T) {
		other := uuid.New()
		kept := &entity.IdempotencyKey{Key: "sess:finalize-2", UserID: other, Endpoint: fresh.Endpoint, ResponseCode: 201, ExpiresAt: now}
		gone := &entity.IdempotencyKey{Key: "sess:finalize-2", UserID: user, Endpoint: fresh.Endpoint, ResponseCode: 201, ExpiresAt: now}
		require.NoError(t, repo.Create(ctx, kept))
		require.NoError(t, repo.Create(ctx, gone))

		require.NoError(t, repo.Delete(ctx, "sess:finalize-2", user))
		got, err := repo.GetByKey(ctx, "sess:finalize-2", user)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByKey(ctx, "sess:finalize-2", other)
		require.NoError(t, err)
		assert.NotNil(t, got)

		again := &entity.IdempotencyKey{Key: "sess:finalize-2", UserID: user, Endpoint: fresh.Endpoint, ResponseCode: 201, ExpiresAt: now.Add(time.Hour)}
		assert.NoError(t, repo.Create(ctx, again))
	})

	t.Run("delete_expired", func(t *testing.T) {
		n, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := repo.GetByKey(ctx, "sess:finalize-0", user)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
