package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/application/session"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memoryHistory is an in-memory SaleHistoryRepository.
type memoryHistory struct {
	mu      sync.Mutex
	sales   []*entity.Sale
	err     error
	filters []*repository.SaleHistoryFilterParams
}

func (h *memoryHistory) Append(_ context.Context, sale *entity.Sale) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	for _, s := range h.sales {
		if s.ID == sale.ID {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateSaleID, sale.ID)
		}
	}
	h.sales = append(h.sales, sale.Clone())
	return nil
}

func (h *memoryHistory) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sales {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return nil, nil
}

func (h *memoryHistory) List(_ context.Context, p *repository.SaleHistoryFilterParams) ([]entity.Sale, int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filters = append(h.filters, p)

	var out []entity.Sale
	for _, s := range h.sales {
		if p.CashierID != nil && s.CashierID != *p.CashierID {
			continue
		}
		if p.SessionID != nil && s.SessionID != *p.SessionID {
			continue
		}
		if p.PaymentMethod != "" && s.PaymentMethod != p.PaymentMethod {
			continue
		}
		out = append(out, *s.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(*out[j].CompletedAt) })
	return out, int64(len(out)), nil
}

func (h *memoryHistory) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sales)
}

type recordingSink struct {
	intents []PaymentIntent
	err     error
}

func (r *recordingSink) HandlePaymentIntent(_ context.Context, intent PaymentIntent) error {
	r.intents = append(r.intents, intent)
	return r.err
}

// fixture wires the services over one in-memory session store.
type fixture struct {
	store     *session.Store
	history   *memoryHistory
	sink      *recordingSink
	metrics   *metrics.Collector
	sessions  *SessionService
	sales     *SaleService
	creditors *CreditorService
	clock     time.Time
}

func newFixture(t *testing.T, seedDemo bool, policy enum.OverpaymentPolicy) *fixture {
	t.Helper()
	f := &fixture{
		store:   session.NewStore(session.StoreConfig{TTL: time.Hour}),
		history: &memoryHistory{},
		sink:    &recordingSink{},
		metrics: metrics.NewCollector(),
		clock:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return f.clock }

	f.sessions = NewSessionService(f.store, seedDemo)
	f.sessions.now = now
	f.sales = NewSaleService(f.store, f.history, f.sink, f.metrics)
	f.sales.now = now
	f.creditors = NewCreditorService(f.store, policy, f.metrics)
	f.creditors.now = now
	return f
}

func (f *fixture) open(t *testing.T) SessionRef {
	t.Helper()
	userID := uuid.New()
	view, err := f.sessions.Open(context.Background(), userID, "Jane Cashier")
	require.NoError(t, err)
	return SessionRef{SessionID: view.ID, UserID: userID}
}

func (f *fixture) openHospitality(t *testing.T) SessionRef {
	t.Helper()
	ref := f.open(t)
	_, err := f.sessions.SelectIndustry(context.Background(), ref, "hospitality")
	require.NoError(t, err)
	return ref
}

func item(id, price string) entity.CatalogItem {
	return entity.CatalogItem{ID: id, Name: id, Price: decimal.RequireFromString(price)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var errBoom = errors.New("boom")
