package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/application/session"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
	"github.com/sangkips/mi-inventory-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SessionRef addresses a session on behalf of the user that owns it.
type SessionRef struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
}

// SessionView is the read model returned for a session.
type SessionView struct {
	ID        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	State     *entity.AppState `json:"state"`
}

// SessionService opens sessions and edits their application state.
type SessionService struct {
	store    *session.Store
	seedDemo bool
	now      func() time.Time
}

// NewSessionService creates a new session service. With seedDemo set,
// every new session starts with the two sample creditors.
func NewSessionService(store *session.Store, seedDemo bool) *SessionService {
	return &SessionService{
		store:    store,
		seedDemo: seedDemo,
		now:      time.Now,
	}
}

// Open starts a session for the user with default app state and an
// empty draft sale.
func (s *SessionService) Open(ctx context.Context, userID uuid.UUID, userName string) (*SessionView, error) {
	if userID == uuid.Nil {
		return nil, apperror.ErrUnauthorized
	}
	now := s.now()

	sess := &session.Session{
		ID:        uuid.New(),
		UserID:    userID,
		UserName:  userName,
		CreatedAt: now,
		State:     entity.NewAppState(),
		Creditors: []*entity.Creditor{},
	}
	sess.Sale = newDraftSale(sess, now)
	if s.seedDemo {
		sess.Creditors = demoCreditors()
	}
	s.store.Add(sess)

	return s.Get(ctx, SessionRef{SessionID: sess.ID, UserID: userID})
}

// Get returns a snapshot of the session.
func (s *SessionService) Get(ctx context.Context, ref SessionRef) (*SessionView, error) {
	return s.update(ref, func(*entity.AppState) error { return nil })
}

// Close discards the session and everything it holds.
func (s *SessionService) Close(ctx context.Context, ref SessionRef) error {
	return s.store.Delete(ref.SessionID, ref.UserID)
}

func (s *SessionService) ToggleSidebar(ctx context.Context, ref SessionRef) (*SessionView, error) {
	return s.update(ref, func(state *entity.AppState) error {
		state.ToggleSidebar()
		return nil
	})
}

// SelectIndustry switches the industry and resolves its capabilities.
func (s *SessionService) SelectIndustry(ctx context.Context, ref SessionRef, name string) (*SessionView, error) {
	industry, err := enum.ParseIndustry(name)
	if err != nil {
		return nil, apperror.NewFieldError("industry", "is not a supported industry")
	}
	return s.update(ref, func(state *entity.AppState) error {
		return state.SelectIndustry(industry)
	})
}

func (s *SessionService) SetCompanyName(ctx context.Context, ref SessionRef, name string) (*SessionView, error) {
	return s.update(ref, func(state *entity.AppState) error {
		return state.SetCompanyName(name)
	})
}

func (s *SessionService) SelectDepartment(ctx context.Context, ref SessionRef, dept entity.Department) (*SessionView, error) {
	return s.update(ref, func(state *entity.AppState) error {
		return state.SelectDepartment(dept)
	})
}

func (s *SessionService) ClearDepartment(ctx context.Context, ref SessionRef) (*SessionView, error) {
	return s.update(ref, func(state *entity.AppState) error {
		state.ClearDepartment()
		return nil
	})
}

// update applies fn to a copy of the state and keeps it only on success.
func (s *SessionService) update(ref SessionRef, fn func(*entity.AppState) error) (*SessionView, error) {
	sess, err := s.store.Get(ref.SessionID, ref.UserID)
	if err != nil {
		return nil, err
	}

	var view *SessionView
	err = sess.Do(func(sess *session.Session) error {
		staged := sess.State.Clone()
		if err := fn(staged); err != nil {
			return err
		}
		sess.State = staged
		view = &SessionView{
			ID:        sess.ID,
			CreatedAt: sess.CreatedAt,
			State:     staged.Clone(),
		}
		return nil
	})
	return view, err
}

func newDraftSale(sess *session.Session, now time.Time) *entity.Sale {
	sale := entity.NewSale(utils.NewSaleID(), now)
	sale.SessionID = sess.ID
	sale.CashierID = sess.UserID
	sale.Cashier = sess.UserName
	return sale
}

func demoCreditors() []*entity.Creditor {
	day := func(s string) time.Time {
		t, _ := time.Parse(entity.DateLayout, s)
		return t
	}

	abc, _ := entity.NewCreditor("ABC Food Supplies", decimal.NewFromInt(50000), day("2024-01-10"))
	_ = abc.RecordSettlement(entity.SettlementRecord{
		Amount:     decimal.NewFromInt(20000),
		Date:       day("2024-01-15"),
		Method:     enum.SettlementMethodTransfer,
		Reference:  "TXN123456",
		RecordedBy: entity.DefaultRecorder,
	}, enum.OverpaymentReject)

	xyz, _ := entity.NewCreditor("XYZ Equipment Ltd", decimal.NewFromInt(75000), day("2024-01-12"))

	return []*entity.Creditor{abc, xyz}
}
