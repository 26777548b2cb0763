package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/pkg/apperror"
)

// Session is one user's working view: app settings, the draft sale and
// the creditor book. Everything on it is guarded by the session lock, so
// commands against one session run one at a time.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserName  string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen atomic.Int64

	State     *entity.AppState
	Sale      *entity.Sale
	Creditors []*entity.Creditor
}

// Do runs fn while holding the session lock.
func (s *Session) Do(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Creditor finds a creditor by id. Callers must hold the session lock.
func (s *Session) Creditor(id uuid.UUID) (*entity.Creditor, int, bool) {
	for i, c := range s.Creditors {
		if c.ID == id {
			return c, i, true
		}
	}
	return nil, -1, false
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is the time of the most recent lookup.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// StoreConfig holds configuration for the session store
type StoreConfig struct {
	TTL             time.Duration // idle time before a session is dropped
	CleanupInterval time.Duration
	// OnCountChange, when set, receives the session count after each change.
	OnCountChange func(n int)
}

// Store keeps sessions in memory. Sessions are never shared between users.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	cfg      StoreConfig
	now      func() time.Time
}

// NewStore creates an empty store. Call Run to start expiring idle sessions.
func NewStore(cfg StoreConfig) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 8 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Add registers sess and returns it. A missing id or creation time is
// filled in.
func (st *Store) Add(sess *Session) *Session {
	now := st.now()
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.touch(now)

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	n := len(st.sessions)
	st.mu.Unlock()

	st.notify(n)
	return sess
}

// Get returns the session if it exists, has not expired and belongs to
// userID. Sessions of other users are reported as missing.
func (st *Store) Get(id, userID uuid.UUID) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	now := st.now()
	if !ok || sess.UserID != userID || now.Sub(sess.LastSeen()) > st.cfg.TTL {
		return nil, apperror.ErrSessionExpired
	}
	sess.touch(now)
	return sess, nil
}

// Delete closes a session owned by userID.
func (st *Store) Delete(id, userID uuid.UUID) error {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	if !ok || sess.UserID != userID {
		st.mu.Unlock()
		return apperror.ErrSessionExpired
	}
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()

	st.notify(n)
	return nil
}

// Len returns the number of sessions held, expired or not.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.cfg.TTL)

	st.mu.Lock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if removed > 0 {
		st.notify(n)
	}
	return removed
}

// Run sweeps expired sessions every cleanup interval until ctx is done.
func (st *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(st.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) notify(n int) {
	if st.cfg.OnCountChange != nil {
		st.cfg.OnCountChange(n)
	}
}
