// Package session keeps per-user dashboard state: the loaded table, the
// current filter selection and the currency mode.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrNoTable  = errors.New("no file uploaded for this session")
)

// Session is the state of one dashboard user. It is safe for concurrent use.
type Session struct {
	ID string

	mu        sync.Mutex
	currency  models.CurrencyMode
	selection models.Selection
	tableKey  string
	lastSeen  time.Time
}

// CurrencyMode returns the current currency mode.
func (s *Session) CurrencyMode() models.CurrencyMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency switches display currency and validates the new rate. The
// mode is left unchanged when the rate is rejected.
func (s *Session) SetCurrency(local bool, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.currency
	if err := mode.SetRate(rate); err != nil {
		return err
	}
	mode.Local = local
	s.currency = mode
	return nil
}

// Selection returns a copy of the current filter selection.
func (s *Session) Selection() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

// SetSelection replaces the filter selection.
func (s *Session) SetSelection(sel models.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel.Clone()
}

// TableKey returns the cache key of the session's table, or "".
func (s *Session) TableKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableKey
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// DefaultIdleTTL is how long an untouched session is kept.
const DefaultIdleTTL = 2 * time.Hour

// Store owns all sessions and the table cache they share.
//
// st.mu guards sessions and every decision to evict a cached table; it is
// always taken before a session's own lock.
type Store struct {
	Cache *Cache
	// IdleTTL expires sessions not used for this long. Zero keeps them forever.
	IdleTTL time.Duration
	Now     func() time.Time

	mu          sync.Mutex
	sessions    map[string]*Session
	defaultMode models.CurrencyMode
}

// NewStore creates a store whose new sessions start in mode.
func NewStore(cache *Cache, mode models.CurrencyMode) *Store {
	return &Store{
		Cache:       cache,
		IdleTTL:     DefaultIdleTTL,
		sessions:    make(map[string]*Session),
		defaultMode: mode,
	}
}

func (st *Store) now() time.Time {
	if st.Now != nil {
		return st.Now()
	}
	return time.Now()
}

// Create starts a new session. Idle sessions are expired first.
func (st *Store) Create() *Session {
	now := st.now()
	if st.IdleTTL > 0 {
		st.Expire(now.Add(-st.IdleTTL))
	}

	s := &Session{ID: uuid.New().String(), currency: st.defaultMode, lastSeen: now}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	slog.Info("session created", "session_id", s.ID)
	return s
}

// Get returns the session with the given id and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

// Delete removes a session and evicts its table when no other session
// refers to it.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	st.release(s.TableKey())
	slog.Info("session deleted", "session_id", id)
	return nil
}

// Expire removes every session last used before cutoff and returns how many
// were removed.
func (st *Store) Expire(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if !s.idleSince(cutoff) {
			continue
		}
		delete(st.sessions, id)
		st.release(s.TableKey())
		n++
	}
	if n > 0 {
		slog.Info("expired idle sessions", "count", n, "remaining", len(st.sessions))
	}
	return n
}

// Attach points a session at a table loaded from the cache and resets its
// selection to the table's default. The currency mode is kept. The table is
// put back under key when another session evicted it after the load, and
// the previous table is evicted once no session refers to it.
func (st *Store) Attach(s *Session, key string, table *models.Table) {
	sel := filter.DefaultSelection(table)

	st.mu.Lock()
	defer st.mu.Unlock()
	// A session expired during its own upload is active again.
	st.sessions[s.ID] = s
	s.touch(st.now())
	st.Cache.Restore(key, table)

	s.mu.Lock()
	old := s.tableKey
	s.tableKey = key
	s.selection = sel
	s.mu.Unlock()

	if old != key {
		st.release(old)
	}
	slog.Info("session attached to table", "session_id", s.ID, "key", key, "rows", len(table.Rows))
}

// release evicts key when no session refers to it. st.mu must be held.
func (st *Store) release(key string) {
	if key == "" {
		return
	}
	for _, s := range st.sessions {
		if s.TableKey() == key {
			return
		}
	}
	st.Cache.Evict(key)
}

// Table returns the session's table.
func (st *Store) Table(s *Session) (*models.Table, error) {
	key := s.TableKey()
	if key == "" {
		return nil, ErrNoTable
	}
	table, ok := st.Cache.Get(key)
	if !ok {
		return nil, ErrNoTable
	}
	return table, nil
}
