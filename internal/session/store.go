package session

import (
	"sync"
	"time"

	"shopchat/internal/model"
)

const (
	DefaultTTL         = 30 * time.Minute
	DefaultMaxMessages = 50
)

// MemoryStore is the in-memory Store implementation. All state is ephemeral:
// nothing survives a process restart, by design.
//
// A single mutex guards the session map and every entry. Critical sections
// are memory-only and short, so one lock both serializes concurrent turns
// for the same session id and guarantees the expiry sweep can never remove
// a session mid-mutation.
type MemoryStore struct {
	cfg      Config
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// New creates a MemoryStore with the given bounds.
// Non-positive values fall back to the defaults.
func New(cfg Config) *MemoryStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	return &MemoryStore{
		cfg:      cfg,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// GetOrCreate returns a snapshot of the session, creating it when unknown or
// expired. Expired sessions across the whole store are purged as a side effect.
func (s *MemoryStore) GetOrCreate(id string) (Session, error) {
	if id == "" {
		return Session{}, ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e := s.ensure(id, now)
	return s.snapshot(id, e), nil
}

// AppendTurn appends one turn, creating the session when missing.
func (s *MemoryStore) AppendTurn(id string, role model.Role, content string) error {
	if id == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(id, s.now())
	e.messages = append(e.messages, model.ChatMessage{Role: role, Content: content})
	if over := len(e.messages) - s.cfg.MaxMessages; over > 0 {
		// Strict FIFO truncation: drop the oldest turns.
		trimmed := make([]model.ChatMessage, s.cfg.MaxMessages)
		copy(trimmed, e.messages[over:])
		e.messages = trimmed
	}
	return nil
}

// History returns a copy of the session's turns, oldest first.
func (s *MemoryStore) History(id string) ([]model.ChatMessage, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(id, s.now())
	history := make([]model.ChatMessage, len(e.messages))
	copy(history, e.messages)
	return history, nil
}

func (s *MemoryStore) SetPendingAction(id string, action PendingAction) error {
	return s.update(id, func(e *entry) {
		e.pendingAction = action
	})
}

func (s *MemoryStore) GetPendingAction(id string) (PendingAction, error) {
	var action PendingAction
	err := s.update(id, func(e *entry) {
		action = e.pendingAction
	})
	return action, err
}

func (s *MemoryStore) SetCartID(id string, cartID int64) error {
	return s.update(id, func(e *entry) {
		e.cartID = cartID
		e.hasCart = true
	})
}

func (s *MemoryStore) GetCartID(id string) (int64, bool, error) {
	var (
		cartID  int64
		hasCart bool
	)
	err := s.update(id, func(e *entry) {
		cartID = e.cartID
		hasCart = e.hasCart
	})
	return cartID, hasCart, err
}

func (s *MemoryStore) SetLastIntent(id string, intent string) error {
	return s.update(id, func(e *entry) {
		e.lastIntent = intent
	})
}

func (s *MemoryStore) GetLastIntent(id string) (string, error) {
	var intent string
	err := s.update(id, func(e *entry) {
		intent = e.lastIntent
	})
	return intent, err
}

// Clear removes the session entirely.
func (s *MemoryStore) Clear(id string) error {
	if id == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// update runs fn on the session entry under the store lock,
// creating the session when missing and refreshing its last access.
func (s *MemoryStore) update(id string, fn func(e *entry)) error {
	if id == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.ensure(id, s.now()))
	return nil
}

// ensure returns the live entry for id, replacing expired ones with a fresh
// entry, and refreshes lastAccess. Caller must hold s.mu.
func (s *MemoryStore) ensure(id string, now time.Time) *entry {
	e, ok := s.sessions[id]
	if !ok || now.Sub(e.lastAccess) > s.cfg.TTL {
		e = &entry{}
		s.sessions[id] = e
	}
	e.lastAccess = now
	return e
}

// sweep lazily evicts every expired session. Caller must hold s.mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastAccess) > s.cfg.TTL {
			delete(s.sessions, id)
		}
	}
}

// snapshot copies the entry into a turn-scoped Session. Caller must hold s.mu.
func (s *MemoryStore) snapshot(id string, e *entry) Session {
	messages := make([]model.ChatMessage, len(e.messages))
	copy(messages, e.messages)
	return Session{
		ID:            id,
		Messages:      messages,
		LastIntent:    e.lastIntent,
		PendingAction: e.pendingAction,
		CartID:        e.cartID,
		HasCart:       e.hasCart,
	}
}
