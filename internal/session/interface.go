package session

import "shopchat/internal/model"

// Store holds per-conversation state. Implementations must serialize
// mutations on a single session id so concurrent turns for the same
// session cannot interleave and corrupt history ordering.
type Store interface {
	// GetOrCreate returns a snapshot of the session, creating it when unknown.
	// Expired sessions are purged as a side effect and recreated empty.
	GetOrCreate(id string) (Session, error)

	// AppendTurn appends one turn, creating the session when missing.
	// History beyond the configured bound is dropped oldest-first.
	AppendTurn(id string, role model.Role, content string) error

	// History returns a copy of the session's turns, oldest first.
	History(id string) ([]model.ChatMessage, error)

	SetPendingAction(id string, action PendingAction) error
	GetPendingAction(id string) (PendingAction, error)

	SetCartID(id string, cartID int64) error
	GetCartID(id string) (int64, bool, error)

	SetLastIntent(id string, intent string) error
	GetLastIntent(id string) (string, error)

	// Clear removes the session entirely.
	Clear(id string) error
}
