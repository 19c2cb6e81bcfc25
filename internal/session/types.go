package session

import (
	"time"

	"shopchat/internal/model"
)

// Config bounds every session held by the store.
type Config struct {
	TTL         time.Duration // sessions idle longer than this are evicted
	MaxMessages int           // history is truncated FIFO beyond this bound
}

// PendingAction marks a confirmation the orchestrator is waiting on.
type PendingAction string

const (
	ActionNone                  PendingAction = ""
	ActionAdjustStockCreateCart PendingAction = "adjust_stock_and_create_cart"
	ActionAdjustStockUpdateCart PendingAction = "adjust_stock_and_update_cart"
)

// Session is a point-in-time copy of one conversation's state.
// Handlers receive these copies scoped to a single turn; they are never
// shared or retained across turns.
type Session struct {
	ID            string
	Messages      []model.ChatMessage
	LastIntent    string
	PendingAction PendingAction
	CartID        int64
	HasCart       bool
}

// entry is the store-owned mutable state behind one session id.
type entry struct {
	messages      []model.ChatMessage
	lastIntent    string
	pendingAction PendingAction
	cartID        int64
	hasCart       bool
	lastAccess    time.Time
}
