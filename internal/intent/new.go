package intent

import (
	"context"

	"shopchat/internal/cart"
	"shopchat/internal/model"
	"shopchat/pkg/llmprovider"
	"shopchat/pkg/log"
)

// Resolver turns the latest user text plus recent history into a structured
// intent and auxiliary extracted data. Classification and extraction never
// fail past this boundary: a broken completion degrades to fallback or an
// empty extraction.
type Resolver interface {
	// Classify determines the user's intent. Oracle failure or unparseable
	// output yields IntentFallback, never an error.
	Classify(ctx context.Context, text string, history []model.ChatMessage) Resolution

	// ExtractSearchQuery pulls filterable keywords out of the message.
	// Returns "" when the oracle answers the literal "null" or fails.
	ExtractSearchQuery(ctx context.Context, text string, history []model.ChatMessage) string

	// ExtractCartLines extracts requested {product, quantity} lines. When
	// knownItems is non-empty it is rendered verbatim into the prompt for
	// fuzzy name matching. Best-effort: unparseable output returns nil.
	ExtractCartLines(ctx context.Context, text string, history []model.ChatMessage, knownItems []KnownItem) []cart.LineRequest

	// ExtractTargetCart resolves which cart a follow-up refers to: an
	// explicit number in the text first, then a cart id previously
	// announced by the assistant in history. The id is confirmed against
	// the backend; a nonexistent id resolves to nil, not an error.
	ExtractTargetCart(ctx context.Context, text string, history []model.ChatMessage) (*model.Cart, error)
}

// CartReader is the narrow backend view needed to confirm a cart exists.
type CartReader interface {
	GetCart(ctx context.Context, cartID int64) (*model.Cart, error)
}

type resolver struct {
	llm   llmprovider.Completer
	carts CartReader
	l     log.Logger
}

// New creates a Resolver backed by the given completion provider.
func New(llm llmprovider.Completer, carts CartReader, l log.Logger) Resolver {
	return &resolver{
		llm:   llm,
		carts: carts,
		l:     l,
	}
}
