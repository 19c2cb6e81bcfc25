package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopchat/internal/cart"
	"shopchat/internal/chat"
	"shopchat/internal/intent"
	"shopchat/internal/model"
	"shopchat/internal/session"
)

// handleCreateCart extracts requested lines and opens a new cart. A stock
// shortfall parks the turn in the confirmation state instead of failing;
// with autoAdjust set (the user just confirmed) the shortfalled quantities
// are clamped to stock and the create is retried once.
func (uc *implUseCase) handleCreateCart(ctx context.Context, sessionID, text string, history []model.ChatMessage, autoAdjust bool) (string, error) {
	lines := uc.resolver.ExtractCartLines(ctx, text, history, nil)
	if len(lines) == 0 {
		return chat.ReplyNoItemsDetected, nil
	}

	commit := func(lines []cart.LineRequest) (cart.Result, error) {
		return uc.carts.CreateCart(ctx, lines)
	}
	return uc.commitCartOperation(ctx, commitParams{
		sessionID:     sessionID,
		text:          text,
		history:       history,
		lines:         lines,
		autoAdjust:    autoAdjust,
		commit:        commit,
		pendingAction: session.ActionAdjustStockCreateCart,
		successReply: func(c *model.Cart) string {
			return fmt.Sprintf(chat.CartCreatedFormat, c.ID)
		},
		successIntention: intentionCartCreated,
	})
}

// handleUpdateCart resolves which cart the user means, extracts the desired
// final state against its current lines, and applies the delta.
func (uc *implUseCase) handleUpdateCart(ctx context.Context, sessionID, text string, history []model.ChatMessage, autoAdjust bool) (string, error) {
	target, err := uc.resolveTargetCart(ctx, sessionID, text, history)
	if err != nil {
		return "", err
	}
	if target == nil {
		return chat.ReplyNoCartFound, nil
	}

	lines := uc.resolver.ExtractCartLines(ctx, text, history, knownItemsFromCart(target))
	if len(lines) == 0 {
		return chat.ReplyNoItemsDetected, nil
	}

	commit := func(lines []cart.LineRequest) (cart.Result, error) {
		return uc.carts.UpdateCart(ctx, target.ID, lines)
	}
	return uc.commitCartOperation(ctx, commitParams{
		sessionID:     sessionID,
		text:          text,
		history:       history,
		lines:         lines,
		autoAdjust:    autoAdjust,
		commit:        commit,
		pendingAction: session.ActionAdjustStockUpdateCart,
		successReply: func(c *model.Cart) string {
			return fmt.Sprintf(chat.CartUpdatedFormat, c.ID)
		},
		successIntention: intentionCartUpdated,
	})
}

// resolveTargetCart follows a fixed precedence: an explicit number or prior
// announcement found by the resolver, then the session's remembered cart.
func (uc *implUseCase) resolveTargetCart(ctx context.Context, sessionID, text string, history []model.ChatMessage) (*model.Cart, error) {
	target, err := uc.resolver.ExtractTargetCart(ctx, text, history)
	if err != nil {
		return nil, err
	}
	if target != nil {
		return target, nil
	}

	id, ok, err := uc.sessions.GetCartID(sessionID)
	if err != nil || !ok {
		return nil, err
	}
	return uc.carts.GetCart(ctx, id)
}

// commitParams parameterizes the shared create/update commit flow.
type commitParams struct {
	sessionID        string
	text             string
	history          []model.ChatMessage
	lines            []cart.LineRequest
	autoAdjust       bool
	commit           func(lines []cart.LineRequest) (cart.Result, error)
	pendingAction    session.PendingAction
	successReply     func(c *model.Cart) string
	successIntention string
}

// commitCartOperation runs the commit with the shared shortfall/negotiation
// semantics of create and update.
func (uc *implUseCase) commitCartOperation(ctx context.Context, p commitParams) (string, error) {
	result, reply, err := uc.tryCommit(ctx, p, p.lines)
	if err != nil || reply != "" {
		return reply, err
	}

	if !result.Realized() && p.autoAdjust {
		adjusted := cart.AdjustToAvailable(p.lines, result.Shortfalls)
		result, reply, err = uc.tryCommit(ctx, p, adjusted)
		if err != nil || reply != "" {
			return reply, err
		}
	}

	if !result.Realized() {
		return uc.replyShortfall(ctx, p, result.Shortfalls)
	}
	return uc.replyRealized(ctx, p, result.Cart)
}

// tryCommit performs one commit attempt. A non-empty reply short-circuits
// the flow with a user-facing message for NotFound/InvalidRequest errors.
func (uc *implUseCase) tryCommit(ctx context.Context, p commitParams, lines []cart.LineRequest) (cart.Result, string, error) {
	result, err := p.commit(lines)
	if err == nil {
		return result, "", nil
	}

	var notFound *cart.ProductNotFoundError
	switch {
	case errors.As(err, &notFound):
		return cart.Result{}, productsNotFoundReply(notFound), nil
	case errors.Is(err, cart.ErrCartNotFound):
		return cart.Result{}, chat.ReplyNoCartFound, nil
	case errors.Is(err, cart.ErrEmptyLines):
		return cart.Result{}, chat.ReplyNoItemsDetected, nil
	default:
		return cart.Result{}, "", err
	}
}

// replyRealized announces a committed cart. The announcement sentence is
// deterministic so follow-up turns can pattern-match the cart id; rephrased
// prose is appended when the oracle cooperates and dropped when it does not,
// because the mutation has already committed.
func (uc *implUseCase) replyRealized(ctx context.Context, p commitParams, c *model.Cart) (string, error) {
	if err := uc.sessions.SetCartID(p.sessionID, c.ID); err != nil {
		return "", err
	}
	if err := uc.sessions.SetPendingAction(p.sessionID, session.ActionNone); err != nil {
		return "", err
	}

	announcement := p.successReply(c)
	prose, err := uc.rephrase(ctx, rephraseInput{
		intention:   p.successIntention,
		userMessage: p.text,
		data:        c,
		history:     p.history,
	})
	if err != nil || prose == "" {
		return announcement, nil
	}
	return announcement + " " + prose, nil
}

// replyShortfall parks the session in the confirmation state and asks the
// user whether to proceed with the available quantities.
func (uc *implUseCase) replyShortfall(ctx context.Context, p commitParams, shortfalls []cart.StockShortfall) (string, error) {
	if err := uc.sessions.SetPendingAction(p.sessionID, p.pendingAction); err != nil {
		return "", err
	}
	if err := uc.sessions.SetLastIntent(p.sessionID, chat.LastIntentCreateCartError); err != nil {
		return "", err
	}

	reply, err := uc.rephrase(ctx, rephraseInput{
		intention:   intentionShortfall,
		userMessage: p.text,
		data:        shortfalls,
		history:     p.history,
	})
	if err != nil || reply == "" {
		// The pending action is already set; a deterministic fallback keeps
		// the negotiation alive even when the oracle is down.
		return shortfallFallbackText(shortfalls), nil
	}
	return reply, nil
}

func shortfallFallbackText(shortfalls []cart.StockShortfall) string {
	var b strings.Builder
	b.WriteString("Some items exceed the available stock:\n")
	for _, sf := range shortfalls {
		fmt.Fprintf(&b, "- %s: requested %d, available %d\n", sf.ProductName, sf.RequestedQuantity, sf.AvailableStock)
	}
	b.WriteString("Would you like to proceed with the available quantities? (yes/no)")
	return b.String()
}

func productsNotFoundReply(err *cart.ProductNotFoundError) string {
	ids := make([]string, len(err.IDs))
	for i, id := range err.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("I couldn't find these products in the catalog: %s. Could you check and try again?", strings.Join(ids, ", "))
}

func knownItemsFromCart(c *model.Cart) []intent.KnownItem {
	items := make([]intent.KnownItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		name := ""
		if l.Product != nil {
			name = l.Product.Name
		}
		items = append(items, intent.KnownItem{ProductID: l.ProductID, Name: name, Quantity: l.Quantity})
	}
	return items
}
