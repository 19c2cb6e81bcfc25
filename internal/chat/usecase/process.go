package usecase

import (
	"context"

	"github.com/google/uuid"

	"shopchat/internal/chat"
	"shopchat/internal/intent"
	"shopchat/internal/model"
	"shopchat/internal/session"
)

// ProcessUserMessage runs one turn of the conversation state machine.
func (uc *implUseCase) ProcessUserMessage(ctx context.Context, input chat.Input) (chat.Output, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sess, err := uc.sessions.GetOrCreate(sessionID)
	if err != nil {
		return chat.Output{}, err
	}
	// History as it was before this turn; classification and extraction see
	// the user's text separately.
	history := sess.Messages

	if err := uc.sessions.AppendTurn(sessionID, model.RoleUser, input.Text); err != nil {
		return chat.Output{}, err
	}

	resolved, autoAdjust := uc.resolveTurn(ctx, sess, input.Text, history)

	if err := uc.sessions.SetLastIntent(sessionID, string(resolved.Intent)); err != nil {
		return chat.Output{}, err
	}

	var reply string
	switch resolved.Intent {
	case intent.IntentGetProducts:
		reply, err = uc.handleGetProducts(ctx, sessionID, input.Text, history, resolved.Query)
	case intent.IntentGetProduct:
		reply, err = uc.handleGetProduct(ctx, sessionID, input.Text, history, resolved.Query)
	case intent.IntentCreateCart:
		reply, err = uc.handleCreateCart(ctx, sessionID, input.Text, history, autoAdjust)
	case intent.IntentUpdateCart:
		reply, err = uc.handleUpdateCart(ctx, sessionID, input.Text, history, autoAdjust)
	case intent.IntentFallback:
		reply, err = uc.handleFallback(ctx, input.Text, history)
	default:
		reply, err = uc.handleFallback(ctx, input.Text, history)
	}
	if err != nil {
		// Collaborator failure: the user turn stays in history, no
		// assistant turn is recorded, and the user can retry the turn.
		uc.l.Errorf(ctx, "%s: %s handler: %v", LogPrefixProcess, resolved.Intent, err)
		return chat.Output{SessionID: sessionID, Reply: chat.ReplyApology}, nil
	}

	if err := uc.sessions.AppendTurn(sessionID, model.RoleAssistant, reply); err != nil {
		return chat.Output{}, err
	}
	return chat.Output{SessionID: sessionID, Reply: reply}, nil
}

// resolveTurn decides the intent for this turn. A pending stock confirmation
// answered affirmatively converts back into its originating intent with
// autoAdjust set; this is the only transition that overrides the classifier.
// An unconfirmed pending action persists untouched.
func (uc *implUseCase) resolveTurn(ctx context.Context, sess session.Session, text string, history []model.ChatMessage) (intent.Resolution, bool) {
	if sess.PendingAction != session.ActionNone && isAffirmative(text) {
		var resolved intent.Resolution
		switch sess.PendingAction {
		case session.ActionAdjustStockCreateCart:
			resolved.Intent = intent.IntentCreateCart
		case session.ActionAdjustStockUpdateCart:
			resolved.Intent = intent.IntentUpdateCart
		}
		if err := uc.sessions.SetPendingAction(sess.ID, session.ActionNone); err != nil {
			uc.l.Warnf(ctx, "%s: clear pending action: %v", LogPrefixProcess, err)
		}
		return resolved, true
	}

	resolved := uc.resolver.Classify(ctx, text, history)
	resolved.Intent = intent.ApplyHeuristicOverride(resolved.Intent, text)
	return resolved, false
}
