package intent

import (
	"context"
	"encoding/json"
	"strings"

	"shopchat/internal/model"
	"shopchat/pkg/llmprovider"
)

// classifyOutput is the strict JSON shape the classifier must return.
type classifyOutput struct {
	Intent string `json:"intent"`
	Query  string `json:"query"`
}

// Classify determines user intent from the message and recent history.
func (r *resolver) Classify(ctx context.Context, text string, history []model.ChatMessage) Resolution {
	messages := make([]llmprovider.Message, 0, len(history)+2)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleSystem), Content: PromptClassifySystem})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleUser), Content: text})

	resp, err := r.llm.Complete(ctx, &llmprovider.Request{
		Messages:    messages,
		Temperature: ResolverTemperature,
	})
	if err != nil {
		r.l.Warnf(ctx, "%s: completion failed, falling back: %v", LogPrefixClassify, err)
		return Resolution{Intent: IntentFallback}
	}

	var output classifyOutput
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(resp.Text)), &output); err != nil {
		r.l.Warnf(ctx, "%s: failed to parse %q, falling back: %v", LogPrefixClassify, resp.Text, err)
		return Resolution{Intent: IntentFallback}
	}

	resolved := parseIntent(output.Intent)
	query := output.Query
	if strings.EqualFold(strings.TrimSpace(query), "null") {
		query = ""
	}

	r.l.Infof(ctx, "%s: classified as %s", LogPrefixClassify, resolved)
	return Resolution{Intent: resolved, Query: query}
}

// parseIntent maps the classifier's string onto the closed enum. Anything
// outside the enumeration is fallback.
func parseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentGetProducts:
		return IntentGetProducts
	case IntentGetProduct:
		return IntentGetProduct
	case IntentCreateCart:
		return IntentCreateCart
	case IntentUpdateCart:
		return IntentUpdateCart
	default:
		return IntentFallback
	}
}
