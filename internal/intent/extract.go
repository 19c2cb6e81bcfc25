package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shopchat/internal/cart"
	"shopchat/internal/model"
	"shopchat/pkg/llmprovider"
)

// ExtractSearchQuery asks for filterable keywords. The oracle signals "no
// usable keywords" with the literal text null, parsed case-insensitively.
func (r *resolver) ExtractSearchQuery(ctx context.Context, text string, history []model.ChatMessage) string {
	messages := make([]llmprovider.Message, 0, len(history)+2)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleSystem), Content: PromptSearchQuery})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleUser), Content: text})

	resp, err := r.llm.Complete(ctx, &llmprovider.Request{
		Messages:    messages,
		Temperature: ResolverTemperature,
	})
	if err != nil {
		r.l.Warnf(ctx, "%s: completion failed: %v", LogPrefixExtractSearchQuery, err)
		return ""
	}

	query := strings.TrimSpace(resp.Text)
	if strings.EqualFold(query, "null") {
		return ""
	}
	return query
}

// extractedLine is the strict JSON shape of one extracted line.
type extractedLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ExtractCartLines extracts the requested lines. Explicitly best-effort: a
// broken completion or unparseable output returns nil, never an error.
func (r *resolver) ExtractCartLines(ctx context.Context, text string, history []model.ChatMessage, knownItems []KnownItem) []cart.LineRequest {
	prompt := fmt.Sprintf(PromptCartLinesSystem, renderKnownItems(knownItems))

	messages := make([]llmprovider.Message, 0, len(history)+2)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleSystem), Content: prompt})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, llmprovider.Message{Role: string(model.RoleUser), Content: text})

	resp, err := r.llm.Complete(ctx, &llmprovider.Request{
		Messages:    messages,
		Temperature: ResolverTemperature,
	})
	if err != nil {
		r.l.Warnf(ctx, "%s: completion failed: %v", LogPrefixExtractCartLines, err)
		return nil
	}

	var extracted []extractedLine
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(resp.Text)), &extracted); err != nil {
		r.l.Warnf(ctx, "%s: failed to parse %q: %v", LogPrefixExtractCartLines, resp.Text, err)
		return nil
	}

	lines := make([]cart.LineRequest, 0, len(extracted))
	for _, e := range extracted {
		if e.ProductID <= 0 {
			continue
		}
		lines = append(lines, cart.LineRequest{ProductID: e.ProductID, Quantity: e.Quantity})
	}
	return lines
}

var (
	explicitCartRe  = regexp.MustCompile(`(?i)cart(?:\s*(?:number|no\.?|#))?\s*[:#]?\s*(\d+)`)
	announcedCartRe = regexp.MustCompile(`(?i)cart number generated is:?\s*(\d+)`)
)

// ExtractTargetCart resolves the cart a follow-up refers to, in a fixed
// precedence order: an explicit number in the user's text, then the most
// recent assistant announcement in history. Whichever id wins must still
// exist in the backend; a stale or unknown id resolves to nil.
func (r *resolver) ExtractTargetCart(ctx context.Context, text string, history []model.ChatMessage) (*model.Cart, error) {
	if id, ok := explicitCartID(text); ok {
		return r.confirmCart(ctx, id)
	}

	// Newest assistant turn wins when several announcements exist.
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != model.RoleAssistant {
			continue
		}
		m := announcedCartRe.FindStringSubmatch(history[i].Content)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		return r.confirmCart(ctx, id)
	}

	return nil, nil
}

func (r *resolver) confirmCart(ctx context.Context, id int64) (*model.Cart, error) {
	c, err := r.carts.GetCart(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "%s: confirm cart %d: %v", LogPrefixExtractTargetCart, id, err)
		return nil, err
	}
	if c == nil {
		r.l.Infof(ctx, "%s: cart %d no longer exists", LogPrefixExtractTargetCart, id)
	}
	return c, nil
}

func explicitCartID(text string) (int64, bool) {
	m := explicitCartRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func renderKnownItems(items []KnownItem) string {
	if len(items) == 0 {
		return "No known products were supplied; rely on the conversation above.\n"
	}
	var b strings.Builder
	b.WriteString(PromptKnownItemsHeader)
	for _, it := range items {
		fmt.Fprintf(&b, "- id=%d name=%q quantity=%d\n", it.ProductID, it.Name, it.Quantity)
	}
	b.WriteString(PromptDesiredStateNote)
	return b.String()
}
