package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"shopchat/internal/catalog"
	"shopchat/internal/model"
)

// handleGetProducts searches or lists the catalog and replies with a
// rephrased product list. The raw results are also appended to history as a
// system turn so a later "I'll take two of those" can be matched by name.
func (uc *implUseCase) handleGetProducts(ctx context.Context, sessionID, text string, history []model.ChatMessage, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		query = uc.resolver.ExtractSearchQuery(ctx, text, history)
	}

	products, err := uc.catalog.SearchProducts(ctx, query)
	if err != nil {
		return "", err
	}

	reply, err := uc.rephrase(ctx, rephraseInput{
		intention:   intentionProductList,
		userMessage: text,
		data:        products,
		history:     history,
	})
	if err != nil {
		return "", err
	}

	if len(products) > 0 {
		if err := uc.sessions.AppendTurn(sessionID, model.RoleSystem, productSummary(products)); err != nil {
			return "", err
		}
	}
	return reply, nil
}

var explicitProductRe = regexp.MustCompile(`(?i)product(?:\s*(?:number|no\.?|#))?\s*[:#]?\s*(\d+)`)

// handleGetProduct answers a question about a single product: an explicit
// "product N" id first, then the top search hit. With nothing to pin the
// product down it degrades to the listing flow.
func (uc *implUseCase) handleGetProduct(ctx context.Context, sessionID, text string, history []model.ChatMessage, query string) (string, error) {
	if m := explicitProductRe.FindStringSubmatch(text); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			p, err := uc.catalog.GetProduct(ctx, id)
			if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
				return "", err
			}
			if p != nil {
				return uc.replyProductDetail(ctx, sessionID, text, history, p)
			}
			// Unknown id: fall through to search by name.
		}
	}

	if strings.TrimSpace(query) == "" {
		query = uc.resolver.ExtractSearchQuery(ctx, text, history)
	}
	products, err := uc.catalog.SearchProducts(ctx, query)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return uc.handleGetProducts(ctx, sessionID, text, history, query)
	}
	return uc.replyProductDetail(ctx, sessionID, text, history, &products[0])
}

func (uc *implUseCase) replyProductDetail(ctx context.Context, sessionID, text string, history []model.ChatMessage, p *model.Product) (string, error) {
	reply, err := uc.rephrase(ctx, rephraseInput{
		intention:   intentionProductDetail,
		userMessage: text,
		data:        p,
		history:     history,
	})
	if err != nil {
		return "", err
	}
	if err := uc.sessions.AppendTurn(sessionID, model.RoleSystem, productSummary([]model.Product{*p})); err != nil {
		return "", err
	}
	return reply, nil
}

// handleFallback replies to anything that is not a shop operation. No side
// effects beyond the conversation itself.
func (uc *implUseCase) handleFallback(ctx context.Context, text string, history []model.ChatMessage) (string, error) {
	return uc.rephrase(ctx, rephraseInput{
		intention:   intentionFallback,
		userMessage: text,
		data:        nil,
		history:     history,
	})
}

// productSummary renders shown products into a system turn. Later fuzzy
// line-matching reads names and ids from here.
func productSummary(products []model.Product) string {
	var b strings.Builder
	b.WriteString("Products shown to the customer:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- id=%d name=%q price=%.2f stock=%d\n", p.ID, p.Name, p.Price, p.Stock)
	}
	return b.String()
}
