package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"shopchat/internal/cart"
	cartsqlite "shopchat/internal/cart/repository/sqlite"
	cartusecase "shopchat/internal/cart/usecase"
	"shopchat/internal/chat"
	"shopchat/internal/intent"
	"shopchat/internal/model"
	"shopchat/internal/session"
	"shopchat/internal/storage"
	"shopchat/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockResolver struct {
	classify          func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution
	extractCartLines  func(ctx context.Context, text string, history []model.ChatMessage, known []intent.KnownItem) []cart.LineRequest
	extractTargetCart func(ctx context.Context, text string, history []model.ChatMessage) (*model.Cart, error)
}

func (m *mockResolver) Classify(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
	return m.classify(ctx, text, history)
}

func (m *mockResolver) ExtractSearchQuery(ctx context.Context, text string, history []model.ChatMessage) string {
	return ""
}

func (m *mockResolver) ExtractCartLines(ctx context.Context, text string, history []model.ChatMessage, known []intent.KnownItem) []cart.LineRequest {
	if m.extractCartLines == nil {
		return nil
	}
	return m.extractCartLines(ctx, text, history, known)
}

func (m *mockResolver) ExtractTargetCart(ctx context.Context, text string, history []model.ChatMessage) (*model.Cart, error) {
	if m.extractTargetCart == nil {
		return nil, nil
	}
	return m.extractTargetCart(ctx, text, history)
}

type mockCatalog struct {
	search func(ctx context.Context, query string) ([]model.Product, error)
}

func (m *mockCatalog) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return m.search(ctx, query)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return nil, nil
}

func (m *mockCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	return m.search(ctx, "")
}

type scriptedCompleter struct {
	reply string
	err   error
}

func (s *scriptedCompleter) Complete(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llmprovider.Response{Text: s.reply}, nil
}

// testHarness wires a real session store and a real cart engine over an
// in-memory database, with a scripted resolver and completion provider.
type testHarness struct {
	uc       *implUseCase
	sessions *session.MemoryStore
	db       *sql.DB
	resolver *mockResolver
	llm      *scriptedCompleter
}

func newHarness(t *testing.T, stock int) *testHarness {
	t.Helper()
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(
		`INSERT INTO products (name, description, category, price, stock) VALUES ('Coffee', '', 'beverages', 12.5, ?)`,
		stock,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := &mockLogger{}
	sessions := session.New(session.Config{})
	carts := cartusecase.New(cartsqlite.New(db, l), l)
	resolver := &mockResolver{
		classify: func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
			return intent.Resolution{Intent: intent.IntentFallback}
		},
	}
	llm := &scriptedCompleter{reply: "Sure!"}
	catalogUC := &mockCatalog{
		search: func(ctx context.Context, query string) ([]model.Product, error) {
			return []model.Product{{ID: 1, Name: "Coffee", Price: 12.5, Stock: stock}}, nil
		},
	}

	return &testHarness{
		uc:       New(sessions, resolver, carts, catalogUC, llm, l),
		sessions: sessions,
		db:       db,
		resolver: resolver,
		llm:      llm,
	}
}

func (h *testHarness) stock(t *testing.T, productID int64) int {
	t.Helper()
	var stock int
	if err := h.db.QueryRow(`SELECT stock FROM products WHERE id = ?`, productID).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func TestProcessUserMessageGeneratesSessionID(t *testing.T) {
	h := newHarness(t, 5)
	out, err := h.uc.ProcessUserMessage(context.Background(), chat.Input{Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SessionID == "" {
		t.Error("expected generated session id")
	}
	history, _ := h.sessions.History(out.SessionID)
	if len(history) != 2 || history[0].Role != model.RoleUser || history[1].Role != model.RoleAssistant {
		t.Errorf("expected user+assistant turns, got %+v", history)
	}
}

func TestCreateCartHappyPath(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	h.resolver.classify = func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
		return intent.Resolution{Intent: intent.IntentCreateCart}
	}
	h.resolver.extractCartLines = func(ctx context.Context, text string, history []model.ChatMessage, known []intent.KnownItem) []cart.LineRequest {
		return []cart.LineRequest{{ProductID: 1, Quantity: 2}}
	}

	out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "2 coffees please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Reply, "cart number generated is: 1") {
		t.Errorf("expected cart announcement, got %q", out.Reply)
	}
	if got := h.stock(t, 1); got != 3 {
		t.Errorf("expected stock 3, got %d", got)
	}
	cartID, ok, _ := h.sessions.GetCartID("s1")
	if !ok || cartID != 1 {
		t.Errorf("expected session cart id 1, got %d ok=%v", cartID, ok)
	}
}

func TestShortfallNegotiationLoop(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	h.resolver.classify = func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
		if strings.Contains(text, "coffees") {
			return intent.Resolution{Intent: intent.IntentCreateCart}
		}
		return intent.Resolution{Intent: intent.IntentFallback}
	}
	h.resolver.extractCartLines = func(ctx context.Context, text string, history []model.ChatMessage, known []intent.KnownItem) []cart.LineRequest {
		return []cart.LineRequest{{ProductID: 1, Quantity: 10}}
	}
	// Oracle down for the shortfall turn: the deterministic fallback must
	// carry the negotiation.
	h.llm.err = errors.New("oracle down")

	t.Run("Shortfall Parks Pending Action", func(t *testing.T) {
		out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "10 coffees please"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.Reply, "requested 10, available 5") {
			t.Errorf("expected shortfall text, got %q", out.Reply)
		}
		action, _ := h.sessions.GetPendingAction("s1")
		if action != session.ActionAdjustStockCreateCart {
			t.Errorf("expected pending create adjustment, got %q", action)
		}
		lastIntent, _ := h.sessions.GetLastIntent("s1")
		if lastIntent != chat.LastIntentCreateCartError {
			t.Errorf("expected create_cart_error, got %q", lastIntent)
		}
		if got := h.stock(t, 1); got != 5 {
			t.Errorf("expected stock untouched, got %d", got)
		}
	})

	t.Run("Affirmative Confirms And Auto-Adjusts", func(t *testing.T) {
		h.llm.err = nil
		out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "yes"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.Reply, "cart number generated is: 1") {
			t.Errorf("expected realized cart, got %q", out.Reply)
		}
		if got := h.stock(t, 1); got != 0 {
			t.Errorf("expected stock drained to 0, got %d", got)
		}
		action, _ := h.sessions.GetPendingAction("s1")
		if action != session.ActionNone {
			t.Errorf("expected pending action cleared, got %q", action)
		}
	})

	t.Run("Second Confirmation Is A No-Op", func(t *testing.T) {
		out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "yes"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.Reply, "cart number generated") {
			t.Errorf("expected fallback reply, got %q", out.Reply)
		}
		if got := h.stock(t, 1); got != 0 {
			t.Errorf("expected no further mutation, got stock %d", got)
		}
	})
}

func TestUpdateCartShrinkReleasesStock(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	h.resolver.classify = func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
		if strings.Contains(text, "just one") {
			return intent.Resolution{Intent: intent.IntentUpdateCart}
		}
		return intent.Resolution{Intent: intent.IntentCreateCart}
	}
	h.resolver.extractCartLines = func(ctx context.Context, text string, history []model.ChatMessage, known []intent.KnownItem) []cart.LineRequest {
		if strings.Contains(text, "just one") {
			return []cart.LineRequest{{ProductID: 1, Quantity: 1}}
		}
		return []cart.LineRequest{{ProductID: 1, Quantity: 2}}
	}

	if _, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "2 coffees"}); err != nil {
		t.Fatalf("create turn: %v", err)
	}
	if got := h.stock(t, 1); got != 3 {
		t.Fatalf("expected stock 3 after create, got %d", got)
	}

	out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "make it just one"})
	if err != nil {
		t.Fatalf("update turn: %v", err)
	}
	if !strings.Contains(out.Reply, "cart number 1 is updated") {
		t.Errorf("expected update announcement, got %q", out.Reply)
	}
	if got := h.stock(t, 1); got != 4 {
		t.Errorf("expected stock released to 4, got %d", got)
	}
}

func TestUpdateCartNoTargetFound(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	h.resolver.classify = func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
		return intent.Resolution{Intent: intent.IntentUpdateCart}
	}

	out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "add 2 more"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reply != chat.ReplyNoCartFound {
		t.Errorf("expected no_cart_found reply, got %q", out.Reply)
	}
	if got := h.stock(t, 1); got != 5 {
		t.Errorf("expected nothing mutated, got stock %d", got)
	}
}

func TestCollaboratorFailureDegradesToApology(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	// Fallback handler needs the oracle; take it down.
	h.llm.err = errors.New("oracle down")

	out, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reply != chat.ReplyApology {
		t.Errorf("expected apology, got %q", out.Reply)
	}
	// The user turn stays so the retry has context; no assistant turn.
	history, _ := h.sessions.History("s1")
	if len(history) != 1 || history[0].Role != model.RoleUser {
		t.Errorf("expected only the user turn, got %+v", history)
	}
}

func TestGetProductsEmitsSystemTurn(t *testing.T) {
	h := newHarness(t, 5)
	ctx := context.Background()

	h.resolver.classify = func(ctx context.Context, text string, history []model.ChatMessage) intent.Resolution {
		return intent.Resolution{Intent: intent.IntentGetProducts, Query: "coffee"}
	}

	if _, err := h.uc.ProcessUserMessage(ctx, chat.Input{SessionID: "s1", Text: "what coffee do you have?"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, _ := h.sessions.History("s1")
	var systemTurn string
	for _, m := range history {
		if m.Role == model.RoleSystem {
			systemTurn = m.Content
		}
	}
	if !strings.Contains(systemTurn, `name="Coffee"`) || !strings.Contains(systemTurn, "id=1") {
		t.Errorf("expected product summary system turn, got %q", systemTurn)
	}
}

func TestIsAffirmative(t *testing.T) {
	yes := []string{"yes", "Yes!", "OKAY", "sí", "Sí.", "claro", "of course", "go ahead"}
	for _, s := range yes {
		if !isAffirmative(s) {
			t.Errorf("expected %q to be affirmative", s)
		}
	}
	no := []string{"no", "yes but make it two", "what?", "add 2 more", ""}
	for _, s := range no {
		if isAffirmative(s) {
			t.Errorf("expected %q to not be affirmative", s)
		}
	}
}
