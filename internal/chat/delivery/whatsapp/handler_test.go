package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"shopchat/internal/chat"
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

type mockChatUseCase struct {
	mu     sync.Mutex
	inputs []chat.Input
	done   chan struct{}
}

func (m *mockChatUseCase) ProcessUserMessage(ctx context.Context, input chat.Input) (chat.Output, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return chat.Output{SessionID: input.SessionID, Reply: "hi there"}, nil
}

func (m *mockChatUseCase) calls() []chat.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chat.Input(nil), m.inputs...)
}

type mockSender struct {
	mu   sync.Mutex
	sent []string
	tos  []string
	done chan struct{}
}

func (m *mockSender) SendMessage(ctx context.Context, to, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, body)
	m.tos = append(m.tos, to)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return nil
}

func postWebhook(t *testing.T, h Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("POST", "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	h.HandleWebhook(c)
	return w
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background processing")
	}
}

func TestHandleWebhook(t *testing.T) {
	t.Run("ACKs And Replies In Background", func(t *testing.T) {
		uc := &mockChatUseCase{}
		sender := &mockSender{done: make(chan struct{}, 1)}
		h := New(&mockLogger{}, uc, sender)

		form := url.Values{
			"From":       {"whatsapp:+5215512345678"},
			"Body":       {"2 coffees please"},
			"MessageSid": {"SM123"},
		}
		w := postWebhook(t, h, form)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 ACK, got %d", w.Code)
		}

		waitFor(t, sender.done)
		calls := uc.calls()
		if len(calls) != 1 || calls[0].SessionID != "whatsapp:+5215512345678" || calls[0].Text != "2 coffees please" {
			t.Errorf("unexpected usecase input: %+v", calls)
		}
		sender.mu.Lock()
		defer sender.mu.Unlock()
		if len(sender.sent) != 1 || sender.sent[0] != "hi there" {
			t.Errorf("unexpected outbound messages: %v", sender.sent)
		}
		if sender.tos[0] != "+5215512345678" {
			t.Errorf("expected channel prefix stripped, got %q", sender.tos[0])
		}
	})

	t.Run("Duplicate MessageSid Processed Once", func(t *testing.T) {
		uc := &mockChatUseCase{}
		sender := &mockSender{done: make(chan struct{}, 2)}
		h := New(&mockLogger{}, uc, sender)

		form := url.Values{
			"From":       {"whatsapp:+5215512345678"},
			"Body":       {"hello"},
			"MessageSid": {"SM999"},
		}
		postWebhook(t, h, form)
		waitFor(t, sender.done)
		w := postWebhook(t, h, form)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for duplicate, got %d", w.Code)
		}

		// Give a wrongly-spawned goroutine a moment to show itself.
		time.Sleep(50 * time.Millisecond)
		if calls := uc.calls(); len(calls) != 1 {
			t.Errorf("expected exactly one processed turn, got %d", len(calls))
		}
	})

	t.Run("Empty Body Ignored", func(t *testing.T) {
		uc := &mockChatUseCase{}
		sender := &mockSender{}
		h := New(&mockLogger{}, uc, sender)

		form := url.Values{
			"From": {"whatsapp:+5215512345678"},
			"Body": {"   "},
		}
		w := postWebhook(t, h, form)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		time.Sleep(50 * time.Millisecond)
		if calls := uc.calls(); len(calls) != 0 {
			t.Errorf("expected no processing for empty body, got %+v", calls)
		}
	})
}
