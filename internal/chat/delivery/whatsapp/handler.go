package whatsapp

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"shopchat/internal/chat"
	pkgResponse "shopchat/pkg/response"
)

// inboundMessage is the subset of Twilio's form-encoded webhook payload the
// handler needs.
type inboundMessage struct {
	From       string `form:"From"`
	Body       string `form:"Body"`
	MessageSid string `form:"MessageSid"`
}

// HandleWebhook is the Gin handler for inbound WhatsApp messages. It ACKs
// immediately and processes the turn in a background goroutine: Twilio
// expects a response within seconds, while a turn (classification + cart +
// rephrase) can take considerably longer.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var msg inboundMessage
	if err := c.ShouldBind(&msg); err != nil {
		h.l.Warnf(ctx, "whatsapp handler: failed to parse webhook: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	if msg.From == "" || strings.TrimSpace(msg.Body) == "" {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Twilio redelivers on slow or failed ACKs; a replayed MessageSid must
	// not run the turn twice.
	if msg.MessageSid != "" {
		if _, dup := h.seen.Get(msg.MessageSid); dup {
			h.l.Infof(ctx, "whatsapp handler: duplicate delivery of %s ignored", msg.MessageSid)
			pkgResponse.OK(c, map[string]string{"status": "duplicate"})
			return
		}
		h.seen.Add(msg.MessageSid, struct{}{})
	}

	go func() {
		// Detached from the request context, which is cancelled on ACK.
		bgCtx := context.Background()
		h.processMessage(bgCtx, msg)
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage runs one turn and sends the reply back over WhatsApp. The
// sender's phone number doubles as the session id, so a conversation spans
// messages without the client tracking anything.
func (h *handler) processMessage(ctx context.Context, msg inboundMessage) {
	output, err := h.uc.ProcessUserMessage(ctx, chat.Input{
		SessionID: msg.From,
		Text:      msg.Body,
	})
	if err != nil {
		h.l.Errorf(ctx, "whatsapp handler: process message: %v", err)
		if sendErr := h.sender.SendMessage(ctx, phoneNumber(msg.From), chat.ReplyApology); sendErr != nil {
			h.l.Errorf(ctx, "whatsapp handler: send apology: %v", sendErr)
		}
		return
	}

	if err := h.sender.SendMessage(ctx, phoneNumber(msg.From), output.Reply); err != nil {
		h.l.Errorf(ctx, "whatsapp handler: send reply: %v", err)
	}
}

// phoneNumber strips Twilio's channel prefix ("whatsapp:+123...").
func phoneNumber(from string) string {
	return strings.TrimPrefix(from, "whatsapp:")
}
