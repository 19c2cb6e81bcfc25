package whatsapp

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"shopchat/internal/chat"
	pkgLog "shopchat/pkg/log"
	pkgTwilio "shopchat/pkg/twilio"
)

const (
	// Twilio retries webhook delivery on slow responses; seen message ids
	// are remembered long enough to swallow every retry window.
	dedupSize = 4096
	dedupTTL  = 10 * time.Minute
)

// Handler is the interface for the WhatsApp webhook delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new WhatsApp delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase, sender pkgTwilio.Sender) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		sender: sender,
		seen:   expirable.NewLRU[string, struct{}](dedupSize, nil, dedupTTL),
	}
}

type handler struct {
	l      pkgLog.Logger
	uc     chat.UseCase
	sender pkgTwilio.Sender
	seen   *expirable.LRU[string, struct{}]
}
