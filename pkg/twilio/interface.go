package twilio

import "context"

// Sender is the outbound messaging interface consumed by deliveries.
type Sender interface {
	SendMessage(ctx context.Context, to, body string) error
}
