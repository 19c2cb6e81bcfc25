package llmprovider

import "context"

// Completer is the narrow completion interface consumed by the rest of the
// service. Manager implements it; tests substitute scripted fakes.
type Completer interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Complete sends a chat completion request and returns a response
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "openai", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

// Message represents a conversation message
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Request represents a normalized chat completion request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response represents a normalized chat completion response
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
