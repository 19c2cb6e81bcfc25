package llmprovider

import (
	"context"
	"fmt"

	"shopchat/pkg/deepseek"
	"shopchat/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to the Provider interface
type OpenAIAdapter struct {
	client openai.IOpenAI
}

var _ Provider = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter creates a Provider backed by an OpenAI client
func NewOpenAIAdapter(client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{client: client}
}

func (a *OpenAIAdapter) Name() string  { return "openai" }
func (a *OpenAIAdapter) Model() string { return a.client.Model() }

func (a *OpenAIAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openai.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := a.client.ChatCompletion(ctx, &openai.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices in response")
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: a.Name(),
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

var _ Provider = (*DeepSeekAdapter)(nil)

// NewDeepSeekAdapter creates a Provider backed by a DeepSeek client
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

func (a *DeepSeekAdapter) Name() string  { return "deepseek" }
func (a *DeepSeekAdapter) Model() string { return a.client.Model() }

func (a *DeepSeekAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]deepseek.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, deepseek.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := a.client.ChatCompletion(ctx, &deepseek.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("deepseek: empty choices in response")
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		ProviderName: a.Name(),
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
