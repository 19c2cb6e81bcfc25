package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"shopchat/internal/model"
	"shopchat/pkg/llmprovider"
)

// rephraseInput carries one structured result to be turned into prose.
type rephraseInput struct {
	intention   string
	userMessage string
	data        any
	history     []model.ChatMessage
}

// rephrase hands a structured handler outcome to the completion provider and
// returns the natural-language reply. Purely presentational: the data is
// passed through unmodified and the caller decides what a failure degrades to.
func (uc *implUseCase) rephrase(ctx context.Context, in rephraseInput) (string, error) {
	instruction, ok := rephraseInstructions[in.intention]
	if !ok {
		instruction = rephraseInstructions[intentionFallback]
	}

	payload, err := json.Marshal(in.data)
	if err != nil {
		uc.l.Errorf(ctx, "%s: marshal data: %v", LogPrefixRephrase, err)
		return "", err
	}

	temperature := rephraseTemperature
	if in.intention == intentionFallback {
		temperature = fallbackTemperature
	}

	messages := make([]llmprovider.Message, 0, len(in.history)+2)
	messages = append(messages, llmprovider.Message{
		Role:    string(model.RoleSystem),
		Content: fmt.Sprintf(promptRephraseSystem, instruction, string(payload)),
	})
	for _, m := range in.history {
		messages = append(messages, llmprovider.Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, llmprovider.Message{Role: string(model.RoleUser), Content: in.userMessage})

	resp, err := uc.llm.Complete(ctx, &llmprovider.Request{
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: completion failed: %v", LogPrefixRephrase, err)
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
