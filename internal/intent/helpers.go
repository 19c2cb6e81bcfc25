package intent

import (
	"regexp"
	"strings"

	"shopchat/internal/model"
	"shopchat/pkg/llmprovider"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSONResponse removes markdown code fences and surrounding prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	if matches := codeFenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return strings.TrimSpace(text)
}

// historyMessages converts stored turns into provider messages.
func historyMessages(history []model.ChatMessage) []llmprovider.Message {
	messages := make([]llmprovider.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llmprovider.Message{Role: string(m.Role), Content: m.Content})
	}
	return messages
}
