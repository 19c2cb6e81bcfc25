package model

// Role tags one side of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one role-tagged turn in a conversation.
type ChatMessage struct {
	Role    Role
	Content string
}
