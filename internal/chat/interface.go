package chat

import "context"

// UseCase defines the business logic interface for the conversation domain.
type UseCase interface {
	// ProcessUserMessage runs one conversational turn: append the user
	// turn, resolve intent, dispatch, append the assistant turn, and
	// return the reply. A collaborator failure degrades to an apology
	// reply with session state left as it was before dispatch.
	ProcessUserMessage(ctx context.Context, input Input) (Output, error)
}
