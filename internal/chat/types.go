package chat

// Input is one inbound user message. SessionID may be empty, in which case
// a new session id is generated and returned in the Output.
type Input struct {
	SessionID string
	Text      string
}

// Output is the assistant's reply for one turn.
type Output struct {
	SessionID string
	Reply     string
}
