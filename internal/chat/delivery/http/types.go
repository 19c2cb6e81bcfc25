package http

// processMessageRequest is the inbound chat message payload.
type processMessageRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// processMessageResponse carries the assistant's reply and the session id to
// reuse on the next turn.
type processMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}
