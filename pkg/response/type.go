package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

const (
	// MessageSuccess is the message used for successful responses.
	MessageSuccess = "Success"

	// InternalServerErrorCode is the error_code used for 500 responses.
	InternalServerErrorCode = 500

	// DefaultErrorMessage hides internal details from clients.
	DefaultErrorMessage = "Something went wrong. Please try again later."
)
