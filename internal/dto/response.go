package dto

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Ok wraps data in a successful envelope.
func Ok(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Fail builds a failed envelope.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
