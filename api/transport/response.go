package transport

import (
	"encoding/json"

	"github.com/todoforge/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope.
func NewError(code string, err interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
	}
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        domain.PublicUser `json:"user"`
}

// MessageResponse carries a bare human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
