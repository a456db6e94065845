package api

import "strings"

// error bodies returned to clients
const (
	msgMessageRequired = "message required"
	msgInvalidBody     = "invalid request body"
)

type ChatQueryRequest struct {
	Message string `json:"message"`
}

// Normalized returns the trimmed message; empty means the request is invalid.
func (r ChatQueryRequest) Normalized() string {
	return strings.TrimSpace(r.Message)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type IntakeResponse struct {
	Status string `json:"status"`
}
