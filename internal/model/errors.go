package model

import "fmt"

// APIResponse is the part of a failed HTTP exchange worth showing to a user.
type APIResponse struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

// APIError is returned by the todo API client for non-2xx answers.
type APIError struct {
	Message  string       `json:"message"`
	Response *APIResponse `json:"response,omitempty"`
}

func (e *APIError) Error() string {
	if e.Response == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Response.Status, e.Response.StatusText)
}

// Status returns the HTTP status, or 0 when no response was received.
func (e *APIError) Status() int {
	if e == nil || e.Response == nil {
		return 0
	}
	return e.Response.Status
}
