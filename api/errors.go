package api

import "fmt"

// Error is a failure reported by the backend. Message is the backend's
// user-presentable message from the response envelope, when one was sent.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// BackendMessage returns the backend-supplied message, if any. The session
// controller surfaces this on login/registration forms.
func (e *Error) BackendMessage() string {
	return e.Message
}
