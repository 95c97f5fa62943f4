package libdaybook

import (
	"encoding/json"
	"io"
)

// An APIError reprensents a failure returned by a Daybook server.
// Operation failures arrive as a `code: -1` envelope; transport-level
// failures (auth, routing) arrive with an HTTP error status.
type APIError struct {
	StatusCode int
	Message    string
	// Diagnostic carries the server-side error string of infrastructure
	// failures. It is meant for logs, not for display.
	Diagnostic string
}

func parseAPIError(r io.Reader, code int) error {
	var payload struct {
		Err struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return err
	}
	return &APIError{StatusCode: code, Message: payload.Err.Message}
}

func (e *APIError) Error() string {
	return e.Message
}
