package service

import "github.com/acrennan/daybook/internal/fault"

// Result status codes.
const (
	// CodeSuccess denotes a successful operation.
	CodeSuccess = 0
	// CodeFailure denotes a business or infrastructure failure.
	CodeFailure = -1
)

// M is an arbitrary map.
type M map[string]any

// A Result is the outcome of a record store operation. Every operation
// resolves to a Result; none of them raises past the service boundary.
// Callers distinguish success from failure through Code, never through
// error propagation.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Page    int    `json:"page,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Error   string `json:"error,omitempty"`
}

// success builds a Code 0 result.
func success(message string, data any) Result {
	return Result{Code: CodeSuccess, Message: message, Data: data}
}

// failure builds a Code -1 result from a fault. The fault diagnostic is
// carried in Error for logging purposes, not for end-user display.
func failure(f *fault.Fault) Result {
	return Result{Code: CodeFailure, Message: f.Message, Error: f.Diagnostic()}
}
