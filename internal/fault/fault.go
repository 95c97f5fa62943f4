// Package fault defines the business failure taxonomy of the record store.
// Every failure crossing the service boundary is one of these values,
// rendered as a result envelope; none of them is allowed to escape as a
// raised fault.
package fault

// Failure tags.
const (
	// TagInvalidCollection denotes a collection name outside the allow-list.
	TagInvalidCollection = "invalid_collection"
	// TagNotFound denotes a record absent or not owned by the caller.
	TagNotFound = "not_found"
	// TagNoRecords denotes a random sample over an empty set.
	TagNoRecords = "no_records"
	// TagStoreUnavailable denotes an underlying document store failure.
	TagStoreUnavailable = "store_unavailable"
)

// A Fault represents a business or infrastructure failure of a record
// store operation.
type Fault struct {
	Tag     string
	Message string
	Cause   error
}

// Error implements error interface.
func (f *Fault) Error() string {
	return f.Message
}

// Unwrap returns the underlying cause, if any.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Diagnostic returns the internal cause message, kept for logging and
// debugging but never for end-user display.
func (f *Fault) Diagnostic() string {
	if f.Cause == nil {
		return ""
	}
	return f.Cause.Error()
}

// InvalidCollection returns the failure used for unauthorized collection names.
func InvalidCollection() *Fault {
	return &Fault{Tag: TagInvalidCollection, Message: "invalid collection name"}
}

// NotFound returns the failure used when a record is absent or not owned
// by the caller. Both cases share one message so that existence does not
// leak across owners.
func NotFound() *Fault {
	return &Fault{Tag: TagNotFound, Message: "record not found"}
}

// NoRecords returns the failure used for a random sample on an empty set.
func NoRecords() *Fault {
	return &Fault{Tag: TagNoRecords, Message: "no records yet"}
}

// StoreUnavailable returns the failure used when the document store call
// failed for any reason.
func StoreUnavailable(message string, cause error) *Fault {
	return &Fault{Tag: TagStoreUnavailable, Message: message, Cause: cause}
}
