package repair

import "fmt"

// MalformedResponseError indicates a text-generation response that could not
// be coerced into the canonical JSON shape. This is a recoverable, per-item
// failure, never fatal to a batch.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
