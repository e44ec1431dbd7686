// Package extraction converts stored resume documents into plain text.
package extraction

import "fmt"

// UnsupportedFormatError indicates a storage key with a suffix outside the
// supported set. It is returned before any blob I/O happens.
type UnsupportedFormatError struct {
	Key    string
	Suffix string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q for key %s", e.Suffix, e.Key)
}

// ExtractionError indicates an unreadable document: unreachable storage, a
// corrupt file, or a decode failure. All I/O and parse failures are converted
// to this type; extraction never reports anything else past its boundary.
type ExtractionError struct {
	Key     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Key, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
