package store

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("revision store request failed")

	// ErrNoCurrentRevision is returned by Current when the manifest has no
	// active revision yet.
	ErrNoCurrentRevision = errors.New("no current revision")

	// ErrInvalidPathSegment is wrapped when a manifest or key cannot be used
	// as a single URL path segment.
	ErrInvalidPathSegment = errors.New("invalid path segment")
)

// TransportError describes a failed call to the revision store. Network
// failures, non-2xx statuses and undecodable bodies are all reported this way;
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s: unexpected status code: %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }
