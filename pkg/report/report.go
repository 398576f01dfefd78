// Package report turns revision outcomes into results and user-facing errors.
// It does no I/O; rendering is left to the caller.
package report

import (
	"errors"
	"fmt"

	"github.com/glorpus-work/revctl/pkg/revision"
)

// Sentinels matched by the errors Classify returns.
var (
	ErrUploadFailed     = errors.New("upload failed")
	ErrListFailed       = errors.New("listing revisions failed")
	ErrRevisionNotFound = errors.New("revision not found")
	ErrMissingRevision  = errors.New("missing revision")
	ErrUnknownOutcome   = errors.New("unknown outcome")
)

const (
	listHint     = "Run `revctl list` to investigate."
	revisionHint = "Run `revctl list` and pass a revision listed there to `revctl activate`.\n\nExample:\n\n  revctl activate --revision <manifest>:<sha>"
)

// Entry is one revision of a listing.
type Entry struct {
	Key     string `json:"key" yaml:"key"`
	Current bool   `json:"current" yaml:"current"`
}

// Result is a successful outcome.
type Result struct {
	Kind      string  `json:"outcome" yaml:"outcome"`
	Manifest  string  `json:"manifest" yaml:"manifest"`
	Key       string  `json:"revision,omitempty" yaml:"revision,omitempty"`
	Revisions []Entry `json:"revisions,omitempty" yaml:"revisions,omitempty"`
	Message   string  `json:"message" yaml:"message"`
	Hint      string  `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Current returns the key of the current revision in a listing.
func (r *Result) Current() (string, bool) {
	for _, e := range r.Revisions {
		if e.Current {
			return e.Key, true
		}
	}
	return "", false
}

// Error is a failed outcome with guidance for the user.
type Error struct {
	Kind       string `json:"outcome" yaml:"outcome"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Err        error  `json:"-" yaml:"-"`

	sentinel error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps an outcome to a Result or an *Error.
func Classify(out revision.Outcome) (*Result, error) {
	switch out.Kind {
	case revision.KindUploadSucceeded:
		return &Result{
			Kind:     out.Kind.String(),
			Manifest: out.Manifest,
			Key:      out.Key,
			Message:  "Upload successful!",
		}, nil

	case revision.KindActivationSucceeded:
		return &Result{
			Kind:     out.Kind.String(),
			Manifest: out.Manifest,
			Key:      out.Key,
			Message:  "Activation successful!",
			Hint:     "Run `revctl list` to see which revision is current.",
		}, nil

	case revision.KindRevisionsListed:
		entries := make([]Entry, 0, len(out.Revisions))
		for _, key := range out.Revisions {
			entries = append(entries, Entry{Key: key, Current: out.Current != "" && key == out.Current})
		}
		return &Result{
			Kind:      out.Kind.String(),
			Manifest:  out.Manifest,
			Revisions: entries,
			Message:   "Last uploaded revisions:",
		}, nil

	case revision.KindUploadFailed:
		return nil, newError(out, ErrUploadFailed, "Upload failed! Did you try to upload an already uploaded revision?", listHint)

	case revision.KindListFailed:
		return nil, newError(out, ErrListFailed, "Could not list revisions! Is the revision store reachable?", "Check store.base_url and store.auth_header, then retry.")

	case revision.KindRevisionNotFound:
		return nil, newError(out, ErrRevisionNotFound, "Passed revision could not be found in manifest!", revisionHint)

	case revision.KindMissingRevisionArgument:
		return nil, newError(out, ErrMissingRevision, "Please pass a revision to `activate`.", revisionHint)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutcome, out.Kind)
	}
}

func newError(out revision.Outcome, sentinel error, message, suggestion string) *Error {
	return &Error{
		Kind:       out.Kind.String(),
		Message:    message,
		Suggestion: suggestion,
		Err:        out.Err,
		sentinel:   sentinel,
	}
}
