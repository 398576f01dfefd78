//go:generate mockgen -destination=./mocks/revision.go . Store,TagGenerator,HookRunner,Recorder

package revision

import (
	"context"
	"encoding/json"
	"time"

	"github.com/glorpus-work/revctl/pkg/hooks"
)

// Store is the subset of the revision store client used by the manager.
type Store interface {
	Current(ctx context.Context, manifest string) (string, error)
	AddRevision(ctx context.Context, manifest, key, value string) (json.RawMessage, error)
	Revisions(ctx context.Context, manifest string) ([]string, error)
	Activate(ctx context.Context, manifest, key string) error
}

// TagGenerator produces a unique key for each upload.
type TagGenerator interface {
	CreateTag(ctx context.Context) (string, error)
}

// HookRunner runs lifecycle hooks around uploads and activations.
type HookRunner interface {
	Execute(hookType hooks.HookType, ctx hooks.HookContext) error
}

// Recorder observes completed operations.
type Recorder interface {
	RecordOperation(operation string, outcome string, duration time.Duration)
}

// Kind classifies the result of a manager operation.
type Kind int

// Outcome kinds.
const (
	KindUnknown Kind = iota
	KindUploadSucceeded
	KindUploadFailed
	KindRevisionsListed
	KindListFailed
	KindActivationSucceeded
	KindRevisionNotFound
	KindMissingRevisionArgument
)

var kindNames = map[Kind]string{
	KindUnknown:                 "unknown",
	KindUploadSucceeded:         "upload_succeeded",
	KindUploadFailed:            "upload_failed",
	KindRevisionsListed:         "revisions_listed",
	KindListFailed:              "list_failed",
	KindActivationSucceeded:     "activation_succeeded",
	KindRevisionNotFound:        "revision_not_found",
	KindMissingRevisionArgument: "missing_revision_argument",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Succeeded reports whether k is a success kind.
func (k Kind) Succeeded() bool {
	return k == KindUploadSucceeded || k == KindRevisionsListed || k == KindActivationSucceeded
}

// Outcome is the result of Upload, List or Activate. Failures carry the
// underlying cause in Err; store errors never escape any other way.
type Outcome struct {
	Kind      Kind
	Manifest  string
	Key       string
	Revisions []string
	Current   string
	Err       error
}
