// Package tagging produces the unique keys new revisions are stored under.
//
// A strategy is picked by name once at startup:
//
//	sha             <manifest>:<short git sha>
//	version-commit  <manifest>:<version>+<short git sha>
//	timestamp       <manifest>:<UTC yyyymmddhhmmss>
//	uuid            <manifest>:<random uuid>
package tagging

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Strategy names.
const (
	StrategySHA           = "sha"
	StrategyVersionCommit = "version-commit"
	StrategyTimestamp     = "timestamp"
	StrategyUUID          = "uuid"

	// DefaultStrategy is used when no strategy is configured.
	DefaultStrategy = StrategySHA

	shortSHALength  = 7
	timestampLayout = "20060102150405"
)

var (
	// ErrUnknownStrategy is returned by New for an unregistered name.
	ErrUnknownStrategy = errors.New("unknown tagging strategy")
	// ErrInvalidTag is returned when a generated tag is not usable as a store key.
	ErrInvalidTag = errors.New("invalid revision tag")
	// ErrMissingVersion is returned by the version-commit strategy without a version.
	ErrMissingVersion = errors.New("app version is required")
)

// Generator creates a fresh revision key per call.
type Generator interface {
	CreateTag(ctx context.Context) (string, error)
}

// CommitReader returns the commit the artifact was built from.
type CommitReader interface {
	HeadCommit(ctx context.Context) (string, error)
}

// Options carries the inputs every strategy may draw from.
type Options struct {
	Manifest   string
	AppVersion string
	RepoDir    string
	// Commits overrides the git CLI reader rooted at RepoDir.
	Commits CommitReader
	// Now overrides the clock of the timestamp strategy.
	Now func() time.Time
}

type factory func(Options) (Generator, error)

var registry = map[string]factory{
	StrategySHA:           newSHAGenerator,
	StrategyVersionCommit: newVersionCommitGenerator,
	StrategyTimestamp:     newTimestampGenerator,
	StrategyUUID:          newUUIDGenerator,
}

// Strategies returns the registered strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsKnown reports whether name is a registered strategy.
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// New builds the generator registered under name. An empty name selects DefaultStrategy.
func New(name string, opts Options) (Generator, error) {
	if name == "" {
		name = DefaultStrategy
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(Strategies(), ", "))
	}
	if opts.Commits == nil {
		opts.Commits = GitCommitReader{Dir: opts.RepoDir}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return f(opts)
}

// Validate checks that tag can be used verbatim as a URL path segment.
func Validate(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTag)
	}
	if tag == "." || tag == ".." {
		return fmt.Errorf("%w: %q is a dot segment", ErrInvalidTag, tag)
	}
	for _, r := range tag {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("/?#%\\", r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidTag, tag, r)
		}
	}
	return nil
}

func prefixed(manifest, suffix string) string {
	if manifest == "" {
		return suffix
	}
	return manifest + ":" + suffix
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}
