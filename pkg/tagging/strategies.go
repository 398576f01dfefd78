package tagging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-version"
)

type shaGenerator struct {
	manifest string
	commits  CommitReader
}

func newSHAGenerator(opts Options) (Generator, error) {
	return &shaGenerator{manifest: opts.Manifest, commits: opts.Commits}, nil
}

func (g *shaGenerator) CreateTag(ctx context.Context) (string, error) {
	sha, err := g.commits.HeadCommit(ctx)
	if err != nil {
		return "", err
	}
	tag := prefixed(g.manifest, shortSHA(sha))
	return tag, Validate(tag)
}

type versionCommitGenerator struct {
	manifest string
	version  *version.Version
	commits  CommitReader
}

func newVersionCommitGenerator(opts Options) (Generator, error) {
	if opts.AppVersion == "" {
		return nil, ErrMissingVersion
	}
	v, err := version.NewVersion(opts.AppVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid app version %q: %w", opts.AppVersion, err)
	}
	return &versionCommitGenerator{manifest: opts.Manifest, version: v, commits: opts.Commits}, nil
}

// CreateTag drops any build metadata of the configured version; the commit
// takes its place.
func (g *versionCommitGenerator) CreateTag(ctx context.Context) (string, error) {
	sha, err := g.commits.HeadCommit(ctx)
	if err != nil {
		return "", err
	}
	base := g.version.Core().String()
	if pre := g.version.Prerelease(); pre != "" {
		base += "-" + pre
	}
	tag := prefixed(g.manifest, base+"+"+shortSHA(sha))
	return tag, Validate(tag)
}

type timestampGenerator struct {
	manifest string
	now      func() time.Time
}

func newTimestampGenerator(opts Options) (Generator, error) {
	return &timestampGenerator{manifest: opts.Manifest, now: opts.Now}, nil
}

func (g *timestampGenerator) CreateTag(_ context.Context) (string, error) {
	tag := prefixed(g.manifest, g.now().UTC().Format(timestampLayout))
	return tag, Validate(tag)
}

type uuidGenerator struct {
	manifest string
}

func newUUIDGenerator(opts Options) (Generator, error) {
	return &uuidGenerator{manifest: opts.Manifest}, nil
}

func (g *uuidGenerator) CreateTag(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	tag := prefixed(g.manifest, id.String())
	return tag, Validate(tag)
}
