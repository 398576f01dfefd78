package tagging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCommit is returned when the HEAD commit cannot be determined.
var ErrNoCommit = errors.New("cannot determine HEAD commit")

// GitCommitReader asks the git CLI for the HEAD commit of the repository at Dir.
type GitCommitReader struct {
	Dir string
}

// HeadCommit runs `git rev-parse HEAD`.
func (g GitCommitReader) HeadCommit(ctx context.Context) (string, error) {
	args := []string{"rev-parse", "HEAD"}
	if g.Dir != "" {
		args = append([]string{"-C", g.Dir}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %w: %s", ErrNoCommit, err, strings.TrimSpace(stderr.String()))
	}

	sha := strings.TrimSpace(stdout.String())
	if sha == "" {
		return "", ErrNoCommit
	}
	return sha, nil
}

// StaticCommit is a CommitReader returning a fixed commit, e.g. one supplied by CI.
type StaticCommit string

// HeadCommit returns the commit itself.
func (s StaticCommit) HeadCommit(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoCommit
	}
	return string(s), nil
}
