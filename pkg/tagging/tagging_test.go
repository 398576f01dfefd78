package tagging

import (
	"context"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSHA = "deadbeefcafe0123456789abcdef0123456789ab"

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		opts     Options
		wantErr  error
	}{
		{name: "default strategy", strategy: "", opts: Options{Manifest: "app"}},
		{name: "sha", strategy: StrategySHA, opts: Options{Manifest: "app"}},
		{name: "timestamp", strategy: StrategyTimestamp},
		{name: "uuid", strategy: StrategyUUID},
		{name: "version-commit", strategy: StrategyVersionCommit, opts: Options{AppVersion: "1.2.3"}},
		{name: "version-commit without version", strategy: StrategyVersionCommit, wantErr: ErrMissingVersion},
		{name: "unknown", strategy: "git-describe", wantErr: ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.strategy, tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}

func TestNew_InvalidVersion(t *testing.T) {
	_, err := New(StrategyVersionCommit, Options{AppVersion: "not a version"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid app version")
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, []string{"sha", "timestamp", "uuid", "version-commit"}, Strategies())
	assert.True(t, IsKnown("uuid"))
	assert.False(t, IsKnown("content-hash"))
}

func TestCreateTag(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 8, 30, 5, 0, time.FixedZone("CEST", 2*60*60))

	tests := []struct {
		name     string
		strategy string
		opts     Options
		want     string
	}{
		{
			name:     "sha with manifest",
			strategy: StrategySHA,
			opts:     Options{Manifest: "app", Commits: StaticCommit(testSHA)},
			want:     "app:deadbee",
		},
		{
			name:     "sha without manifest",
			strategy: StrategySHA,
			opts:     Options{Commits: StaticCommit("abc")},
			want:     "abc",
		},
		{
			name:     "version-commit",
			strategy: StrategyVersionCommit,
			opts:     Options{Manifest: "app", AppVersion: "v1.4", Commits: StaticCommit(testSHA)},
			want:     "app:1.4.0+deadbee",
		},
		{
			name:     "version-commit keeps prerelease, drops metadata",
			strategy: StrategyVersionCommit,
			opts:     Options{Manifest: "app", AppVersion: "2.0.0-beta.1+build.7", Commits: StaticCommit(testSHA)},
			want:     "app:2.0.0-beta.1+deadbee",
		},
		{
			name:     "timestamp is UTC",
			strategy: StrategyTimestamp,
			opts:     Options{Manifest: "app", Now: func() time.Time { return fixed }},
			want:     "app:20261017063005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.strategy, tt.opts)
			require.NoError(t, err)

			tag, err := g.CreateTag(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, tag)
		})
	}
}

func TestCreateTag_UUIDIsUnique(t *testing.T) {
	g, err := New(StrategyUUID, Options{Manifest: "app"})
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^app:[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	seen := make(map[string]bool)
	for range 50 {
		tag, err := g.CreateTag(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, pattern, tag)
		assert.False(t, seen[tag], "duplicate tag %s", tag)
		seen[tag] = true
	}
}

func TestCreateTag_CommitFailure(t *testing.T) {
	g, err := New(StrategySHA, Options{Manifest: "app", Commits: StaticCommit("")})
	require.NoError(t, err)

	_, err = g.CreateTag(context.Background())
	assert.ErrorIs(t, err, ErrNoCommit)
}

func TestCreateTag_RejectsUnsafeCommit(t *testing.T) {
	g, err := New(StrategySHA, Options{Manifest: "app", Commits: StaticCommit("a/b")})
	require.NoError(t, err)

	_, err = g.CreateTag(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestValidate(t *testing.T) {
	valid := []string{"...", "app:deadbee", "app:1.2.3+deadbee", "20261017063005", "app:2.0.0-beta.1+abc"}
	for _, tag := range valid {
		assert.NoError(t, Validate(tag), tag)
	}

	invalid := []string{"", ".", "..", "app/x", "app?x", "app#x", "app%2F", "app x", "app\tx", `app\x`}
	for _, tag := range invalid {
		assert.ErrorIs(t, Validate(tag), ErrInvalidTag, tag)
	}
}

func TestGitCommitReader(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	_, err := GitCommitReader{Dir: dir}.HeadCommit(context.Background())
	assert.ErrorIs(t, err, ErrNoCommit, "not a repository yet")

	git("init", "-q")
	git("commit", "-q", "--allow-empty", "-m", "initial")

	sha, err := GitCommitReader{Dir: dir}.HeadCommit(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{40,64}$`, sha)
}
