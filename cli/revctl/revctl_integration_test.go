//go:build integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/revctl/internal/logger"
	"github.com/glorpus-work/revctl/pkg/report"
	"github.com/glorpus-work/revctl/test/testutil"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := executeRoot(t, "version")
	require.NoError(t, err, "version command should not return an error")
	assert.Contains(t, output, "revctl version", "version output should contain 'revctl version'")
}

func TestHelpCommand(t *testing.T) {
	output, err := executeRoot(t, "help")
	require.NoError(t, err, "help command should not return an error")
	assert.Contains(t, output, "revctl uploads built frontends to a revision store")
	assert.Contains(t, output, "Available Commands")
	for _, name := range []string{"upload", "list", "activate", "config", "hook"} {
		assert.Contains(t, output, name)
	}
}

// TestDeployLifecycle uploads two builds, rolls back and lists, the way a
// pipeline followed by an operator would.
func TestDeployLifecycle(t *testing.T) {
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)

	const authHeader = "Token integration"
	srv := testutil.NewStoreServer(t, authHeader)

	dir := t.TempDir()
	envFile := filepath.Join(dir, "ci.env")
	require.NoError(t, os.WriteFile(envFile, []byte(fmt.Sprintf(
		"REVCTL_STORE_BASE_URL=%s\nREVCTL_STORE_AUTH_HEADER=%q\nREVCTL_DEPLOY_MANIFEST=frontend\n",
		srv.URL, authHeader,
	)), 0o600))

	build := func(commit, body string) string {
		page := filepath.Join(dir, commit+".html")
		require.NoError(t, os.WriteFile(page, []byte(body), 0o644))
		return page
	}
	global := []string{"--config", filepath.Join(dir, "config.yaml"), "--env-file", envFile}

	t.Setenv("REVCTL_DEPLOY_COMMIT", "1111111aaaa")
	_, err := executeRoot(t, append([]string{"upload", "--artifact", build("one", "<h1>one</h1>")}, global...)...)
	require.NoError(t, err)

	t.Setenv("REVCTL_DEPLOY_COMMIT", "2222222bbbb")
	_, err = executeRoot(t, append([]string{"upload", "--artifact", build("two", "<h1>two</h1>")}, global...)...)
	require.NoError(t, err)
	assert.Equal(t, "frontend:2222222", srv.Current("frontend"))

	_, err = executeRoot(t, append([]string{"activate", "frontend:1111111"}, global...)...)
	require.NoError(t, err)
	assert.Equal(t, "frontend:1111111", srv.Current("frontend"))

	output, err := executeRoot(t, append([]string{"list"}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "| => frontend:1111111\n|    frontend:2222222\n")

	_, err = executeRoot(t, append([]string{"activate", "frontend:3333333"}, global...)...)
	assert.ErrorIs(t, err, report.ErrRevisionNotFound)
	assert.Equal(t, "frontend:1111111", srv.Current("frontend"))
}
