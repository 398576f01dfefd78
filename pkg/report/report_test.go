package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/revctl/pkg/revision"
	"github.com/glorpus-work/revctl/pkg/store"
)

func TestClassify_Success(t *testing.T) {
	res, err := Classify(revision.Outcome{Kind: revision.KindUploadSucceeded, Manifest: "app", Key: "deadbeef"})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", res.Key)
	assert.Equal(t, "upload_succeeded", res.Kind)
	assert.Equal(t, "Upload successful!", res.Message)

	res, err = Classify(revision.Outcome{Kind: revision.KindActivationSucceeded, Manifest: "app", Key: "app:abc"})
	require.NoError(t, err)
	assert.Equal(t, "app:abc", res.Key)
	assert.Contains(t, res.Hint, "revctl list")
}

func TestClassify_ListMarksCurrent(t *testing.T) {
	res, err := Classify(revision.Outcome{
		Kind:      revision.KindRevisionsListed,
		Manifest:  "app",
		Revisions: []string{"a", "b", "c"},
		Current:   "b",
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "a"}, {Key: "b", Current: true}, {Key: "c"}}, res.Revisions)

	current, ok := res.Current()
	assert.True(t, ok)
	assert.Equal(t, "b", current)
}

func TestClassify_ListWithoutCurrent(t *testing.T) {
	res, err := Classify(revision.Outcome{Kind: revision.KindRevisionsListed, Revisions: []string{"a", ""}})
	require.NoError(t, err)
	for _, e := range res.Revisions {
		assert.False(t, e.Current)
	}
	_, ok := res.Current()
	assert.False(t, ok)

	res, err = Classify(revision.Outcome{Kind: revision.KindRevisionsListed})
	require.NoError(t, err)
	assert.NotNil(t, res.Revisions)
	assert.Empty(t, res.Revisions)
}

func TestClassify_Failures(t *testing.T) {
	cause := &store.TransportError{Op: "activate", Method: "PUT", URL: "http://store/app", StatusCode: 404}

	tests := []struct {
		kind       revision.Kind
		sentinel   error
		message    string
		suggestion string
	}{
		{revision.KindUploadFailed, ErrUploadFailed, "already uploaded revision", "revctl list"},
		{revision.KindListFailed, ErrListFailed, "Could not list revisions", "store.base_url"},
		{revision.KindRevisionNotFound, ErrRevisionNotFound, "could not be found in manifest", "revctl activate --revision <manifest>:<sha>"},
		{revision.KindMissingRevisionArgument, ErrMissingRevision, "pass a revision", "revctl activate --revision <manifest>:<sha>"},
	}

	sentinels := []error{ErrUploadFailed, ErrListFailed, ErrRevisionNotFound, ErrMissingRevision}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			res, err := Classify(revision.Outcome{Kind: tt.kind, Manifest: "app", Err: cause})
			assert.Nil(t, res)
			require.Error(t, err)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.kind.String(), rerr.Kind)
			assert.Contains(t, rerr.Message, tt.message)
			assert.Contains(t, rerr.Suggestion, tt.suggestion)

			for _, s := range sentinels {
				assert.Equal(t, s == tt.sentinel, errors.Is(err, s), "sentinel %v", s)
			}
			assert.ErrorIs(t, err, store.ErrTransport)
		})
	}
}

func TestClassify_MessagesAreDistinct(t *testing.T) {
	_, notFound := Classify(revision.Outcome{Kind: revision.KindRevisionNotFound})
	_, missing := Classify(revision.Outcome{Kind: revision.KindMissingRevisionArgument})
	assert.NotEqual(t, notFound.Error(), missing.Error())
}

func TestClassify_Unknown(t *testing.T) {
	_, err := Classify(revision.Outcome{})
	assert.ErrorIs(t, err, ErrUnknownOutcome)
}
