package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("boom")

	assert.NoError(t, Wrapf(nil, "ignored %d", 1))

	err := Wrapf(base, "manifest %q revision %s", "app", "app:abc")
	assert.Equal(t, `manifest "app" revision app:abc: boom`, err.Error())
	assert.ErrorIs(t, err, base)
}

func TestConfigError(t *testing.T) {
	assert.NoError(t, ConfigError(nil))

	err := ConfigError(ErrBaseURLEmpty)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrBaseURLEmpty)
	assert.Contains(t, err.Error(), "configuration error")
}

func TestDetailHelpers(t *testing.T) {
	err := ErrInvalidOutputFormatWithDetails("xml")
	assert.ErrorIs(t, err, ErrInvalidOutputFormat)
	assert.Contains(t, err.Error(), "'xml'")

	err = ErrInvalidLogLevelWithDetails("trace")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
	assert.Contains(t, err.Error(), "'trace'")
}
