package config

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/revctl/pkg/auth"
	"github.com/glorpus-work/revctl/pkg/errors"
)

func TestStoreConfig_Authenticator(t *testing.T) {
	tests := []struct {
		name       string
		store      StoreConfig
		wantType   auth.Type
		wantHeader string
		wantErr    error
	}{
		{
			name:  "no auth",
			store: StoreConfig{},
		},
		{
			name:       "raw header",
			store:      StoreConfig{AuthHeader: "Token abc"},
			wantType:   auth.RawAuthType,
			wantHeader: "Token abc",
		},
		{
			name:       "bearer",
			store:      StoreConfig{Auth: &AuthConfig{BearerAuth: &BearerAuth{Token: "xyz"}}},
			wantType:   auth.BearerAuthType,
			wantHeader: "Bearer xyz",
		},
		{
			name:       "basic",
			store:      StoreConfig{Auth: &AuthConfig{BasicAuth: &BasicAuth{Username: "user", Password: "pass"}}},
			wantType:   auth.BasicAuthType,
			wantHeader: "Basic dXNlcjpwYXNz",
		},
		{
			name:     "custom headers",
			store:    StoreConfig{Auth: &AuthConfig{HeaderAuth: &HeaderAuth{Headers: map[string]string{"X-Api-Key": "k"}}}},
			wantType: auth.HeaderAuthType,
		},
		{
			name:  "empty auth block",
			store: StoreConfig{Auth: &AuthConfig{}},
		},
		{
			name: "header and block",
			store: StoreConfig{
				AuthHeader: "Token abc",
				Auth:       &AuthConfig{BasicAuth: &BasicAuth{Username: "u"}},
			},
			wantErr: errors.ErrMultipleAuthSettings,
		},
		{
			name: "two blocks",
			store: StoreConfig{Auth: &AuthConfig{
				BasicAuth:  &BasicAuth{Username: "u"},
				BearerAuth: &BearerAuth{Token: "t"},
			}},
			wantErr: errors.ErrMultipleAuthSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.store.Authenticator()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantType == "" {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			assert.Equal(t, tt.wantType, a.Type())

			req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
			require.NoError(t, a.Apply(req))
			assert.Equal(t, tt.wantHeader, req.Header.Get("Authorization"))
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.AuthHeader = "Token secret"
	cfg.Store.Auth = nil

	r := cfg.Redacted()
	assert.Equal(t, redacted, r.Store.AuthHeader)
	assert.Equal(t, "Token secret", cfg.Store.AuthHeader, "original untouched")

	cfg.Store.AuthHeader = ""
	cfg.Store.Auth = &AuthConfig{
		BasicAuth:  &BasicAuth{Username: "user", Password: "pass"},
		HeaderAuth: &HeaderAuth{Headers: map[string]string{"X-Api-Key": "k"}},
		BearerAuth: &BearerAuth{Token: "t"},
	}
	r = cfg.Redacted()
	assert.Empty(t, r.Store.AuthHeader)
	assert.Equal(t, "user", r.Store.Auth.BasicAuth.Username)
	assert.Equal(t, redacted, r.Store.Auth.BasicAuth.Password)
	assert.Equal(t, redacted, r.Store.Auth.HeaderAuth.Headers["X-Api-Key"])
	assert.Equal(t, redacted, r.Store.Auth.BearerAuth.Token)
	assert.Equal(t, "pass", cfg.Store.Auth.BasicAuth.Password)
	assert.Equal(t, "k", cfg.Store.Auth.HeaderAuth.Headers["X-Api-Key"])

	data, err := r.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password: pass")
}
