package config

import (
	"github.com/glorpus-work/revctl/pkg/auth"
	"github.com/glorpus-work/revctl/pkg/errors"
)

// redacted replaces secrets in displayed configuration.
const redacted = "********"

// AuthConfigContainer defines the interface for authentication configuration types that can be converted to an Authenticator.
type AuthConfigContainer interface {
	ToAuthenticator() auth.Authenticator
}

// AuthConfig holds the structured alternatives to store.auth_header.
type AuthConfig struct {
	BasicAuth  *BasicAuth  `yaml:"basic,omitempty"`
	HeaderAuth *HeaderAuth `yaml:"header,omitempty"`
	BearerAuth *BearerAuth `yaml:"bearer,omitempty"`
}

// BasicAuth holds configuration for HTTP Basic Authentication.
type BasicAuth struct {
	Username string `yaml:"username" env:"STORE_AUTH_BASIC_USERNAME"`
	Password string `yaml:"password" env:"STORE_AUTH_BASIC_PASSWORD"`
}

// HeaderAuth holds configuration for custom header-based authentication.
type HeaderAuth struct {
	Headers map[string]string `yaml:"headers"`
}

// BearerAuth holds configuration for Bearer token authentication.
type BearerAuth struct {
	Token string `yaml:"token" env:"STORE_AUTH_BEARER_TOKEN"`
}

// ToAuthenticator converts the BasicAuth configuration to an Authenticator.
func (b *BasicAuth) ToAuthenticator() auth.Authenticator {
	return &auth.BasicAuth{
		Username: b.Username,
		Password: b.Password,
	}
}

// ToAuthenticator converts the HeaderAuth configuration to an Authenticator.
func (h *HeaderAuth) ToAuthenticator() auth.Authenticator {
	return &auth.HeaderAuth{
		Headers: h.Headers,
	}
}

// ToAuthenticator converts the BearerAuth configuration to an Authenticator.
func (b *BearerAuth) ToAuthenticator() auth.Authenticator {
	return &auth.BearerAuth{
		Token: b.Token,
	}
}

// Authenticator returns the authenticator for store requests, or nil when
// none is configured. At most one of auth_header and the auth block may be set.
func (s StoreConfig) Authenticator() (auth.Authenticator, error) {
	var containers []AuthConfigContainer
	if s.Auth != nil {
		if s.Auth.BasicAuth != nil {
			containers = append(containers, s.Auth.BasicAuth)
		}
		if s.Auth.HeaderAuth != nil {
			containers = append(containers, s.Auth.HeaderAuth)
		}
		if s.Auth.BearerAuth != nil {
			containers = append(containers, s.Auth.BearerAuth)
		}
	}

	switch {
	case s.AuthHeader != "" && len(containers) > 0, len(containers) > 1:
		return nil, errors.ErrMultipleAuthSettings
	case s.AuthHeader != "":
		return auth.RawAuth{Header: s.AuthHeader}, nil
	case len(containers) == 1:
		return containers[0].ToAuthenticator(), nil
	default:
		return nil, nil
	}
}

// Redacted returns a copy of c with every credential masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Store.AuthHeader != "" {
		out.Store.AuthHeader = redacted
	}
	if c.Store.Auth == nil {
		return &out
	}

	a := &AuthConfig{}
	if b := c.Store.Auth.BasicAuth; b != nil {
		a.BasicAuth = &BasicAuth{Username: b.Username, Password: redacted}
	}
	if h := c.Store.Auth.HeaderAuth; h != nil {
		headers := make(map[string]string, len(h.Headers))
		for k := range h.Headers {
			headers[k] = redacted
		}
		a.HeaderAuth = &HeaderAuth{Headers: headers}
	}
	if c.Store.Auth.BearerAuth != nil {
		a.BearerAuth = &BearerAuth{Token: redacted}
	}
	out.Store.Auth = a
	return &out
}
