// Package auth provides authentication support for revision store requests.
package auth

import "net/http"

// Authenticator sets the credentials of one revision store request.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// RawAuth sends a preformatted Authorization header value as is,
// e.g. "Token abc" or "Bearer abc".
type RawAuth struct {
	Header string
}

// BasicAuth is the store.auth.basic setting.
type BasicAuth struct {
	Username string
	Password string
}

// HeaderAuth sets every configured header as given, for stores behind a
// proxy that expects its own header.
type HeaderAuth struct {
	Headers map[string]string
}

// BearerAuth is the store.auth.bearer setting.
type BearerAuth struct {
	Token string
}

// Type names the credential kind, as shown by `config show`.
type Type string

// Credential kinds.
const (
	RawAuthType    Type = "raw"
	BasicAuthType  Type = "basic"
	HeaderAuthType Type = "header"
	BearerAuthType Type = "bearer"
)

// Apply sets the Authorization header verbatim.
func (r RawAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", r.Header)
	return nil
}

// Type returns RawAuthType.
func (r RawAuth) Type() Type { return RawAuthType }

// Apply sets the Basic Authorization header.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// Apply sets the configured headers, replacing any previous value.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns HeaderAuthType.
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// Apply sets "Authorization: Bearer <token>".
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }
