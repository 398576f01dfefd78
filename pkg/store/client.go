// Package store is the HTTP client for the remote revision store.
//
// The store keeps, per manifest, a history of immutable revisions and a
// pointer to the current one:
//
//	GET /{manifest}                    -> {"revision": "<current key>"}
//	PUT /{manifest}                    <- {"revision": "<key>"}
//	GET /{manifest}/revisions          -> ["<key>", ...]
//	PUT /{manifest}/revisions/{key}    <- {"value": "<artifact>"}
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/glorpus-work/revctl/internal/logger"
	"github.com/glorpus-work/revctl/pkg/auth"
	pkgerrors "github.com/glorpus-work/revctl/pkg/errors"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "revctl/1.0"

// Config is the fixed connection configuration of a Client.
type Config struct {
	BaseURL   string
	Auth      auth.Authenticator
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// RequestRecorder observes every store request.
type RequestRecorder interface {
	RecordStoreRequest(method string, success bool, duration time.Duration)
}

// Client performs revision store calls. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	auth      auth.Authenticator
	client    *http.Client
	userAgent string
	recorder  RequestRecorder
}

// NewClient creates a client for the store at cfg.BaseURL.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, pkgerrors.ConfigError(fmt.Errorf("store client requires a configuration"))
	}
	if cfg.BaseURL == "" {
		return nil, pkgerrors.ConfigError(pkgerrors.ErrBaseURLEmpty)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, pkgerrors.ConfigError(pkgerrors.Wrapf(pkgerrors.ErrBaseURLInvalid, "%q", cfg.BaseURL))
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:   base,
		auth:      cfg.Auth,
		client:    httpClient,
		userAgent: userAgent,
	}, nil
}

// SetRecorder attaches a request recorder.
func (c *Client) SetRecorder(r RequestRecorder) {
	c.recorder = r
}

// Current returns the key of the active revision of manifest.
// ErrNoCurrentRevision is returned when none has been activated yet.
func (c *Client) Current(ctx context.Context, manifest string) (string, error) {
	const op = "get current revision"
	endpoint, err := c.endpoint(op, http.MethodGet, manifest)
	if err != nil {
		return "", err
	}
	body, err := c.send(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.StatusCode == http.StatusNotFound {
			return "", ErrNoCurrentRevision
		}
		return "", err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", ErrNoCurrentRevision
	}

	var resp struct {
		Revision *string `json:"revision"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", c.decodeError(op, http.MethodGet, endpoint, err)
	}
	if resp.Revision == nil || *resp.Revision == "" {
		return "", ErrNoCurrentRevision
	}
	return *resp.Revision, nil
}

// AddRevision stores value under key. The store rejects keys it already
// holds; the rejection surfaces as a TransportError like any other failure.
func (c *Client) AddRevision(ctx context.Context, manifest, key, value string) (json.RawMessage, error) {
	payload := struct {
		Value string `json:"value"`
	}{Value: value}

	const op = "add revision"
	endpoint, err := c.endpoint(op, http.MethodPut, manifest, "revisions", key)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, op, http.MethodPut, endpoint, payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Revisions lists the revision keys known for manifest, in store order.
func (c *Client) Revisions(ctx context.Context, manifest string) ([]string, error) {
	const op = "list revisions"
	endpoint, err := c.endpoint(op, http.MethodGet, manifest, "revisions")
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []string{}, nil
	}

	var keys []string
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, c.decodeError(op, http.MethodGet, endpoint, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Activate points the current revision of manifest at key.
func (c *Client) Activate(ctx context.Context, manifest, key string) error {
	payload := struct {
		Revision string `json:"revision"`
	}{Revision: key}

	const op = "activate revision"
	endpoint, err := c.endpoint(op, http.MethodPut, manifest)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, op, http.MethodPut, endpoint, payload)
	return err
}

// endpoint joins escaped path segments onto the base URL. JoinPath cleans
// dot segments, so "", "." and ".." are refused before any request is made.
func (c *Client) endpoint(op, method string, segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", &TransportError{
				Op:     op,
				Method: method,
				URL:    c.baseURL.String(),
				Err:    fmt.Errorf("%w: %q", ErrInvalidPathSegment, s),
			}
		}
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.JoinPath(escaped...).String(), nil
}

func (c *Client) send(ctx context.Context, op, method, endpoint string, payload any) (body []byte, err error) {
	start := time.Now()
	defer func() {
		if c.recorder != nil {
			c.recorder.RecordStoreRequest(method, err == nil, time.Since(start))
		}
	}()

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Op: op, Method: method, URL: endpoint, Err: pkgerrors.Wrap(err, "failed to encode request body")}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: endpoint, Err: pkgerrors.Wrap(err, "failed to create request")}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return nil, &TransportError{Op: op, Method: method, URL: endpoint, Err: pkgerrors.Wrap(err, "failed to apply authentication")}
		}
	}

	logger.Debug("store request", logger.Fields{"op": op, "method": method, "url": endpoint})

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Method: method, URL: endpoint, Err: pkgerrors.Wrap(err, "failed to read response body")}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			Op:         op,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", http.StatusText(resp.StatusCode)),
		}
	}

	return data, nil
}

func (c *Client) decodeError(op, method, endpoint string, err error) error {
	return &TransportError{Op: op, Method: method, URL: endpoint, Err: pkgerrors.Wrap(err, "failed to decode response body")}
}
