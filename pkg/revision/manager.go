// Package revision implements the revision lifecycle: upload a new artifact
// under a fresh key and make it current, list the known revisions, and
// activate an existing one.
package revision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/revctl/internal/logger"
	pkgerrors "github.com/glorpus-work/revctl/pkg/errors"
	"github.com/glorpus-work/revctl/pkg/hooks"
	"github.com/glorpus-work/revctl/pkg/store"
	"github.com/glorpus-work/revctl/pkg/tagging"
)

// Operation names passed to the Recorder.
const (
	OpUpload   = "upload"
	OpList     = "list"
	OpActivate = "activate"
)

// ErrMissingRevision is the cause carried by a MissingRevisionArgument outcome.
var ErrMissingRevision = errors.New("no revision given")

// Manager runs revision operations for a single manifest. It keeps no state
// between calls; everything mutable lives in the store.
type Manager struct {
	store    Store
	tagger   TagGenerator
	manifest string
	baseURL  string
	hooks    HookRunner
	recorder Recorder
	log      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithHooks runs lifecycle hooks around uploads and activations.
func WithHooks(h HookRunner) Option {
	return func(m *Manager) { m.hooks = h }
}

// WithRecorder reports every finished operation to r.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithLogger replaces the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithBaseURL exposes the store location to hooks.
func WithBaseURL(u string) Option {
	return func(m *Manager) { m.baseURL = u }
}

// NewManager creates a manager for manifest.
func NewManager(s Store, tagger TagGenerator, manifest string, opts ...Option) (*Manager, error) {
	if s == nil {
		return nil, pkgerrors.ConfigError(fmt.Errorf("revision store is not configured"))
	}
	if tagger == nil {
		return nil, pkgerrors.ConfigError(fmt.Errorf("tag generator is not configured"))
	}
	if manifest == "" {
		return nil, pkgerrors.ConfigError(pkgerrors.ErrManifestEmpty)
	}
	if manifest == "." || manifest == ".." {
		return nil, pkgerrors.ConfigError(fmt.Errorf("%w: %q", pkgerrors.ErrManifestInvalid, manifest))
	}

	m := &Manager{store: s, tagger: tagger, manifest: manifest}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.GetLogger()
	}
	m.log = m.log.With("manifest", manifest)
	return m, nil
}

// Manifest returns the manifest the manager operates on.
func (m *Manager) Manifest() string {
	return m.manifest
}

// Upload stores value under a freshly generated key and activates it.
//
// Activation is only attempted after the store accepted the revision. If
// activation fails the revision stays stored but is reported as a failed
// upload.
func (m *Manager) Upload(ctx context.Context, value string) (out Outcome) {
	defer m.record(OpUpload, time.Now(), &out)

	if err := m.runHook(hooks.PreUpload, ""); err != nil {
		return m.failed(KindUploadFailed, "", err)
	}

	key, err := m.tagger.CreateTag(ctx)
	if err != nil {
		return m.failed(KindUploadFailed, "", pkgerrors.Wrap(err, "failed to create revision tag"))
	}
	if err := tagging.Validate(key); err != nil {
		return m.failed(KindUploadFailed, key, err)
	}

	m.log.Debug("uploading revision", "revision", key, "bytes", len(value))
	if _, err := m.store.AddRevision(ctx, m.manifest, key, value); err != nil {
		return m.failed(KindUploadFailed, key, err)
	}

	if activated := m.activate(ctx, key); activated.Kind != KindActivationSucceeded {
		return m.failed(KindUploadFailed, key, pkgerrors.Wrapf(activated.Err, "revision %s stored but not activated", key))
	}

	if err := m.runHook(hooks.PostUpload, key); err != nil {
		m.log.Warn("post-upload hook failed", "revision", key, "error", err)
	}

	m.log.Info("revision uploaded", "revision", key)
	return Outcome{Kind: KindUploadSucceeded, Manifest: m.manifest, Key: key}
}

// List reads the revision history and the current pointer concurrently.
// Either read failing fails the whole listing.
func (m *Manager) List(ctx context.Context) (out Outcome) {
	defer m.record(OpList, time.Now(), &out)

	var (
		revisions []string
		current   string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revisions, err = m.store.Revisions(gctx, m.manifest)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = m.store.Current(gctx, m.manifest)
		if errors.Is(err, store.ErrNoCurrentRevision) {
			current = ""
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return m.failed(KindListFailed, "", err)
	}

	return Outcome{Kind: KindRevisionsListed, Manifest: m.manifest, Revisions: revisions, Current: current}
}

// Activate makes key the current revision. Every store failure is reported
// as RevisionNotFound; the store does not let us tell a missing key from a
// failed call.
func (m *Manager) Activate(ctx context.Context, key string) (out Outcome) {
	defer m.record(OpActivate, time.Now(), &out)
	return m.activate(ctx, key)
}

func (m *Manager) activate(ctx context.Context, key string) Outcome {
	if key == "" {
		return m.failed(KindMissingRevisionArgument, "", ErrMissingRevision)
	}

	m.log.Debug("activating revision", "revision", key)
	if err := m.store.Activate(ctx, m.manifest, key); err != nil {
		return m.failed(KindRevisionNotFound, key, err)
	}

	if err := m.runHook(hooks.PostActivate, key); err != nil {
		m.log.Warn("post-activate hook failed", "revision", key, "error", err)
	}

	m.log.Info("revision activated", "revision", key)
	return Outcome{Kind: KindActivationSucceeded, Manifest: m.manifest, Key: key}
}

func (m *Manager) failed(kind Kind, key string, err error) Outcome {
	m.log.Debug("operation failed", "outcome", kind.String(), "revision", key, "error", err)
	return Outcome{Kind: kind, Manifest: m.manifest, Key: key, Err: err}
}

func (m *Manager) runHook(hookType hooks.HookType, key string) error {
	if m.hooks == nil {
		return nil
	}
	return m.hooks.Execute(hookType, hooks.HookContext{
		Manifest: m.manifest,
		Revision: key,
		BaseURL:  m.baseURL,
	})
}

func (m *Manager) record(op string, start time.Time, out *Outcome) {
	if m.recorder != nil {
		m.recorder.RecordOperation(op, out.Kind.String(), time.Since(start))
	}
}
