package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/revctl/internal/logger"
	"github.com/glorpus-work/revctl/internal/metrics"
	"github.com/glorpus-work/revctl/pkg/config"
	"github.com/glorpus-work/revctl/pkg/errors"
	"github.com/glorpus-work/revctl/pkg/hooks"
	"github.com/glorpus-work/revctl/pkg/report"
	"github.com/glorpus-work/revctl/pkg/revision"
	"github.com/glorpus-work/revctl/pkg/store"
	"github.com/glorpus-work/revctl/pkg/tagging"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
	Manifest     *string
	EnvFile      *string
)

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getConfigPath returns the --config path or the per-user default.
func getConfigPath() string {
	if path := flagValue(ConfigPath); path != "" {
		return path
	}
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path fails with ErrEmptyConfigPath when it is used
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return path
}

// loadConfig resolves the configuration file, the environment and the
// global flags, in increasing precedence, and sets up logging to match.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, getConfigPath(), flagValue(EnvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if format := flagValue(OutputFormat); format != "" {
		cfg.Settings.OutputFormat = strings.ToLower(format)
	}
	if manifest := flagValue(Manifest); manifest != "" {
		cfg.Deploy.Manifest = manifest
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFormat := logger.FormatText
	if cfg.Settings.OutputFormat == "json" {
		logFormat = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, logFormat)

	return cfg, nil
}

// session bundles what the store commands need for one invocation.
type session struct {
	cfg      *config.Config
	manager  *revision.Manager
	recorder *metrics.PrometheusRecorder
}

// newSession builds the store client, tagger, hooks and manager from cfg
// for the named command. Every failure here is a configuration error.
func newSession(cfg *config.Config, command string) (*session, error) {
	if err := cfg.ValidateDeploy(); err != nil {
		return nil, err
	}

	authenticator, err := cfg.Store.Authenticator()
	if err != nil {
		return nil, errors.ConfigError(err)
	}

	client, err := store.NewClient(&store.Config{
		BaseURL:   cfg.Store.BaseURL,
		Auth:      authenticator,
		Timeout:   cfg.Store.HTTPTimeout,
		UserAgent: "revctl/" + Version,
	})
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewPrometheusRecorder()
	client.SetRecorder(recorder)

	opts := tagging.Options{
		Manifest:   cfg.Deploy.Manifest,
		AppVersion: cfg.Deploy.AppVersion,
		RepoDir:    cfg.Deploy.RepoDir,
	}
	if cfg.Deploy.Commit != "" {
		opts.Commits = tagging.StaticCommit(cfg.Deploy.Commit)
	}
	tagger, err := tagging.New(cfg.Deploy.Tagging, opts)
	if err != nil {
		return nil, errors.ConfigError(err)
	}

	managerOpts := []revision.Option{
		revision.WithRecorder(recorder),
		revision.WithLogger(logger.With(logger.Fields{"command": command})),
		revision.WithBaseURL(cfg.Store.BaseURL),
	}

	executor := hooks.NewTengoExecutor()
	if err := hooks.LoadScripts(executor, map[hooks.HookType]string{
		hooks.PreUpload:    cfg.Deploy.Hooks.PreUpload,
		hooks.PostUpload:   cfg.Deploy.Hooks.PostUpload,
		hooks.PostActivate: cfg.Deploy.Hooks.PostActivate,
	}); err != nil {
		return nil, errors.ConfigError(err)
	}
	for _, hookType := range hooks.Types() {
		if executor.HasScript(hookType) {
			managerOpts = append(managerOpts, revision.WithHooks(executor))
			break
		}
	}

	manager, err := revision.NewManager(client, tagger, cfg.Deploy.Manifest, managerOpts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Session ready", logger.Fields{
		"base_url": cfg.Store.BaseURL,
		"manifest": cfg.Deploy.Manifest,
		"tagging":  cfg.Deploy.Tagging,
	})

	return &session{cfg: cfg, manager: manager, recorder: recorder}, nil
}

// finish writes the metrics textfile when one is configured. A write
// failure is logged and never changes the command's result.
func (s *session) finish() {
	path := s.cfg.Settings.MetricsFile
	if path == "" {
		return
	}
	if err := s.recorder.WriteTextfile(path); err != nil {
		logger.Warn("Failed to write metrics file", logger.Fields{"path": path, "error": err.Error()})
		return
	}
	logger.Debug("Metrics written", logger.Fields{"path": path})
}

// runOutcome runs one manager operation and renders its outcome to the
// command's output. A failed outcome is returned as its *report.Error.
func runOutcome(cmd *cobra.Command, op func(ctx context.Context, s *session) (revision.Outcome, error)) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	s, err := newSession(cfg, cmd.Name())
	if err != nil {
		return err
	}
	defer s.finish()

	out, err := op(ctx, s)
	if err != nil {
		return err
	}

	res, err := report.Classify(out)
	if err != nil {
		renderFailure(cmd.OutOrStdout(), cfg.Settings.OutputFormat, err)
		return err
	}
	return renderResult(cmd.OutOrStdout(), cfg.Settings.OutputFormat, res)
}
