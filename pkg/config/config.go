// Package config provides configuration management for revctl.
// It loads the YAML config file, applies REVCTL_ environment overrides
// (optionally seeded from a .env file) and validates the result. Missing
// files fall back to defaults so that a store URL and manifest given through
// the environment are enough to run.
package config

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/revctl/pkg/errors"
	"github.com/glorpus-work/revctl/pkg/fsutil"
	"github.com/glorpus-work/revctl/pkg/tagging"
)

// Config represents the application configuration.
type Config struct {
	// Remote revision store
	Store StoreConfig `yaml:"store"`

	// What gets deployed and how revisions are named
	Deploy DeployConfig `yaml:"deploy"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// StoreConfig describes how to reach the revision store.
type StoreConfig struct {
	BaseURL     string        `yaml:"base_url" env:"STORE_BASE_URL"`
	AuthHeader  string        `yaml:"auth_header,omitempty" env:"STORE_AUTH_HEADER"`
	Auth        *AuthConfig   `yaml:"auth,omitempty"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"STORE_HTTP_TIMEOUT"`
}

// DeployConfig describes the artifact and the revision naming.
type DeployConfig struct {
	Manifest   string         `yaml:"manifest" env:"DEPLOY_MANIFEST"`
	Tagging    string         `yaml:"tagging" env:"DEPLOY_TAGGING"`
	AppVersion string         `yaml:"app_version,omitempty" env:"DEPLOY_APP_VERSION"`
	Commit     string         `yaml:"commit,omitempty" env:"DEPLOY_COMMIT"`
	RepoDir    string         `yaml:"repo_dir,omitempty" env:"DEPLOY_REPO_DIR"`
	Artifact   ArtifactConfig `yaml:"artifact"`
	Hooks      HooksConfig    `yaml:"hooks,omitempty"`
}

// ArtifactConfig locates the uploaded value.
type ArtifactConfig struct {
	Path  string `yaml:"path" env:"DEPLOY_ARTIFACT_PATH"`
	Entry string `yaml:"entry,omitempty" env:"DEPLOY_ARTIFACT_ENTRY"`
}

// HooksConfig holds tengo script paths per hook type.
type HooksConfig struct {
	PreUpload    string `yaml:"pre_upload,omitempty" env:"DEPLOY_HOOKS_PRE_UPLOAD"`
	PostUpload   string `yaml:"post_upload,omitempty" env:"DEPLOY_HOOKS_POST_UPLOAD"`
	PostActivate string `yaml:"post_activate,omitempty" env:"DEPLOY_HOOKS_POST_ACTIVATE"`
}

// Settings represents general application settings.
type Settings struct {
	OutputFormat string `yaml:"output_format" env:"OUTPUT_FORMAT"` // text, json, yaml
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`         // error, warn, info, debug
	MetricsFile  string `yaml:"metrics_file,omitempty" env:"METRICS_FILE"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for store requests.
	DefaultHTTPTimeout = 30 * time.Second

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "REVCTL_"

	// DefaultEnvFile is read when present and no other file is given.
	DefaultEnvFile = ".env"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var (
	validFormats = map[string]bool{"text": true, "json": true, "yaml": true}
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			HTTPTimeout: DefaultHTTPTimeout,
		},
		Deploy: DeployConfig{
			Tagging:  tagging.StrategySHA,
			Artifact: ArtifactConfig{Path: "dist", Entry: "index.html"},
		},
		Settings: Settings{
			OutputFormat: "text",
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// EnvLookuper resolves REVCTL_ variables from the process environment first
// and envFile second. An empty envFile reads DefaultEnvFile if it exists.
func EnvLookuper(envFile string) (envconfig.Lookuper, error) {
	lookupers := []envconfig.Lookuper{envconfig.OsLookuper()}

	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	values, err := godotenv.Read(path)
	switch {
	case err == nil:
		lookupers = append(lookupers, envconfig.MapLookuper(values))
	case envFile == "" && os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(errors.ErrConfigEnv, "%s: %v", path, err)
	}

	return envconfig.PrefixLookuper(EnvPrefix, envconfig.MultiLookuper(lookupers...)), nil
}

// ApplyEnv overrides fields with the variables l resolves, then validates.
// A set variable always wins over the file, an unset one never clears it.
func (c *Config) ApplyEnv(ctx context.Context, l envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:           c,
		Lookuper:         l,
		DefaultOverwrite: true,
		DefaultNoInit:    true,
	}); err != nil {
		return errors.Wrap(errors.ErrConfigEnv, err.Error())
	}
	return c.Validate()
}

// Load reads path, applies environment overrides and validates the result.
func Load(ctx context.Context, path, envFile string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	l, err := EnvLookuper(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(ctx, l); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	// The file may hold credentials.
	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks the values that are present. Required values are checked
// by ValidateDeploy since `config` commands work without them.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateStore(c.Store); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}
	if err := validateDeploy(c.Deploy); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}
	if err := validateSettings(c.Settings); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}
	return nil
}

// ValidateDeploy checks that everything a store operation needs is set.
// Failures are configuration errors.
func (c *Config) ValidateDeploy() error {
	if c.Store.BaseURL == "" {
		return errors.ConfigError(errors.ErrBaseURLEmpty)
	}
	if c.Deploy.Manifest == "" {
		return errors.ConfigError(errors.ErrManifestEmpty)
	}
	if isDotSegment(c.Deploy.Manifest) {
		return errors.ConfigError(fmt.Errorf("%w: %q", errors.ErrManifestInvalid, c.Deploy.Manifest))
	}
	return nil
}

// isDotSegment reports whether s would be cleaned away as a URL path segment.
func isDotSegment(s string) bool {
	return s == "." || s == ".."
}

func validateStore(s StoreConfig) error {
	if s.BaseURL != "" {
		u, err := url.Parse(s.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errors.ErrBaseURLInvalid, s.BaseURL)
		}
	}
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if _, err := s.Authenticator(); err != nil {
		return err
	}
	return nil
}

func validateDeploy(d DeployConfig) error {
	if isDotSegment(d.Manifest) {
		return fmt.Errorf("%w: %q", errors.ErrManifestInvalid, d.Manifest)
	}
	if d.Tagging != "" && !tagging.IsKnown(d.Tagging) {
		return fmt.Errorf("%w: %q, must be one of: %s", tagging.ErrUnknownStrategy, d.Tagging, strings.Join(tagging.Strategies(), ", "))
	}
	return nil
}

func validateSettings(s Settings) error {
	if !validFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "revctl", "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Store.HTTPTimeout == 0 {
		c.Store.HTTPTimeout = defaults.Store.HTTPTimeout
	}
	if c.Deploy.Tagging == "" {
		c.Deploy.Tagging = defaults.Deploy.Tagging
	}
	if c.Deploy.Artifact.Path == "" {
		c.Deploy.Artifact = defaults.Deploy.Artifact
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
