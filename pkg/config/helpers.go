package config

import (
	"fmt"
	"sort"
	"time"
)

// field binds a dotted configuration key to its value in a Config.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error { *ptr(c) = v; return nil },
	}
}

var fields = map[string]field{
	"store.base_url": stringField(func(c *Config) *string { return &c.Store.BaseURL }),
	"store.http_timeout": {
		get: func(c *Config) string { return c.Store.HTTPTimeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration for store.http_timeout: %s", v)
			}
			c.Store.HTTPTimeout = d
			return nil
		},
	},
	"deploy.manifest":        stringField(func(c *Config) *string { return &c.Deploy.Manifest }),
	"deploy.tagging":         stringField(func(c *Config) *string { return &c.Deploy.Tagging }),
	"deploy.app_version":     stringField(func(c *Config) *string { return &c.Deploy.AppVersion }),
	"deploy.commit":          stringField(func(c *Config) *string { return &c.Deploy.Commit }),
	"deploy.repo_dir":        stringField(func(c *Config) *string { return &c.Deploy.RepoDir }),
	"deploy.artifact.path":   stringField(func(c *Config) *string { return &c.Deploy.Artifact.Path }),
	"deploy.artifact.entry":  stringField(func(c *Config) *string { return &c.Deploy.Artifact.Entry }),
	"settings.output_format": stringField(func(c *Config) *string { return &c.Settings.OutputFormat }),
	"settings.log_level":     stringField(func(c *Config) *string { return &c.Settings.LogLevel }),
	"settings.metrics_file":  stringField(func(c *Config) *string { return &c.Settings.MetricsFile }),
}

// Keys returns the keys accepted by GetValue and SetValue.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue sets a configuration value by dotted key and revalidates.
// Credentials are not settable here; edit the file or use the environment.
func (c *Config) SetValue(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := f.set(c, value); err != nil {
		return err
	}
	return c.Validate()
}

// GetValue returns a configuration value by dotted key.
func (c *Config) GetValue(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return f.get(c), nil
}

// ToMap returns every key with its value, for display.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(fields))
	for k, f := range fields {
		result[k] = f.get(c)
	}
	return result
}
