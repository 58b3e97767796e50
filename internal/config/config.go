// Package config loads runtime settings for the web server from defaults, an optional YAML file,
// and VOSTRA_WEB_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. VOSTRA_WEB_CMS_BASE_URL.
const EnvPrefix = "VOSTRA_WEB"

// Config is the fully resolved configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CMS       CMSConfig       `mapstructure:"cms"`
	Site      SiteConfig      `mapstructure:"site"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener and template/asset locations.
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Templates string `mapstructure:"templates"`
	Public    string `mapstructure:"public"`
	Dev       bool   `mapstructure:"dev"`
}

// CMSConfig describes the headless CMS and its local fallbacks.
type CMSConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ProjectID    string        `mapstructure:"project_id"`
	Dataset      string        `mapstructure:"dataset"`
	APIVersion   string        `mapstructure:"api_version"`
	Token        string        `mapstructure:"token"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	ContentDir   string        `mapstructure:"content_dir"`
	SnapshotPath string        `mapstructure:"snapshot_path"`
}

// SiteConfig carries values used for canonical URLs and metadata.
type SiteConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Name    string `mapstructure:"name"`
}

// AnalyticsConfig holds the GA4 measurement id. Empty disables the tag.
type AnalyticsConfig struct {
	GAMeasurementID string `mapstructure:"ga_measurement_id"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var defaults = map[string]any{
	"server.addr":                 ":8080",
	"server.templates":            "templates",
	"server.public":               "public",
	"server.dev":                  false,
	"cms.base_url":                "",
	"cms.project_id":              "",
	"cms.dataset":                 "production",
	"cms.api_version":             "2024-01-01",
	"cms.token":                   "",
	"cms.timeout":                 "5s",
	"cms.cache_ttl":               "30s",
	"cms.content_dir":             "content",
	"cms.snapshot_path":           "",
	"site.base_url":               "https://vostracode.com",
	"site.name":                   "Vostra AI",
	"analytics.ga_measurement_id": "G-1ELCYSE80X",
	"log.level":                   "info",
}

type loadOptions struct {
	file   string
	env    map[string]string
	sysEnv bool
}

// Option customises Load.
type Option func(*loadOptions)

// WithFile reads settings from a YAML file. An empty path is ignored.
func WithFile(path string) Option {
	return func(o *loadOptions) { o.file = strings.TrimSpace(path) }
}

// WithEnvMap supplies environment values, taking precedence over the process environment.
func WithEnvMap(env map[string]string) Option {
	return func(o *loadOptions) { o.env = env }
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loadOptions) { o.sysEnv = false }
}

// Load resolves configuration. Precedence: env map, process env, file, defaults.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{sysEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if o.file != "" {
		v.SetConfigFile(o.file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", o.file, err)
		}
	}
	for key := range defaults {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if val, ok := o.lookup(envKey); ok {
			v.Set(key, val)
		}
	}
	// PORT is the platform convention for container hosts.
	if _, explicit := o.lookup(EnvPrefix + "_SERVER_ADDR"); !explicit {
		if port, ok := o.lookup("PORT"); ok && strings.TrimSpace(port) != "" {
			v.Set("server.addr", ":"+strings.TrimSpace(port))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	}); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (o loadOptions) lookup(key string) (string, bool) {
	if val, ok := o.env[key]; ok {
		return val, true
	}
	if o.sysEnv {
		return os.LookupEnv(key)
	}
	return "", false
}

func (c *Config) normalize() {
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.CMS.BaseURL = strings.TrimRight(strings.TrimSpace(c.CMS.BaseURL), "/")
	c.CMS.APIVersion = strings.TrimPrefix(strings.TrimSpace(c.CMS.APIVersion), "v")
	c.CMS.Dataset = strings.TrimSpace(c.CMS.Dataset)
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Analytics.GAMeasurementID = strings.TrimSpace(c.Analytics.GAMeasurementID)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var bad []string
	if c.Server.Addr == "" {
		bad = append(bad, "server.addr")
	}
	if c.Server.Templates == "" {
		bad = append(bad, "server.templates")
	}
	if !isAbsoluteURL(c.Site.BaseURL) {
		bad = append(bad, "site.base_url")
	}
	if c.CMS.BaseURL != "" {
		if !isAbsoluteURL(c.CMS.BaseURL) {
			bad = append(bad, "cms.base_url")
		}
		if c.CMS.Dataset == "" {
			bad = append(bad, "cms.dataset")
		}
		if c.CMS.APIVersion == "" {
			bad = append(bad, "cms.api_version")
		}
	}
	if c.CMS.Timeout <= 0 {
		bad = append(bad, "cms.timeout")
	}
	if c.CMS.CacheTTL < 0 {
		bad = append(bad, "cms.cache_ttl")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		bad = append(bad, "log.level")
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return &ValidationError{fields: bad}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}
