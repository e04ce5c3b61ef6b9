package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL   = "https://skywardparts.com/sitemap"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Sitemap-Test/1.0"

	FormatText = "text"
	FormatJSON = "json"

	envPrefix = "SITEMAP"
)

// Options holds all configuration for a sitemapprobe run.
type Options struct {
	// Target
	BaseURL string `mapstructure:"base_url"`

	// HTTP
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`

	// Output
	Format   string `mapstructure:"format"` // "text", "json"
	NoColor  bool   `mapstructure:"no_color"`
	LogLevel string `mapstructure:"log_level"`
}

// flagKeys maps CLI flag names to their config keys.
var flagKeys = map[string]string{
	"base-url":   "base_url",
	"timeout":    "timeout",
	"user-agent": "user_agent",
	"format":     "format",
	"no-color":   "no_color",
	"log-level":  "log_level",
}

// Load resolves Options from, in increasing precedence: built-in defaults,
// the optional YAML config file, SITEMAP_* environment variables and any
// flag explicitly set on the command line. flags may be nil.
func Load(flags *pflag.FlagSet, configFile string) (*Options, error) {
	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("format", FormatText)
	v.SetDefault("no_color", false)
	v.SetDefault("log_level", "warn")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	opts.Format = strings.ToLower(strings.TrimSpace(opts.Format))
	return &opts, nil
}

// Validate reports the first option that would make a run meaningless.
func (o *Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", o.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", o.BaseURL)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	switch o.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("--format must be one of: %s, %s", FormatText, FormatJSON)
	}
	return nil
}
