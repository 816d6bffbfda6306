package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Addr            string        `yaml:"listen"`            // HTTP bind address, e.g. ":8080"
	LogDir          string        `yaml:"log_dir"`           // logs directory
	LogToConsole    bool          `yaml:"log_to_console"`    // mirror log events to stderr
	ProbeTimeout    time.Duration `yaml:"-"`                 // parsed from ProbeTimeoutRaw
	ProbeTimeoutRaw string        `yaml:"probe_timeout"`     // e.g. "10s"
	PushoverAPIKey  string        `yaml:"pushover_api_key"`  // Pushover application token
	PushoverUserKey string        `yaml:"pushover_user_key"` // Pushover user/group key
	SlackWebhook    string        `yaml:"slack_webhook"`     // optional Slack incoming webhook
	Services        []Service     `yaml:"services"`
}

type Service struct {
	URL                  string `yaml:"url"`
	IntervalSeconds      int    `yaml:"interval_seconds"`
	MaxRetries           int    `yaml:"max_retries"`
	RetryIntervalSeconds int    `yaml:"retry_interval_seconds"`
}

// Load reads the YAML config file, applies defaults and environment
// overrides, and validates the result. Any validation error is fatal to
// the caller: no monitoring may start on a partially-invalid config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":8080"
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		cfg.LogDir = "logs"
	}
	if strings.TrimSpace(cfg.ProbeTimeoutRaw) == "" {
		cfg.ProbeTimeoutRaw = "10s"
	}
	for i := range cfg.Services {
		s := &cfg.Services[i]
		if s.IntervalSeconds == 0 {
			s.IntervalSeconds = 60
		}
		if s.RetryIntervalSeconds == 0 {
			s.RetryIntervalSeconds = 10
		}
	}
}

// Environment variables take precedence over the file so deployments can
// override the bind address without editing the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FLUXA_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FLUXA_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("FLUXA_PUSHOVER_API_KEY"); v != "" {
		cfg.PushoverAPIKey = v
	}
	if v := os.Getenv("FLUXA_PUSHOVER_USER_KEY"); v != "" {
		cfg.PushoverUserKey = v
	}
	if v := os.Getenv("FLUXA_SLACK_WEBHOOK"); v != "" {
		cfg.SlackWebhook = v
	}
}

func validate(cfg *Config) error {
	d, err := time.ParseDuration(cfg.ProbeTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: invalid probe_timeout %q: %w", cfg.ProbeTimeoutRaw, err)
	}
	if d <= 0 {
		return errors.New("config: probe_timeout must be > 0")
	}
	cfg.ProbeTimeout = d

	hasPushover := cfg.PushoverAPIKey != "" && cfg.PushoverUserKey != ""
	if (cfg.PushoverAPIKey == "") != (cfg.PushoverUserKey == "") {
		return errors.New("config: pushover_api_key and pushover_user_key must both be set")
	}
	if !hasPushover && cfg.SlackWebhook == "" {
		return errors.New("config: no notification channel configured (pushover keys or slack_webhook)")
	}

	if len(cfg.Services) == 0 {
		return errors.New("config: no services to monitor")
	}

	seen := make(map[string]struct{}, len(cfg.Services))
	for i, s := range cfg.Services {
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("config: services[%d] missing url", i)
		}
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: services[%d] invalid url %q", i, s.URL)
		}
		if _, dup := seen[s.URL]; dup {
			return fmt.Errorf("config: duplicate service url %q", s.URL)
		}
		seen[s.URL] = struct{}{}

		if s.IntervalSeconds <= 0 {
			return fmt.Errorf("config: service %q interval_seconds must be > 0", s.URL)
		}
		if s.RetryIntervalSeconds <= 0 {
			return fmt.Errorf("config: service %q retry_interval_seconds must be > 0", s.URL)
		}
		if s.MaxRetries < 0 {
			return fmt.Errorf("config: service %q max_retries cannot be negative", s.URL)
		}
	}
	return nil
}
