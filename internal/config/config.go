// Package config is the client-side settings file, ~/.prefixddns/config.yaml. It only
// describes how to reach and present the server; the task configuration lives on the
// server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"prefixddns-cli/internal/api"
	"prefixddns-cli/internal/events"
	"prefixddns-cli/internal/logview"
	"prefixddns-cli/internal/model"
	"prefixddns-cli/internal/templates"

	"gopkg.in/yaml.v3"
)

const (
	dirEnv   = "PREFIXDDNS_CONFIG_DIR"
	fileName = "config.yaml"
)

type Config struct {
	Server          string        `yaml:"server,omitempty"`
	FakeIP          string        `yaml:"fake_ip,omitempty"`
	ReconnectDelay  time.Duration `yaml:"reconnect_delay,omitempty"`
	RequestTimeout  time.Duration `yaml:"request_timeout,omitempty"`
	LogBuffer       int           `yaml:"log_buffer,omitempty"`
	DefaultTemplate string        `yaml:"default_template,omitempty"`
	NoColor         bool          `yaml:"no_color,omitempty"`
}

func Defaults() Config {
	return Config{
		Server:          api.DefaultServer,
		FakeIP:          model.DefaultTestIP,
		ReconnectDelay:  events.DefaultReconnectDelay,
		RequestTimeout:  api.DefaultTimeout,
		LogBuffer:       logview.DefaultMax,
		DefaultTemplate: templates.EmptyKey,
	}
}

// WithDefaults fills every unset field from Defaults.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if strings.TrimSpace(c.Server) == "" {
		c.Server = d.Server
	}
	if strings.TrimSpace(c.FakeIP) == "" {
		c.FakeIP = d.FakeIP
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = d.ReconnectDelay
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.LogBuffer <= 0 {
		c.LogBuffer = d.LogBuffer
	}
	if !knownTemplate(c.DefaultTemplate) {
		c.DefaultTemplate = d.DefaultTemplate
	}
	return c
}

// ApplyEnv overlays PREFIXDDNS_* variables. Malformed values are reported and skipped.
func (c Config) ApplyEnv(getenv func(string) string) (Config, error) {
	var errs []error
	if v := strings.TrimSpace(getenv("PREFIXDDNS_SERVER")); v != "" {
		c.Server = v
	}
	if v := strings.TrimSpace(getenv("PREFIXDDNS_FAKE_IP")); v != "" {
		c.FakeIP = v
	}
	if v := strings.TrimSpace(getenv("PREFIXDDNS_RECONNECT_DELAY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PREFIXDDNS_RECONNECT_DELAY: %w", err))
		} else {
			c.ReconnectDelay = d
		}
	}
	if v := strings.TrimSpace(getenv("PREFIXDDNS_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PREFIXDDNS_REQUEST_TIMEOUT: %w", err))
		} else {
			c.RequestTimeout = d
		}
	}
	if v := strings.TrimSpace(getenv("PREFIXDDNS_LOG_BUFFER")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PREFIXDDNS_LOG_BUFFER: %w", err))
		} else {
			c.LogBuffer = n
		}
	}
	if v := strings.TrimSpace(getenv("PREFIXDDNS_DEFAULT_TEMPLATE")); v != "" {
		c.DefaultTemplate = v
	}
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		c.NoColor = true
	}
	return c, errors.Join(errs...)
}

// Dir is the client config directory. PREFIXDDNS_CONFIG_DIR overrides it.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(dirEnv)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prefixddns"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the default config file. A missing file is an empty config.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the default config file.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, ".config-*.yaml", path, b, 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// Set assigns one field by its yaml key, as used by the settings command.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "server":
		c.Server = value
	case "fake_ip":
		c.FakeIP = value
	case "reconnect_delay", "request_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "reconnect_delay" {
			c.ReconnectDelay = d
		} else {
			c.RequestTimeout = d
		}
	case "log_buffer":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.LogBuffer = n
	case "default_template":
		if !knownTemplate(value) {
			return fmt.Errorf("unknown template %q (want one of %s)", value, strings.Join(templates.Keys(), ", "))
		}
		c.DefaultTemplate = value
	case "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.NoColor = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Keys lists the settable keys in file order.
func Keys() []string {
	return []string{"server", "fake_ip", "reconnect_delay", "request_timeout", "log_buffer", "default_template", "no_color"}
}

func knownTemplate(key string) bool {
	return key == templates.EmptyKey || templates.Has(key)
}
