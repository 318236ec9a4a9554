// Package config loads the socreport configuration file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppName is used for the XDG directory paths.
const AppName = "socreport"

const (
	DefaultAddr          = "127.0.0.1:8080"
	DefaultShutdownGrace = 5 * time.Second
	DefaultSessionMax    = 256
	DefaultSessionTTL    = 12 * time.Hour
	DefaultPDFEngine     = "chrome"
	DefaultPDFTimeout    = 60 * time.Second
)

var knownEngines = map[string]struct{}{"chrome": {}, "basic": {}}

var (
	ErrInvalidAddr     = errors.New("config: server.addr is required")
	ErrInvalidDuration = errors.New("config: duration must be positive")
	ErrInvalidEngine   = errors.New("config: unknown pdf engine")
	ErrInvalidSessions = errors.New("config: session.max must be positive")
)

type Server struct {
	Addr          string        `yaml:"addr"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool `yaml:"secure_cookies"`
}

type Session struct {
	Max int           `yaml:"max"`
	TTL time.Duration `yaml:"ttl"`
}

type Template struct {
	// Path points at a custom report template. Empty selects the built-in one.
	Path string `yaml:"path"`
}

type PDF struct {
	Engine     string        `yaml:"engine"`
	ChromePath string        `yaml:"chrome_path"`
	NoSandbox  bool          `yaml:"no_sandbox"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Config holds every tunable of the tool. CLI flags are applied on top of the
// values loaded from the file.
type Config struct {
	Server   Server   `yaml:"server"`
	Session  Session  `yaml:"session"`
	Template Template `yaml:"template"`
	PDF      PDF      `yaml:"pdf"`

	// Verbose switches logging to debug level. It is a flag only.
	Verbose bool `yaml:"-"`
	// Source records which file the values came from, if any.
	Source string `yaml:"-"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Server:  Server{Addr: DefaultAddr, ShutdownGrace: DefaultShutdownGrace},
		Session: Session{Max: DefaultSessionMax, TTL: DefaultSessionTTL},
		PDF:     PDF{Engine: DefaultPDFEngine, Timeout: DefaultPDFTimeout},
	}
}

// ConfigDir returns the XDG config directory for socreport.
// On Linux: ~/.config/socreport
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath is where the config file is looked up when --config is unset.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Validate checks the loaded values and returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrInvalidAddr
	}
	if c.Server.ShutdownGrace <= 0 {
		return fmt.Errorf("%w: server.shutdown_grace=%s", ErrInvalidDuration, c.Server.ShutdownGrace)
	}
	if c.Session.Max <= 0 {
		return ErrInvalidSessions
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: session.ttl=%s", ErrInvalidDuration, c.Session.TTL)
	}
	if c.PDF.Timeout <= 0 {
		return fmt.Errorf("%w: pdf.timeout=%s", ErrInvalidDuration, c.PDF.Timeout)
	}
	if _, ok := knownEngines[c.PDF.Engine]; !ok {
		return fmt.Errorf("%w %q", ErrInvalidEngine, c.PDF.Engine)
	}
	return nil
}
