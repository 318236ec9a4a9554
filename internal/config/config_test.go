package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.PDF.Engine != "chrome" || cfg.Server.Addr != DefaultAddr {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9090"
  shutdown_grace: 10s
session:
  ttl: 2h
pdf:
  engine: basic
  no_sandbox: true
template:
  path: /srv/report.html
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := New()
	want.Server.Addr = ":9090"
	want.Server.ShutdownGrace = 10 * time.Second
	want.Session.TTL = 2 * time.Hour
	want.PDF.Engine = "basic"
	want.PDF.NoSandbox = true
	want.Template.Path = "/srv/report.html"
	want.Source = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file must not fail: %v", err)
	}
	if cfg.Source != "" || cfg.PDF.Engine != DefaultPDFEngine {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("explicit missing file: expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "server:\n  port: 80\n",
		"bad duration": "pdf:\n  timeout: soon\n",
		"bad yaml":     "server: [}",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "engine", mutate: func(c *Config) { c.PDF.Engine = "prince" }, want: ErrInvalidEngine},
		{name: "timeout", mutate: func(c *Config) { c.PDF.Timeout = 0 }, want: ErrInvalidDuration},
		{name: "ttl", mutate: func(c *Config) { c.Session.TTL = -time.Second }, want: ErrInvalidDuration},
		{name: "sessions", mutate: func(c *Config) { c.Session.Max = 0 }, want: ErrInvalidSessions},
		{name: "addr", mutate: func(c *Config) { c.Server.Addr = "" }, want: ErrInvalidAddr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := New()
	cfg.PDF.ChromePath = "/usr/bin/chromium"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Load(writeFile(t, string(data)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	back.Source = ""
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
