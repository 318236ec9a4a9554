package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-socreport/internal/config"
	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	if cmd.Use != "init" {
		t.Errorf("expected use 'init', got %q", cmd.Use)
	}

	flag := cmd.Flags().Lookup("output")
	if flag == nil {
		t.Fatal("expected output flag")
	}
	if flag.Shorthand != "o" || flag.DefValue != "." {
		t.Errorf("unexpected output flag %q default %q", flag.Shorthand, flag.DefValue)
	}

	flag = cmd.Flags().Lookup("force")
	if flag == nil {
		t.Fatal("expected force flag")
	}
	if flag.Shorthand != "f" || flag.DefValue != "false" {
		t.Errorf("unexpected force flag %q default %q", flag.Shorthand, flag.DefValue)
	}
}

func TestRunInitCmd(t *testing.T) {
	t.Run("creates starter files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "soc")
		stdout, _, err := execute(t, "", "init", "-o", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"report.json", render.DefaultTemplateName, "config.yaml"} {
			if !strings.Contains(stdout, filepath.Join(dir, name)) {
				t.Errorf("expected %s to be reported", name)
			}
		}

		data, err := os.ReadFile(filepath.Join(dir, "report.json"))
		if err != nil {
			t.Fatal(err)
		}
		doc, err := report.Unmarshal(data)
		if err != nil {
			t.Fatalf("starter report does not load: %v", err)
		}
		if doc.ThreatLevel != report.Default().ThreatLevel {
			t.Errorf("expected default threat level, got %q", doc.ThreatLevel)
		}

		cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
		if err != nil {
			t.Fatalf("starter config does not load: %v", err)
		}
		if cfg.PDF.Engine != config.DefaultPDFEngine {
			t.Errorf("expected default engine, got %q", cfg.PDF.Engine)
		}

		tpl, err := os.ReadFile(filepath.Join(dir, render.DefaultTemplateName))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(tpl), "report_date") {
			t.Error("expected the built-in template")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()
		existing := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, _, err := execute(t, "", "init", "-o", dir)
		if err == nil {
			t.Fatal("expected an error for existing files")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(existing)
		if string(data) != "keep" {
			t.Error("existing file was modified")
		}
		if _, err := os.Stat(filepath.Join(dir, "report.json")); !os.IsNotExist(err) {
			t.Error("expected no files written")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		dir := t.TempDir()
		existing := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := execute(t, "", "init", "-o", dir, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, _ := os.ReadFile(existing)
		if string(data) == "keep" {
			t.Error("expected config to be overwritten")
		}
	})
}
