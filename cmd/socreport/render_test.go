package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRenderCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	t.Run("writes html to stdout", func(t *testing.T) {
		stdout, _, err := execute(t, "", "render", "--config", cfg, "-i", "testdata/report.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"<html", "March 2024", "Invoice phishing"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("reads stdin and writes a file", func(t *testing.T) {
		data, err := os.ReadFile("testdata/report.json")
		if err != nil {
			t.Fatal(err)
		}
		out := filepath.Join(dir, "out.html")
		if _, _, err := execute(t, string(data), "render", "--config", cfg, "-i", "-", "-o", out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		html, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("expected output file: %v", err)
		}
		if !strings.Contains(string(html), "VPN password spraying") {
			t.Error("expected rendered attack title")
		}
	})

	t.Run("custom template", func(t *testing.T) {
		tpl := filepath.Join(dir, "custom.html")
		if err := os.WriteFile(tpl, []byte("<p>{{report_date}} / {{threat_level}}</p>"), 0o644); err != nil {
			t.Fatal(err)
		}
		stdout, _, err := execute(t, "", "render", "--config", cfg, "--template", tpl, "-i", "testdata/report.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "March 2024 / Elevated") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("missing template fails", func(t *testing.T) {
		_, _, err := execute(t, "", "render", "--config", cfg, "--template", filepath.Join(dir, "missing.html"), "-i", "testdata/report.json")
		if err == nil {
			t.Fatal("expected missing template to fail")
		}
	})

	t.Run("input is required", func(t *testing.T) {
		_, _, err := execute(t, "", "render", "--config", cfg)
		if err == nil {
			t.Fatal("expected missing -i to fail")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, _, err := execute(t, "{not json", "render", "--config", cfg, "-i", "-")
		if err == nil {
			t.Fatal("expected invalid json to fail")
		}
	})
}
