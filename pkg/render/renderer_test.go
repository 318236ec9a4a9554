package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/store"
)

func newRenderer(t *testing.T, options ...render.Option) *render.Renderer {
	t.Helper()
	r, err := render.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func attackBlock(t *testing.T, html string, n string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)<article class="[^"]*" data-attack="` + n + `">.*?</article>`)
	block := re.FindString(html)
	if block == "" {
		t.Fatalf("attack %s block not found in output", n)
	}
	return block
}

func TestRenderDefaultReport(t *testing.T) {
	out, err := newRenderer(t).Render(context.Background(), report.Default())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, `data-threat-level="Guarded"`) {
		t.Fatalf("expected default threat level Guarded in output")
	}
	if !strings.Contains(out, `class="threat-guarded active"`) {
		t.Fatalf("expected Guarded gauge segment to be active")
	}
	for _, n := range []string{"1", "2", "3"} {
		block := attackBlock(t, out, n)
		if !strings.Contains(block, "<h3></h3>") {
			t.Fatalf("attack %s: expected empty title placeholder:\n%s", n, block)
		}
		if strings.Contains(block, "Mitigated by SOC") {
			t.Fatalf("attack %s: default attack must not be mitigated", n)
		}
	}
}

func TestRenderMarksImportedMitigation(t *testing.T) {
	s := store.New()
	if err := s.Import([]byte(`{"report_date":"July 2025","attack2":{"title":"Ransomware","mitigated":true}}`)); err != nil {
		t.Fatalf("import: %v", err)
	}
	out, err := newRenderer(t).Render(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	block := attackBlock(t, out, "2")
	if !strings.Contains(block, `class="attack mitigated"`) || !strings.Contains(block, "Mitigated by SOC") {
		t.Fatalf("attack 2 should be marked mitigated:\n%s", block)
	}
	if strings.Contains(attackBlock(t, out, "1"), "Mitigated by SOC") {
		t.Fatalf("attack 1 should not be mitigated")
	}
	if !strings.Contains(out, "July 2025") {
		t.Fatalf("report date missing from output")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newRenderer(t)
	doc := report.Default()
	doc.ReportDate = "August 2025"
	doc.ThreatLevel = report.ThreatSevere
	doc.GeneralSituation = "Line one\nLine two"
	doc.Attacks[0].Mitigated = true

	first, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := r.Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("render is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestRenderEscapesAndSanitizes(t *testing.T) {
	doc := report.Default()
	doc.Attacks[0].Title = "<b>bold</b>"
	doc.GeneralSituation = "<script>alert(1)</script><strong>ok</strong>\nnext"

	out, err := newRenderer(t).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Fatalf("expected title to be escaped")
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatalf("script tag leaked into output")
	}
	if !strings.Contains(out, "<strong>ok</strong><br>") {
		t.Fatalf("expected sanitized rich text with line break")
	}
}

func TestRenderDocumentMissingPlaceholder(t *testing.T) {
	r := newRenderer(t)
	doc := report.Default().Document()
	delete(doc["attack1"].(map[string]any), "title")

	_, err := r.RenderDocument(context.Background(), doc)
	if !errors.Is(err, render.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	var renderErr *render.RenderError
	if !errors.As(err, &renderErr) || renderErr.Placeholder != "attack1.title" {
		t.Fatalf("expected placeholder attack1.title, got %#v", err)
	}

	doc = report.Default().Document()
	delete(doc, "takeaway")
	if _, err := r.RenderDocument(context.Background(), doc); !errors.Is(err, render.ErrRender) {
		t.Fatalf("expected ErrRender for missing group, got %v", err)
	}
}

func TestPlaceholdersCoverReportFields(t *testing.T) {
	got := newRenderer(t).Placeholders()
	for _, desc := range report.Fields() {
		found := false
		for _, ref := range got {
			if ref == desc.Field.String() {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("template does not reference %s; got %v", desc.Field, got)
		}
	}
}

func TestNewMissingTemplateFails(t *testing.T) {
	_, err := render.New(render.WithTemplatePath(filepath.Join(t.TempDir(), "threat-report.html")))
	if !errors.Is(err, render.ErrTemplateLoad) {
		t.Fatalf("expected ErrTemplateLoad, got %v", err)
	}
	var loadErr *render.TemplateLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *TemplateLoadError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestNewInvalidTemplateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.html")
	if err := os.WriteFile(path, []byte("<p>{% if report_date %}unterminated</p>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := render.New(render.WithTemplatePath(path)); !errors.Is(err, render.ErrTemplateLoad) {
		t.Fatalf("expected ErrTemplateLoad, got %v", err)
	}
}

func TestCustomTemplateFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.html")
	body := "<h1>{{ report_date }}</h1>{% if attack3.mitigated %}<p>three</p>{% endif %}<i>{{ brand }}</i>"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	r := newRenderer(t, render.WithTemplatePath(path), render.WithGlobals(map[string]any{"brand": "ACME SOC"}))
	if diff := cmp.Diff([]string{"attack3.mitigated", "report_date"}, r.Placeholders()); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}

	doc := report.Default()
	doc.ReportDate = "Q3"
	doc.Attacks[2].Mitigated = true
	out, err := r.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h1>Q3</h1><p>three</p><i>ACME SOC</i>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestThreatClass(t *testing.T) {
	if got := render.ThreatClass(" High "); got != "threat-high" {
		t.Fatalf("ThreatClass = %q", got)
	}
	if got := render.ThreatClass(""); got != "threat-unknown" {
		t.Fatalf("ThreatClass(empty) = %q", got)
	}
}

func TestRenderImageURLs(t *testing.T) {
	doc := report.Default()
	doc.Attacks[0].Image = "https://example.org/phish.png"
	doc.Attacks[1].Image = "x.png'); background: url('https://evil.example/track"
	doc.Attacks[2].Image = "javascript:alert(1)"
	doc.Takeaway.Picture = `https://example.org/a.png" onerror="alert(1)`

	out, err := newRenderer(t).Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(attackBlock(t, out, "1"), `<img class="image" src="https://example.org/phish.png"`) {
		t.Fatalf("expected attack 1 image to be rendered")
	}
	for _, n := range []string{"2", "3"} {
		block := attackBlock(t, out, n)
		if strings.Contains(block, "<img") || strings.Contains(block, "evil.example") || strings.Contains(block, "javascript:") {
			t.Fatalf("attack %s: rejected image URL leaked into output:\n%s", n, block)
		}
	}
	if strings.Contains(out, "background-image") || strings.Contains(out, "onerror") {
		t.Fatalf("unexpected style or handler injection in output")
	}
}

func TestSafeImageURL(t *testing.T) {
	cases := map[string]string{
		" https://example.org/a.png ": "https://example.org/a.png",
		"data:image/png;base64,AAAA":  "data:image/png;base64,AAAA",
		"javascript:alert(1)":         "",
		"":                            "",
	}
	for in, want := range cases {
		if got := render.SafeImageURL(in); got != want {
			t.Errorf("SafeImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}
