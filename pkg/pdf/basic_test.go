package pdf

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleHTML = `<!DOCTYPE html>
<html><head><title>SOC Report March 2024</title><style>body{color:red}</style></head>
<body>
  <header><h1>Monthly SOC Report</h1><p>March 2024</p></header>
  <section><h2>General situation</h2><div class="text-block">Quiet month.<br>Nothing major.</div></section>
  <article class="attack mitigated"><h3>Phishing wave</h3><p>Blocked at the gateway.</p><div class="status">Mitigated by SOC</div></article>
  <ul><li>first</li><li>second</li></ul>
  <script>console.log("ignored")</script>
</body></html>`

func TestExtractText(t *testing.T) {
	title, blocks, err := extractText(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("extractText: %v", err)
	}
	if title != "SOC Report March 2024" {
		t.Fatalf("title = %q", title)
	}
	want := []textBlock{
		{level: 1, text: "Monthly SOC Report"},
		{text: "March 2024"},
		{level: 2, text: "General situation"},
		{text: "Quiet month.\nNothing major."},
		{level: 3, text: "Phishing wave"},
		{text: "Blocked at the gateway."},
		{text: "Mitigated by SOC"},
		{text: "- first"},
		{text: "- second"},
	}
	if diff := cmp.Diff(want, blocks, cmp.AllowUnexported(textBlock{})); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBasicConverter_ProducesValidA4Document(t *testing.T) {
	conv := NewBasicConverter(BasicOptions{Uncompressed: true})
	data, err := conv.HTMLToPDF(context.Background(), sampleHTML)
	if err != nil {
		t.Fatalf("HTMLToPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}

	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", info.Pages)
	}
	if !bytes.Contains(data, []byte("595.28 841.89")) {
		t.Fatalf("expected A4 media box in output")
	}
	if !bytes.Contains(data, []byte("Mitigated by SOC")) {
		t.Fatalf("expected attack status text in output")
	}
	if bytes.Contains(data, []byte("console.log")) {
		t.Fatalf("script content leaked into output")
	}
}

func TestWinAnsi(t *testing.T) {
	cases := map[string]string{
		"plain ASCII":         "plain ASCII",
		"café – 5 €":          "caf\xe9 \x96 5 \x80",
		"Ελλάδα":              "??????",
		"line\nbreak":         "line\nbreak",
		"emoji \U0001F512 ok": "emoji ? ok",
	}
	for in, want := range cases {
		if got := winAnsi(in); got != want {
			t.Errorf("winAnsi(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBasicConverter_NonLatinTextIsReplaced(t *testing.T) {
	page := `<html><body><h2>Café</h2><p>Кибератака blocked</p></body></html>`
	data, err := NewBasicConverter(BasicOptions{Uncompressed: true}).HTMLToPDF(context.Background(), page)
	if err != nil {
		t.Fatalf("HTMLToPDF: %v", err)
	}
	if _, err := Inspect(data); err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !bytes.Contains(data, []byte("Caf\xe9")) {
		t.Fatalf("expected Windows-1252 encoded heading in output")
	}
	if !bytes.Contains(data, []byte("?????????? blocked")) {
		t.Fatalf("expected unsupported characters to be replaced with '?'")
	}
}

func TestBasicConverter_LongReportPaginates(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 200; i++ {
		sb.WriteString("<p>Recurring credential stuffing against the VPN portal was rate limited.</p>")
	}
	sb.WriteString("</body></html>")

	data, err := NewBasicConverter(BasicOptions{}).HTMLToPDF(context.Background(), sb.String())
	if err != nil {
		t.Fatalf("HTMLToPDF: %v", err)
	}
	info, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages < 2 {
		t.Fatalf("expected multiple pages, got %d", info.Pages)
	}
}

func TestBasicConverter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBasicConverter(BasicOptions{}).HTMLToPDF(ctx, sampleHTML)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	var engineErr *EngineError
	if !errors.As(err, &engineErr) || engineErr.Engine != EngineBasic {
		t.Fatalf("expected basic EngineError, got %v", err)
	}
}
