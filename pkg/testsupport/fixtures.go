package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-socreport/pkg/report"
)

// LoadReport reads a JSON report fixture. Testing helpers fail the test on
// error to keep table tests concise.
func LoadReport(t *testing.T, path string) report.Report {
	t.Helper()

	doc, err := LoadReportFromPath(path)
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	return doc
}

// LoadReportFromPath returns a Report without requiring testing.T so setup
// functions can share fixtures.
func LoadReportFromPath(path string) (report.Report, error) {
	if path == "" {
		return report.Report{}, errors.New("testsupport: report path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return report.Report{}, fmt.Errorf("testsupport: read report: %w", err)
	}
	doc, err := report.Unmarshal(data)
	if err != nil {
		return report.Report{}, fmt.Errorf("testsupport: unmarshal report: %w", err)
	}
	return doc, nil
}

// WriteReport writes a report fixture to dir and returns its path.
func WriteReport(t *testing.T, dir string, doc report.Report) string {
	t.Helper()

	data, err := report.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	path := filepath.Join(dir, report.ExportFilename(doc.ReportDate, "json"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// FakeConverter is an HTML to PDF converter double. It records the last HTML
// it received and returns PDF (or Err). With PDF unset it returns BlankPDF.
type FakeConverter struct {
	PDF      []byte
	Err      error
	LastHTML string
	Calls    int
}

// HTMLToPDF implements pdf.Converter.
func (f *FakeConverter) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	f.Calls++
	f.LastHTML = html
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.PDF == nil {
		return BlankPDF()
	}
	return append([]byte(nil), f.PDF...), nil
}

// BlankPDF returns a structurally valid single page A4 document.
func BlankPDF() ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
