package report

import "strings"

// ExportFilename names an export artifact after the report month, e.g.
// ExportFilename("March 2025", "pdf") == "SOC_Report_March_2025.pdf".
func ExportFilename(reportDate, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	name := "SOC_Report_" + strings.ReplaceAll(reportDate, " ", "_")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
