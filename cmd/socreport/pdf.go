package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPDFCmd creates the pdf command.
func NewPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export a report JSON file as PDF",
		Long: `PDF renders the report and prints it to an A4 document.

The chrome engine needs a Chrome or Chromium binary (see pdf.chrome_path); the
basic engine lays out the report text without a browser.

Examples:
  socreport pdf -i report.json
  socreport pdf -i report.json -o out.pdf --engine basic`,
		RunE: runPDFCmd,
	}
	cmd.Flags().StringP("input", "i", "", "Report JSON file (- for stdin)")
	cmd.Flags().StringP("output", "o", "", "Output PDF file (default SOC_Report_<date>.pdf)")
	cmd.Flags().String("engine", "", "PDF engine: chrome or basic (overrides pdf.engine)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPDFCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	doc, err := readReport(cmd)
	if err != nil {
		return err
	}
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	artifact, err := orch.ExportPDF(cmd.Context(), doc, "")
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = artifact.Filename
	}
	if err := writeOutput(cmd, out, artifact.Data); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(artifact.Data))
	}
	return nil
}
