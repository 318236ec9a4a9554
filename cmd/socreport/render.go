package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-socreport/pkg/report"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report JSON file to HTML",
		Long: `Render fills the report template with a JSON export and writes the HTML.

Examples:
  socreport render -i SOC_Report_March_2024.json -o march.html
  socreport render -i report.json --template ./custom.html`,
		RunE: runRenderCmd,
	}
	cmd.Flags().StringP("input", "i", "", "Report JSON file (- for stdin)")
	cmd.Flags().StringP("output", "o", "-", "Output HTML file (- for stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, _ []string) error {
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
	artifact, err := orch.ExportHTML(cmd.Context(), doc)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")
	return writeOutput(cmd, out, artifact.Data)
}

func readReport(cmd *cobra.Command) (report.Report, error) {
	in, _ := cmd.Flags().GetString("input")
	data, err := readInput(cmd, in)
	if err != nil {
		return report.Report{}, err
	}
	return report.Unmarshal(data)
}
