package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-socreport/pkg/prompt"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/store"
)

// NewFillCmd creates the fill command.
func NewFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a report interactively",
		Long: `Fill asks for every report field in the terminal, offering the current value
as the default, and writes the result as JSON.

Examples:
  socreport fill -o report.json
  socreport fill -i last_month.json --section "Recent Cyberattacks"`,
		RunE: runFillCmd,
	}
	cmd.Flags().StringP("input", "i", "", "Seed report JSON file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file (default SOC_Report_<date>.json)")
	cmd.Flags().StringSlice("section", nil, "Only prompt for the named sections")
	return cmd
}

// newPromptDriver is replaced in tests.
var newPromptDriver = prompt.NewSurveyDriver

func runFillCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadApp(cmd); err != nil {
		return err
	}

	seed := report.Default()
	if in, _ := cmd.Flags().GetString("input"); in != "" {
		doc, err := readReport(cmd)
		if err != nil {
			return err
		}
		seed = doc
	}

	sections, _ := cmd.Flags().GetStringSlice("section")
	s := store.NewWith(seed)
	doc, err := prompt.Fill(cmd.Context(), newPromptDriver(), s, prompt.WithSections(sections...))
	if errors.Is(err, prompt.ErrAborted) {
		return errors.New("aborted, nothing written")
	}
	if err != nil {
		return err
	}

	data, err := report.Marshal(doc)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = report.ExportFilename(doc.ReportDate, "json")
	}
	if err := writeOutput(cmd, out, data); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	}
	return nil
}
