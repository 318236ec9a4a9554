package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	socreport "github.com/goliatone/go-socreport"
	"github.com/goliatone/go-socreport/internal/config"
	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter report, template and configuration",
		Long: `Init writes three files into the output directory:

  report.json          an empty report with default values
  threat-report.html   a copy of the built-in template to customise
  config.yaml          the configuration with every default spelled out

Examples:
  socreport init
  socreport init -o ./soc -f`,
		RunE: runInitCmd,
	}
	cmd.Flags().StringP("output", "o", ".", "Output directory")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	reportJSON, err := report.Marshal(report.Default())
	if err != nil {
		return err
	}
	tpl, err := fs.ReadFile(socreport.DefaultTemplateFS(), render.DefaultTemplateName)
	if err != nil {
		return fmt.Errorf("read built-in template: %w", err)
	}
	cfgYAML, err := config.Marshal(config.New())
	if err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{name: "report.json", data: reportJSON},
		{name: render.DefaultTemplateName, data: tpl},
		{name: "config.yaml", data: cfgYAML},
	}

	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use -f to overwrite)", path)
			}
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil { //nolint:gosec // starter files are meant to be shared
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}
