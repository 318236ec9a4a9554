package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-socreport/internal/config"
	"github.com/goliatone/go-socreport/internal/logging"
	"github.com/goliatone/go-socreport/pkg/orchestrator"
	"github.com/goliatone/go-socreport/pkg/pdf"
	"github.com/goliatone/go-socreport/pkg/render"
)

// version is set at build time via ldflags.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "socreport",
		Short: "Author monthly SOC threat reports",
		Long: `socreport edits the monthly Security Operations Center report, previews it
against an HTML template and exports it as JSON or PDF.

Run "socreport serve" for the browser editor, or use render, pdf and fill to
work with report files from the terminal.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Configuration file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().String("template", "", "Report template file (default: built-in template)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewPDFCmd())
	cmd.AddCommand(NewFillCmd())
	cmd.AddCommand(NewInitCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the resolved configuration shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if tpl, _ := cmd.Flags().GetString("template"); tpl != "" {
		cfg.Template.Path = tpl
	}
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	if cmd.Flags().Lookup("engine") != nil && cmd.Flags().Changed("engine") {
		cfg.PDF.Engine, _ = cmd.Flags().GetString("engine")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Install(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.Source != "" {
		logger.Debug("configuration loaded", "path", cfg.Source)
	}
	return &app{cfg: cfg, logger: logger}, nil
}

// orchestrator loads the template; a template that cannot be loaded aborts
// the command.
func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithDefaultEngine(a.cfg.PDF.Engine),
		orchestrator.WithEngineOptions(pdf.EngineOptions{
			Chrome: pdf.ChromeOptions{
				ExecPath:  a.cfg.PDF.ChromePath,
				NoSandbox: a.cfg.PDF.NoSandbox,
				Timeout:   a.cfg.PDF.Timeout,
			},
			Basic: pdf.BasicOptions{Creator: "socreport " + getVersion()},
		}),
	}
	if a.cfg.Template.Path != "" {
		opts = append(opts, orchestrator.WithRenderOptions(render.WithTemplatePath(a.cfg.Template.Path)))
	}
	orch, err := orchestrator.New(opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("template loaded", "template", orch.Renderer().String(), "engine", orch.DefaultEngine())
	return orch, nil
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path) //nolint:gosec // user supplied input path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes to a file, or stdout for "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // reports are shared documents
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
