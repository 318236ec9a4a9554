package socreport

import (
	"context"

	"github.com/goliatone/go-socreport/pkg/orchestrator"
	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
)

// Report aliases the authored document type for callers that only import the
// root package.
type Report = report.Report

// Artifact aliases orchestrator.Artifact.
type Artifact = orchestrator.Artifact

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// RenderHTML renders doc with the built-in template, or with the template at
// templatePath when it is not empty.
func RenderHTML(ctx context.Context, doc Report, templatePath string) (string, error) {
	var opts []orchestrator.Option
	if templatePath != "" {
		opts = append(opts, orchestrator.WithRenderOptions(render.WithTemplatePath(templatePath)))
	}
	orch, err := orchestrator.New(opts...)
	if err != nil {
		return "", err
	}
	return orch.Preview(ctx, doc)
}
