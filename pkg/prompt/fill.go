package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/store"
)

const defaultMaxAttempts = 3

// Option customises Fill.
type Option func(*filler)

// WithSections restricts prompting to the named form sections.
func WithSections(names ...string) Option {
	return func(f *filler) {
		for _, name := range names {
			f.sections[strings.TrimSpace(name)] = struct{}{}
		}
	}
}

// WithMaxAttempts bounds how often a rejected answer is asked again.
func WithMaxAttempts(n int) Option {
	return func(f *filler) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

type filler struct {
	driver      PromptDriver
	store       *store.Store
	sections    map[string]struct{}
	maxAttempts int
}

// Fill walks every editable field, offering the current value as the default,
// and dispatches each answer into s. Rejected answers are reported through
// driver.Info and asked again. The returned report is the store snapshot
// after the last answer.
func Fill(ctx context.Context, driver PromptDriver, s *store.Store, options ...Option) (report.Report, error) {
	if driver == nil {
		return report.Report{}, errors.New("prompt: driver is required")
	}
	if s == nil {
		return report.Report{}, errors.New("prompt: store is required")
	}
	f := &filler{
		driver:      driver,
		store:       s,
		sections:    map[string]struct{}{},
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}

	section := ""
	for _, desc := range report.Fields() {
		if len(f.sections) > 0 {
			if _, ok := f.sections[desc.Section]; !ok {
				continue
			}
		}
		if desc.Section != section {
			section = desc.Section
			if err := driver.Info(ctx, "\n== "+section+" =="); err != nil {
				return s.Snapshot(), err
			}
		}
		if err := f.field(ctx, desc); err != nil {
			return s.Snapshot(), err
		}
	}
	return s.Snapshot(), nil
}

func (f *filler) field(ctx context.Context, desc report.Descriptor) error {
	for attempt := 1; ; attempt++ {
		value, err := f.ask(ctx, desc)
		if err != nil {
			return err
		}
		err = f.store.Set(string(desc.Field), value)
		if err == nil {
			return nil
		}
		if attempt >= f.maxAttempts {
			return fmt.Errorf("%w: %s: %v", ErrTooManyAttempts, desc.Field, err)
		}
		if err := f.driver.Info(ctx, fmt.Sprintf("Invalid value for %s: %v", desc.Label, err)); err != nil {
			return err
		}
	}
}

func (f *filler) ask(ctx context.Context, desc report.Descriptor) (any, error) {
	current, err := f.store.Get(string(desc.Field))
	if err != nil {
		return nil, err
	}

	switch desc.Kind {
	case report.KindCheckbox:
		checked, _ := current.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{Message: desc.Label + "?", Default: checked})
	case report.KindSelect:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      desc.Label,
			Options:      desc.Options,
			DefaultIndex: indexOf(desc.Options, fmt.Sprint(current)),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(desc.Options) {
			return "", nil
		}
		return desc.Options[idx], nil
	case report.KindTextArea:
		return f.driver.TextArea(ctx, TextAreaConfig{
			Message: desc.Label,
			Default: fmt.Sprint(current),
			Help:    "Basic HTML formatting is kept; line breaks are preserved.",
		})
	case report.KindURL:
		return f.driver.Input(ctx, InputConfig{
			Message:   desc.Label,
			Default:   fmt.Sprint(current),
			Help:      "Absolute http(s) URL, or leave empty.",
			Validator: report.CheckImageURL,
		})
	default:
		return f.driver.Input(ctx, InputConfig{Message: desc.Label, Default: fmt.Sprint(current)})
	}
}
