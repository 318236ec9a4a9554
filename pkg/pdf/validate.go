package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfcpuOnce sync.Once

func pdfcpuConfig() *model.Configuration {
	pdfcpuOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Info summarises a produced document.
type Info struct {
	Pages int
	Size  int
}

// Inspect validates data as a PDF document and counts its pages.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, errors.New("empty document")
	}
	conf := pdfcpuConfig()
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return Info{}, fmt.Errorf("validate: %w", err)
	}
	pages, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return Info{}, fmt.Errorf("page count: %w", err)
	}
	if pages == 0 {
		return Info{}, errors.New("document has no pages")
	}
	return Info{Pages: pages, Size: len(data)}, nil
}

// Validated wraps conv so every document it produces is inspected; invalid
// output becomes an *EngineError.
func Validated(name string, conv Converter) Converter {
	return ConverterFunc(func(ctx context.Context, html string) ([]byte, error) {
		data, err := conv.HTMLToPDF(ctx, html)
		if err != nil {
			return nil, engineError(name, "convert", err)
		}
		if _, err := Inspect(data); err != nil {
			return nil, engineError(name, "validate", err)
		}
		return data, nil
	})
}
