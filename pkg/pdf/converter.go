package pdf

import "context"

const (
	// A4WidthInches and A4HeightInches describe the printed page.
	A4WidthInches  = 210.0 / 25.4
	A4HeightInches = 297.0 / 25.4
	// Scale is the zoom factor applied when printing the rendered report.
	Scale = 0.60
	// PrintBackground keeps CSS backgrounds (threat gauge, header) in print.
	PrintBackground = true
)

// Converter turns an HTML document into PDF bytes.
type Converter interface {
	HTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, html string) ([]byte, error)

// HTMLToPDF implements Converter.
func (f ConverterFunc) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return f(ctx, html)
}
