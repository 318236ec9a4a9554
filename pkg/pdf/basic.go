package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding/charmap"
)

// EngineBasic names the browserless converter.
const EngineBasic = "basic"

// BasicOptions configures the text layout converter.
type BasicOptions struct {
	// Uncompressed leaves page content streams readable, which helps when
	// inspecting output.
	Uncompressed bool
	// Creator is written into the document metadata.
	Creator string
}

// BasicConverter lays out the text content of the HTML document on A4 pages.
// Styling and images are dropped; headings, paragraphs and line breaks are
// kept. It is meant for hosts without a browser.
//
// Text is set in the core Helvetica font, which only covers Windows-1252.
// Characters outside it (Greek, Cyrillic, CJK, emoji) are printed as "?";
// use the chrome engine for reports in other scripts.
type BasicConverter struct {
	opts BasicOptions
}

// NewBasicConverter returns a text layout converter.
func NewBasicConverter(opts BasicOptions) *BasicConverter {
	if opts.Creator == "" {
		opts.Creator = "socreport"
	}
	return &BasicConverter{opts: opts}
}

type textBlock struct {
	level int
	text  string
}

var headingStyle = map[int]struct {
	size float64
	gap  float64
}{
	1: {size: 18, gap: 4},
	2: {size: 14, gap: 3},
	3: {size: 12, gap: 2},
	4: {size: 11, gap: 2},
}

// HTMLToPDF implements Converter.
func (b *BasicConverter) HTMLToPDF(ctx context.Context, document string) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, engineError(EngineBasic, "load", err)
		}
	}

	title, blocks, err := extractText(strings.NewReader(document))
	if err != nil {
		return nil, engineError(EngineBasic, "load", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(!b.opts.Uncompressed)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.SetTitle(title, true)
	doc.SetCreator(b.opts.Creator, true)
	doc.AddPage()

	for _, blk := range blocks {
		if style, ok := headingStyle[blk.level]; ok {
			doc.Ln(style.gap)
			doc.SetFont("Helvetica", "B", style.size)
			doc.SetTextColor(30, 41, 59)
			doc.MultiCell(0, style.size*0.5, winAnsi(blk.text), "", "L", false)
			continue
		}
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(60, 60, 60)
		doc.MultiCell(0, 5, winAnsi(blk.text), "", "L", false)
		doc.Ln(1.5)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, engineError(EngineBasic, "print", err)
	}
	return buf.Bytes(), nil
}

// winAnsi encodes s as Windows-1252 for the core fonts, replacing runes the
// code page cannot represent with '?'.
func winAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('?')
	}
	return sb.String()
}

var blockElements = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.P: true, atom.Div: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.Blockquote: true, atom.Article: true, atom.Section: true,
	atom.Header: true, atom.Footer: true, atom.Figcaption: true, atom.Table: true, atom.Tr: true,
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	}
	return 0
}

type textWalker struct {
	level  int
	buf    strings.Builder
	blocks []textBlock
}

func extractText(r io.Reader) (string, []textBlock, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}
	w := &textWalker{}
	w.walk(root)
	w.flush()
	return findTitle(root), w.blocks, nil
}

func (w *textWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.buf.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Style, atom.Script, atom.Noscript, atom.Template:
			return
		case atom.Br:
			w.buf.WriteByte('\n')
			return
		}
		if blockElements[n.DataAtom] {
			w.flush()
			prev := w.level
			if lvl := headingLevel(n.DataAtom); lvl > 0 {
				w.level = lvl
			}
			if n.DataAtom == atom.Li {
				w.buf.WriteString("- ")
			}
			w.children(n)
			w.flush()
			w.level = prev
			return
		}
	}
	w.children(n)
}

func (w *textWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWalker) flush() {
	text := normalizeText(w.buf.String())
	w.buf.Reset()
	if text == "" || text == "-" {
		return
	}
	w.blocks = append(w.blocks, textBlock{level: w.level, text: text})
}

func normalizeText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return normalizeText(sb.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
