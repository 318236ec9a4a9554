// Package pdf rasterizes rendered report HTML into PDF documents.
//
// Converter is the narrow seam the rest of the module depends on. The chrome
// converter drives headless Chrome through the DevTools protocol and is the
// default; the basic converter lays out the text content with fpdf and needs
// no browser. Every document is checked with pdfcpu before it is returned.
//
// Page geometry is fixed: A4, background graphics on, 0.60 scale.
package pdf
