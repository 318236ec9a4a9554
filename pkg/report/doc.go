// Package report defines the SOC monthly report document, the dotted field
// paths used to address it from input widgets, and its JSON wire format.
//
// A Report is a plain value. Set returns an updated copy instead of mutating
// the receiver so callers can reduce field changes into a new document and
// swap it in atomically (see pkg/store).
package report
