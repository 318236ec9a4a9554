package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// wireReport is the on-disk layout. Attacks are flattened to the attack1..3
// keys used by the template and by previously exported files.
type wireReport struct {
	ReportDate       string      `json:"report_date"`
	ThreatLevel      ThreatLevel `json:"threat_level"`
	GeneralSituation string      `json:"generalSituation"`
	HuntingText      string      `json:"hunting_text"`
	Attack1          Attack      `json:"attack1"`
	Attack2          Attack      `json:"attack2"`
	Attack3          Attack      `json:"attack3"`
	Takeaway         Takeaway    `json:"takeaway"`
}

func toWire(r Report) wireReport {
	return wireReport{
		ReportDate:       r.ReportDate,
		ThreatLevel:      r.ThreatLevel,
		GeneralSituation: r.GeneralSituation,
		HuntingText:      r.HuntingText,
		Attack1:          r.Attacks[0],
		Attack2:          r.Attacks[1],
		Attack3:          r.Attacks[2],
		Takeaway:         r.Takeaway,
	}
}

func (w wireReport) report() Report {
	return Report{
		ReportDate:       w.ReportDate,
		ThreatLevel:      w.ThreatLevel,
		GeneralSituation: w.GeneralSituation,
		HuntingText:      w.HuntingText,
		Attacks:          [AttackCount]Attack{w.Attack1, w.Attack2, w.Attack3},
		Takeaway:         w.Takeaway,
	}
}

// Marshal encodes r using two-space indentation.
func Marshal(r Report) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out, err := json.Marshal(toWire(r), jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("report: marshal: %w", err)
	}
	return out, nil
}

// Unmarshal decodes an exported report. Keys missing from data keep their
// Default values; unknown keys, wrong types and invalid threat levels are
// rejected. Every failure is returned as a *ParseError.
func Unmarshal(data []byte) (Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Report{}, &ParseError{Err: errors.New("empty document")}
	}
	if err := validateShape(data); err != nil {
		return Report{}, &ParseError{Err: compactSchemaError(err)}
	}

	wire := toWire(Default())
	if err := json.Unmarshal(data, &wire, json.RejectUnknownMembers(true)); err != nil {
		return Report{}, &ParseError{Err: err}
	}

	out := wire.report()
	if err := out.Validate(); err != nil {
		return Report{}, &ParseError{Err: err}
	}
	return out, nil
}

// compactSchemaError flattens the multi-line validation output into a single
// line that fits a flash message.
func compactSchemaError(err error) error {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
