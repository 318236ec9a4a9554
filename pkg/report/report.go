package report

import "fmt"

// AttackCount is the fixed number of attack entries on every report.
const AttackCount = 3

// Attack is one entry of the "recent cyberattacks" section.
type Attack struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Mitigated   bool   `json:"mitigated"`
}

// Takeaway closes the report with a quote and its author.
type Takeaway struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Picture string `json:"picture"`
}

// Report is the single document authored by the tool.
type Report struct {
	ReportDate       string
	ThreatLevel      ThreatLevel
	GeneralSituation string
	HuntingText      string
	Attacks          [AttackCount]Attack
	Takeaway         Takeaway
}

// Default returns the document a new session starts with.
func Default() Report {
	return Report{ThreatLevel: ThreatGuarded}
}

// Validate checks the invariants that cannot be expressed by the Go types.
func (r Report) Validate() error {
	if !r.ThreatLevel.Valid() {
		return &PathError{Path: string(FieldThreatLevel), Err: fmt.Errorf("%w: %q", ErrInvalidThreatLevel, r.ThreatLevel)}
	}
	return nil
}

// Attack returns the attack entry at the 1-based position n.
func (r Report) Attack(n int) (Attack, bool) {
	if n < 1 || n > AttackCount {
		return Attack{}, false
	}
	return r.Attacks[n-1], true
}

// Document returns the report as the nested mapping consumed by templates.
// Keys mirror the JSON wire format.
func (r Report) Document() map[string]any {
	doc := map[string]any{
		"report_date":      r.ReportDate,
		"threat_level":     string(r.ThreatLevel),
		"generalSituation": r.GeneralSituation,
		"hunting_text":     r.HuntingText,
		"takeaway": map[string]any{
			"quote":   r.Takeaway.Quote,
			"author":  r.Takeaway.Author,
			"picture": r.Takeaway.Picture,
		},
	}
	for i, attack := range r.Attacks {
		doc[attackKey(i+1)] = map[string]any{
			"title":       attack.Title,
			"image":       attack.Image,
			"description": attack.Description,
			"mitigated":   attack.Mitigated,
		}
	}
	return doc
}

func attackKey(n int) string {
	return fmt.Sprintf("attack%d", n)
}
