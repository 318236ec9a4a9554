package report_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-socreport/pkg/report"
)

func sampleValue(desc report.Descriptor) any {
	switch desc.Kind {
	case report.KindCheckbox:
		return true
	case report.KindSelect:
		return "Severe"
	default:
		return "value for " + desc.Field.String()
	}
}

func TestSetThenGetReturnsValue(t *testing.T) {
	for _, desc := range report.Fields() {
		t.Run(desc.Field.String(), func(t *testing.T) {
			value := sampleValue(desc)
			updated, err := report.Default().Set(desc.Field.String(), value)
			if err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := updated.Get(desc.Field.String())
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if level, ok := got.(report.ThreatLevel); ok {
				got = string(level)
			}
			if diff := cmp.Diff(value, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownPathLeavesReportUnmodified(t *testing.T) {
	original, err := report.Default().Set("attack1.title", "Phishing wave")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		path    string
		segment string
	}{
		{path: "attack4.title", segment: "attack4"},
		{path: "attack1.severity", segment: "severity"},
		{path: "report_date.month", segment: "month"},
		{path: "", segment: ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			updated, err := original.Set(tc.path, "x")
			if !errors.Is(err, report.ErrKeyNotFound) {
				t.Fatalf("expected ErrKeyNotFound, got %v", err)
			}
			var pathErr *report.PathError
			if !errors.As(err, &pathErr) {
				t.Fatalf("expected *PathError, got %T", err)
			}
			if pathErr.Segment != tc.segment {
				t.Fatalf("segment = %q, want %q", pathErr.Segment, tc.segment)
			}
			if diff := cmp.Diff(original, updated); diff != "" {
				t.Fatalf("report changed on failed set (-want +got):\n%s", diff)
			}
			if _, err := original.Get(tc.path); !errors.Is(err, report.ErrKeyNotFound) {
				t.Fatalf("get: expected ErrKeyNotFound, got %v", err)
			}
		})
	}
}

func TestSetDoesNotMutateReceiver(t *testing.T) {
	base := report.Default()
	if _, err := base.Set("attack3.mitigated", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if base.Attacks[2].Mitigated {
		t.Fatalf("receiver was mutated")
	}
}

func TestThreatLevelRejectedAtBinding(t *testing.T) {
	base := report.Default()
	for _, bad := range []any{"Critical", "high", "", 3} {
		updated, err := base.Set("threat_level", bad)
		if err == nil {
			t.Fatalf("expected %v to be rejected", bad)
		}
		if updated.ThreatLevel != report.ThreatGuarded {
			t.Fatalf("threat level changed to %q", updated.ThreatLevel)
		}
	}
	if _, err := base.Set("threat_level", "Critical"); !errors.Is(err, report.ErrInvalidThreatLevel) {
		t.Fatalf("expected ErrInvalidThreatLevel, got %v", err)
	}
}

func TestCheckboxBindingAcceptsFormEncodings(t *testing.T) {
	cases := map[string]bool{"on": true, "true": true, "1": true, "off": false, "": false, "false": false}
	for raw, want := range cases {
		updated, err := report.Default().Set("attack2.mitigated", raw)
		if err != nil {
			t.Fatalf("set %q: %v", raw, err)
		}
		if updated.Attacks[1].Mitigated != want {
			t.Fatalf("set %q: mitigated = %v, want %v", raw, updated.Attacks[1].Mitigated, want)
		}
	}
	if _, err := report.Default().Set("attack2.mitigated", "maybe"); !errors.Is(err, report.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	base := report.Default()
	for _, field := range []string{"report_date", "hunting_text", "attack1.image", "takeaway.author"} {
		updated, err := base.Set(field, "March \xff")
		if !errors.Is(err, report.ErrInvalidValue) {
			t.Fatalf("set %s: expected ErrInvalidValue, got %v", field, err)
		}
		if diff := cmp.Diff(base, updated); diff != "" {
			t.Fatalf("set %s modified the report (-want +got):\n%s", field, diff)
		}
	}
	if _, err := base.Set("report_date", "März 2025"); err != nil {
		t.Fatalf("valid UTF-8 rejected: %v", err)
	}
}

func TestGroupPaths(t *testing.T) {
	attack := report.Attack{Title: "Ransomware", Mitigated: true}
	updated, err := report.Default().Set("attack2", attack)
	if err != nil {
		t.Fatalf("set group: %v", err)
	}
	got, err := updated.Get("attack2")
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if diff := cmp.Diff(attack, got); diff != "" {
		t.Fatalf("attack mismatch (-want +got):\n%s", diff)
	}
	if _, err := updated.Set("takeaway", "not a takeaway"); !errors.Is(err, report.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestFieldsCoverFixedSchema(t *testing.T) {
	fields := report.Fields()
	if len(fields) != 4+report.AttackCount*4+3 {
		t.Fatalf("unexpected field count %d", len(fields))
	}
	desc, ok := report.Lookup("threat_level")
	if !ok {
		t.Fatalf("threat_level descriptor missing")
	}
	if diff := cmp.Diff(report.ThreatLevelNames(), desc.Options); diff != "" {
		t.Fatalf("threat options mismatch (-want +got):\n%s", diff)
	}
}
