package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is a dotted path addressing one value of a Report, e.g.
// "attack2.mitigated". Paths are only used at the input-binding boundary;
// everything behind it works on the typed struct.
type Field string

const (
	FieldReportDate       Field = "report_date"
	FieldThreatLevel      Field = "threat_level"
	FieldGeneralSituation Field = "generalSituation"
	FieldHuntingText      Field = "hunting_text"
	FieldTakeaway         Field = "takeaway"
	FieldTakeawayQuote    Field = "takeaway.quote"
	FieldTakeawayAuthor   Field = "takeaway.author"
	FieldTakeawayPicture  Field = "takeaway.picture"
)

// Leaf names shared by the three attack entries.
const (
	AttackTitle       = "title"
	AttackImage       = "image"
	AttackDescription = "description"
	AttackMitigated   = "mitigated"
)

// AttackField builds the path of a leaf on the 1-based attack entry n.
func AttackField(n int, leaf string) Field {
	if leaf == "" {
		return Field(attackKey(n))
	}
	return Field(attackKey(n) + "." + leaf)
}

func (f Field) String() string { return string(f) }

// Kind tells presentation layers which widget edits a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindURL      Kind = "url"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Descriptor documents an editable leaf field.
type Descriptor struct {
	Field   Field
	Label   string
	Kind    Kind
	Section string
	Options []string
}

type accessor struct {
	get func(*Report) any
	set func(*Report, any) error
}

var (
	descriptors []Descriptor
	accessors   = map[Field]accessor{}
)

func init() {
	addLeaf(Descriptor{Field: FieldReportDate, Label: "Report Month", Kind: KindText, Section: "Report Details"},
		stringAccessor(func(r *Report) *string { return &r.ReportDate }))
	addLeaf(Descriptor{Field: FieldThreatLevel, Label: "Threat Level", Kind: KindSelect, Section: "Report Details", Options: ThreatLevelNames()},
		accessor{
			get: func(r *Report) any { return r.ThreatLevel },
			set: func(r *Report, v any) error {
				level, err := coerceThreatLevel(v)
				if err != nil {
					return err
				}
				r.ThreatLevel = level
				return nil
			},
		})
	addLeaf(Descriptor{Field: FieldGeneralSituation, Label: "General Situation", Kind: KindTextArea, Section: "Report Details"},
		stringAccessor(func(r *Report) *string { return &r.GeneralSituation }))
	addLeaf(Descriptor{Field: FieldHuntingText, Label: "Hunting Details", Kind: KindTextArea, Section: "Report Details"},
		stringAccessor(func(r *Report) *string { return &r.HuntingText }))

	for i := 0; i < AttackCount; i++ {
		idx := i
		n := i + 1
		section := "Recent Cyberattacks"
		accessors[AttackField(n, "")] = accessor{
			get: func(r *Report) any { return r.Attacks[idx] },
			set: func(r *Report, v any) error {
				attack, ok := v.(Attack)
				if !ok {
					return fmt.Errorf("%w: want report.Attack, got %T", ErrInvalidValue, v)
				}
				r.Attacks[idx] = attack
				return nil
			},
		}
		addLeaf(Descriptor{Field: AttackField(n, AttackTitle), Label: fmt.Sprintf("Attack %d Title", n), Kind: KindText, Section: section},
			stringAccessor(func(r *Report) *string { return &r.Attacks[idx].Title }))
		addLeaf(Descriptor{Field: AttackField(n, AttackImage), Label: fmt.Sprintf("Attack %d Image URL", n), Kind: KindURL, Section: section},
			stringAccessor(func(r *Report) *string { return &r.Attacks[idx].Image }))
		addLeaf(Descriptor{Field: AttackField(n, AttackDescription), Label: fmt.Sprintf("Attack %d Description", n), Kind: KindTextArea, Section: section},
			stringAccessor(func(r *Report) *string { return &r.Attacks[idx].Description }))
		addLeaf(Descriptor{Field: AttackField(n, AttackMitigated), Label: "Mitigated by SOC", Kind: KindCheckbox, Section: section},
			boolAccessor(func(r *Report) *bool { return &r.Attacks[idx].Mitigated }))
	}

	accessors[FieldTakeaway] = accessor{
		get: func(r *Report) any { return r.Takeaway },
		set: func(r *Report, v any) error {
			takeaway, ok := v.(Takeaway)
			if !ok {
				return fmt.Errorf("%w: want report.Takeaway, got %T", ErrInvalidValue, v)
			}
			r.Takeaway = takeaway
			return nil
		},
	}
	addLeaf(Descriptor{Field: FieldTakeawayQuote, Label: "Quote", Kind: KindTextArea, Section: "Take Away"},
		stringAccessor(func(r *Report) *string { return &r.Takeaway.Quote }))
	addLeaf(Descriptor{Field: FieldTakeawayAuthor, Label: "Author", Kind: KindText, Section: "Take Away"},
		stringAccessor(func(r *Report) *string { return &r.Takeaway.Author }))
	addLeaf(Descriptor{Field: FieldTakeawayPicture, Label: "Author Image URL", Kind: KindURL, Section: "Take Away"},
		stringAccessor(func(r *Report) *string { return &r.Takeaway.Picture }))
}

func addLeaf(desc Descriptor, acc accessor) {
	descriptors = append(descriptors, desc)
	accessors[desc.Field] = acc
}

// Fields lists every editable leaf in display order.
func Fields() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	for i, desc := range descriptors {
		desc.Options = append([]string(nil), desc.Options...)
		out[i] = desc
	}
	return out
}

// Lookup returns the descriptor of a leaf field.
func Lookup(path string) (Descriptor, bool) {
	field := Field(strings.TrimSpace(path))
	for _, desc := range descriptors {
		if desc.Field == field {
			return desc, true
		}
	}
	return Descriptor{}, false
}

// Get resolves a dotted path. Group paths ("attack1", "takeaway") return the
// typed entry.
func (r Report) Get(path string) (any, error) {
	acc, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return acc.get(&r), nil
}

// Set returns a copy of r with the value at path replaced. r itself is never
// modified, including on error.
func (r Report) Set(path string, value any) (Report, error) {
	acc, err := resolve(path)
	if err != nil {
		return r, err
	}
	next := r
	if err := acc.set(&next, value); err != nil {
		return r, &PathError{Path: strings.TrimSpace(path), Err: err}
	}
	return next, nil
}

func resolve(path string) (accessor, error) {
	trimmed := strings.TrimSpace(path)
	if acc, ok := accessors[Field(trimmed)]; ok {
		return acc, nil
	}
	return accessor{}, &PathError{Path: trimmed, Segment: missingSegment(trimmed), Err: ErrKeyNotFound}
}

// missingSegment names the first segment of path that does not exist.
func missingSegment(path string) string {
	segments := strings.Split(path, ".")
	root := segments[0]
	if _, ok := accessors[Field(root)]; !ok {
		return root
	}
	if len(segments) > 1 {
		return segments[1]
	}
	return root
}

func stringAccessor(ptr func(*Report) *string) accessor {
	return accessor{
		get: func(r *Report) any { return *ptr(r) },
		set: func(r *Report, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want string, got %T", ErrInvalidValue, v)
			}
			if !utf8.ValidString(s) {
				return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidValue)
			}
			*ptr(r) = s
			return nil
		},
	}
}

func boolAccessor(ptr func(*Report) *bool) accessor {
	return accessor{
		get: func(r *Report) any { return *ptr(r) },
		set: func(r *Report, v any) error {
			b, err := coerceBool(v)
			if err != nil {
				return err
			}
			*ptr(r) = b
			return nil
		},
	}
}

func coerceThreatLevel(v any) (ThreatLevel, error) {
	switch value := v.(type) {
	case ThreatLevel:
		return ParseThreatLevel(string(value))
	case string:
		return ParseThreatLevel(value)
	default:
		return "", fmt.Errorf("%w: want threat level, got %T", ErrInvalidValue, v)
	}
}

// coerceBool accepts booleans and the string encodings HTML checkboxes and
// query strings produce.
func coerceBool(v any) (bool, error) {
	switch value := v.(type) {
	case bool:
		return value, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "", "off", "no":
			return false, nil
		case "on", "yes":
			return true, nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("%w: want bool, got %T", ErrInvalidValue, v)
	}
}
