package render

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-socreport/pkg/report"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// SanitizeRichText cleans analyst supplied markup down to basic formatting
// and turns line breaks into <br> so multi-line fields keep their layout.
func SanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if trimmed == "" {
		return ""
	}
	cleaned := richTextSanitizer().Sanitize(trimmed)
	return strings.ReplaceAll(cleaned, "\n", "<br>\n")
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "s", "code", "pre",
			"ul", "ol", "li", "p", "br", "blockquote", "h3", "h4")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		richTextPolicy = policy
	})
	return richTextPolicy
}

// ThreatClass maps a threat level name to its CSS modifier class.
func ThreatClass(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return "threat-unknown"
	}
	return "threat-" + level
}

// SafeImageURL returns raw trimmed when report.CheckImageURL accepts it, and
// an empty string otherwise.
func SafeImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if report.CheckImageURL(raw) != nil {
		return ""
	}
	return raw
}

func filterRichText(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(SanitizeRichText(in.String())), nil
}

func filterThreatClass(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(ThreatClass(in.String())), nil
}

func filterImageURL(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(SafeImageURL(in.String())), nil
}

func templateFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"richtext":    filterRichText,
		"threatclass": filterThreatClass,
		"imageurl":    filterImageURL,
	}
}
