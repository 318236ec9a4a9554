package render

import (
	"regexp"
	"sort"
	"strings"
)

const identPath = `([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)`

var (
	outputRef    = regexp.MustCompile(`\{\{-?\s*` + identPath)
	conditionRef = regexp.MustCompile(`\{%-?\s*(?:if|elif)\s+(?:not\s+)?` + identPath)
)

// placeholders collects the dotted references of source whose first segment
// is one of roots. References to loop variables or template globals are not
// rooted in the document and are skipped.
func placeholders(source string, roots map[string]struct{}) []string {
	seen := map[string]struct{}{}
	for _, re := range []*regexp.Regexp{outputRef, conditionRef} {
		for _, match := range re.FindAllStringSubmatch(source, -1) {
			ref := match[1]
			root, _, _ := strings.Cut(ref, ".")
			if _, ok := roots[root]; !ok {
				continue
			}
			seen[ref] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for ref := range seen {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// lookup walks a dotted path through nested maps.
func lookup(doc map[string]any, path string) bool {
	var current any = doc
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = m[segment]
		if !ok {
			return false
		}
	}
	return true
}
