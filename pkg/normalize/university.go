package normalize

import (
	"regexp"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
)

var institutionWords = []string{"university", "college", "institute", "school"}

var institutionSuffix = regexp.MustCompile(`(?i)\s+(university|college|institute|school)\b.*$`)

// Well-known abbreviations and the fragments a dataset name must contain to
// be their target. Fragments are folded.
var universityAbbreviations = []struct {
	keys      []string
	fragments []string
}{
	{keys: []string{"ucla", "uc los angeles"}, fragments: []string{"university of california", "los angeles"}},
	{keys: []string{"uc berkeley", "ucb"}, fragments: []string{"university of california", "berkeley"}},
	{keys: []string{"ucsd", "uc san diego"}, fragments: []string{"university of california", "san diego"}},
	{keys: []string{"mit"}, fragments: []string{"massachusetts institute of technology"}},
	{keys: []string{"nyu"}, fragments: []string{"new york university"}},
	{keys: []string{"usp"}, fragments: []string{"universidade de são paulo"}},
	{keys: []string{"unicamp"}, fragments: []string{"universidade estadual de campinas"}},
}

// stripInstitution drops "University", "College", "Institute" or "School"
// and everything after it. Names starting with such a word are unchanged.
func stripInstitution(name string) string {
	return strings.TrimSpace(institutionSuffix.ReplaceAllString(name, ""))
}

func buildUniversities(values []string) *Table {
	t := newTable(common.CategoryUniversity)
	for _, value := range values {
		t.register(value)
	}

	for _, abbr := range universityAbbreviations {
		target, ok := findContaining(values, abbr.fragments)
		if !ok {
			continue
		}
		for _, key := range abbr.keys {
			t.derive(key, target)
		}
	}

	for _, value := range values {
		folded := Fold(value)
		stripped := stripInstitution(folded)
		if stripped == "" || stripped == folded || slices.Contains(institutionWords, stripped) {
			continue
		}
		t.derive(stripped, value)
	}
	return t
}

// findContaining returns the first value whose folded form contains every fragment.
func findContaining(values []string, fragments []string) (string, bool) {
	for _, value := range values {
		folded := Fold(value)
		matched := true
		for _, f := range fragments {
			if !strings.Contains(folded, f) {
				matched = false
				break
			}
		}
		if matched {
			return value, true
		}
	}
	return "", false
}

func (n *Normalizer) university(value string) string {
	key := Fold(value)
	if label, ok := n.universities.lookupKey(key); ok {
		return label
	}
	if label, ok := n.universities.matchKey(key); ok {
		return label
	}
	return TitleCase(value)
}
