package normalize

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
)

// Corporate suffixes and trailing country qualifiers, folded.
var companySuffixes = []string{
	"inc", "ltd", "llc", "limited", "corp", "corporation", "co", "gmbh", "plc",
	"india", "uk", "us", "usa",
}

var leadingArticles = []string{"the", "a", "an"}

// stripCompanySuffix removes trailing corporate suffixes from a folded
// company name. At least one word is always kept.
func stripCompanySuffix(folded string) string {
	words := strings.Fields(folded)
	for len(words) > 1 && slices.Contains(companySuffixes, trimPunct(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	for i := range words {
		words[i] = trimPunct(words[i])
	}
	return strings.Join(slices.DeleteFunc(words, func(w string) bool { return w == "" }), " ")
}

func trimPunct(word string) string {
	return strings.Trim(word, ".,;&")
}

func initials(words []string) string {
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func buildCompanies(values []string) *Table {
	t := newTable(common.CategoryCompany)
	for _, value := range values {
		t.register(value)

		folded := Fold(value)
		base := stripCompanySuffix(folded)
		if base != folded {
			t.derive(base, value)
		}

		words := strings.Fields(base)
		if len(words) < 2 {
			continue
		}
		t.derive(initials(words), value)
		if !slices.Contains(leadingArticles, words[0]) {
			t.derive(words[0], value)
		}
	}
	return t
}

func (n *Normalizer) company(value string) string {
	key := Fold(value)
	if label, ok := n.companies.lookupKey(key); ok {
		return label
	}
	if label, ok := n.companies.lookupKey(stripCompanySuffix(key)); ok {
		return label
	}
	if label, ok := n.companies.matchKey(key); ok {
		return label
	}
	return TitleCase(value)
}
