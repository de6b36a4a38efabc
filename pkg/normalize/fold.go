package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fold turns a surface form into a table key: NFC-normalized, trimmed,
// internal whitespace collapsed to single spaces and lower-cased.
func Fold(s string) string {
	return cases.Lower(language.Und).String(collapse(s))
}

// TitleCase is the fallback form of a value no table knows about. It is also
// the only standardization applied to industries and countries.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(collapse(s))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
