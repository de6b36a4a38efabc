package normalize

import (
	"slices"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
)

type synonymGroup struct {
	name     string
	variants []string
}

// Cross-language names of the same language, folded. The first variant is
// the English name and the default label of the group.
var (
	englishGroup = synonymGroup{name: "English", variants: []string{
		"english", "inglês", "ingles", "inglés", "anglais", "englisch",
	}}
	frenchGroup = synonymGroup{name: "French", variants: []string{
		"french", "français", "francais", "francés", "frances", "francês", "französisch",
	}}

	languageGroups = []synonymGroup{
		englishGroup,
		{name: "Spanish", variants: []string{
			"spanish", "español", "espanol", "espagnol", "espanhol", "spanisch",
		}},
		frenchGroup,
		{name: "Portuguese", variants: []string{
			"portuguese", "português", "portugues", "portugués", "portugais", "portugiesisch",
		}},
		{name: "German", variants: []string{
			"german", "deutsch", "alemão", "alemao", "alemán", "aleman", "allemand",
		}},
		{name: "Italian", variants: []string{
			"italian", "italiano", "italien", "italienisch",
		}},
		{name: "Japanese", variants: []string{
			"japanese", "japonês", "japones", "japonés", "japonais", "japanisch",
		}},
	}
)

// SplitLanguages splits a dataset languages cell into trimmed, non-empty tokens.
func SplitLanguages(cell string) []string {
	var out []string
	for _, token := range strings.Split(cell, common.LanguageDelimiter) {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// groupLabel picks the label the dataset uses for a synonym group: the most
// frequent member token, ties going to the one seen first. Without any
// member in the dataset the group's English name is used.
func groupLabel(group synonymGroup, tokens []string, counts map[string]int) string {
	label, best := group.name, 0
	for _, token := range tokens {
		if !slices.Contains(group.variants, Fold(token)) {
			continue
		}
		if counts[token] > best {
			label, best = token, counts[token]
		}
	}
	return label
}

func buildLanguages(tokens []string, counts map[string]int) (*Table, string) {
	t := newTable(common.CategoryLanguage)
	for _, token := range tokens {
		t.register(token)
	}

	english := englishGroup.name
	for _, group := range languageGroups {
		label := groupLabel(group, tokens, counts)
		switch group.name {
		case englishGroup.name:
			english = label
		case frenchGroup.name:
			label = frenchGroup.name
		}
		for _, variant := range group.variants {
			t.derive(variant, label)
		}
	}
	return t, english
}

// resolveGroup maps any English variant to the dataset's English label and
// any French variant to "French".
func (n *Normalizer) resolveGroup(label string) string {
	key := Fold(label)
	switch {
	case slices.Contains(englishGroup.variants, key):
		return n.englishLabel
	case slices.Contains(frenchGroup.variants, key):
		return frenchGroup.name
	}
	return label
}

func (n *Normalizer) language(value string) string {
	key := Fold(value)
	if slices.Contains(englishGroup.variants, key) || slices.Contains(frenchGroup.variants, key) {
		return n.resolveGroup(value)
	}

	// Dataset tokens are canonical keys too, so a substring hit on "français"
	// still has to go through the group resolution.
	if label, ok := n.languages.lookupKey(key); ok {
		return n.resolveGroup(label)
	}
	if label, ok := n.languages.matchKey(key); ok {
		return n.resolveGroup(label)
	}
	return TitleCase(value)
}
