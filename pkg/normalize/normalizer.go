// Package normalize reconciles the many ways a company, university or
// language can be written with the labels used in the relationship graph.
//
// Tables are built once from the dataset and are read-only afterwards, so a
// Normalizer is safe for concurrent use.
package normalize

import (
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
)

// Normalizer maps free-form mentions to canonical graph labels.
type Normalizer struct {
	companies    *Table
	universities *Table
	languages    *Table
	englishLabel string
}

// New builds the company, university and language tables from rows.
func New(rows []common.Row) *Normalizer {
	companies := distinct(rows, common.ColumnCompany)
	universities := distinct(rows, common.ColumnUniversity)

	var tokens []string
	counts := make(map[string]int)
	for _, row := range rows {
		for _, token := range SplitLanguages(row[common.ColumnLanguages]) {
			if counts[token] == 0 {
				tokens = append(tokens, token)
			}
			counts[token]++
		}
	}

	languages, english := buildLanguages(tokens, counts)
	n := &Normalizer{
		companies:    buildCompanies(companies),
		universities: buildUniversities(universities),
		languages:    languages,
		englishLabel: english,
	}

	logger.Debug("Built normalization tables",
		"companies", n.companies.Len(),
		"universities", n.universities.Len(),
		"languages", n.languages.Len(),
		"english_label", n.englishLabel,
	)
	return n
}

func distinct(rows []common.Row, column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		v := row[column]
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Normalize maps value to the canonical label of category. Values no table
// knows about come back title-cased; it never fails.
func (n *Normalizer) Normalize(category common.Category, value string) string {
	switch category {
	case common.CategoryCompany:
		return n.company(value)
	case common.CategoryUniversity:
		return n.university(value)
	case common.CategoryLanguage:
		return n.language(value)
	default:
		return TitleCase(value)
	}
}

// Table returns the lookup table of category, or nil for an unknown category.
func (n *Normalizer) Table(category common.Category) *Table {
	switch category {
	case common.CategoryCompany:
		return n.companies
	case common.CategoryUniversity:
		return n.universities
	case common.CategoryLanguage:
		return n.languages
	}
	return nil
}

// EnglishLabel is the label the dataset uses for English.
func (n *Normalizer) EnglishLabel() string {
	return n.englishLabel
}
