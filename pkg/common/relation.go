package common

import (
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
)

// Relation is the kind of an edge between a Person and an attribute node.
// The set of relations is closed; use ParseRelation to obtain one from
// untrusted input.
type Relation string

const (
	RelationSpeaks    Relation = "SPEAKS"
	RelationWorksAt   Relation = "WORKS_AT"
	RelationWorksIn   Relation = "WORKS_IN"
	RelationLivesIn   Relation = "LIVES_IN"
	RelationStudiedAt Relation = "STUDIED_AT"
)

// Relations lists every relation kind.
var Relations = []Relation{
	RelationSpeaks,
	RelationWorksAt,
	RelationWorksIn,
	RelationLivesIn,
	RelationStudiedAt,
}

// ParseRelation returns the relation named by s. Surrounding whitespace and
// letter case are ignored; any other deviation is an ErrInvalidFormat.
func ParseRelation(s string) (Relation, error) {
	r := Relation(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", errors.InvalidFormatf("unknown relation %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known relation kinds.
func (r Relation) Valid() bool {
	switch r {
	case RelationSpeaks, RelationWorksAt, RelationWorksIn, RelationLivesIn, RelationStudiedAt:
		return true
	}
	return false
}

// MultiValued reports whether a person may have more than one edge of r.
func (r Relation) MultiValued() bool {
	return r == RelationSpeaks
}

// Column returns the dataset column holding the targets of r.
func (r Relation) Column() string {
	switch r {
	case RelationSpeaks:
		return ColumnLanguages
	case RelationWorksAt:
		return ColumnCompany
	case RelationWorksIn:
		return ColumnIndustry
	case RelationLivesIn:
		return ColumnCountry
	case RelationStudiedAt:
		return ColumnUniversity
	}
	return ""
}

// Category returns the normalization table used for objects of r. The
// second result is false for relations that are only case-folded.
func (r Relation) Category() (Category, bool) {
	switch r {
	case RelationSpeaks:
		return CategoryLanguage, true
	case RelationWorksAt:
		return CategoryCompany, true
	case RelationStudiedAt:
		return CategoryUniversity, true
	}
	return "", false
}
