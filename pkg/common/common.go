package common

// Column names every dataset must carry.
const (
	ColumnID         = "id"
	ColumnName       = "name"
	ColumnCompany    = "company"
	ColumnUniversity = "university"
	ColumnLanguages  = "languages"
	ColumnIndustry   = "industry"
	ColumnCountry    = "country"
)

// RequiredColumns lists the dataset columns in their canonical order.
var RequiredColumns = []string{
	ColumnID,
	ColumnName,
	ColumnCompany,
	ColumnUniversity,
	ColumnLanguages,
	ColumnIndustry,
	ColumnCountry,
}

// LanguageDelimiter separates multiple languages inside one dataset cell.
const LanguageDelimiter = "|"

// Row is one dataset record, keyed by column name. Values are trimmed.
type Row map[string]string

// Person is a node of the relationship graph. It is created once when the
// graph is built from the dataset and never modified afterwards.
//
// All attributes except ID are optional; a blank attribute means the person
// has no edge of the corresponding relation.
type Person struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Company    string   `json:"company,omitempty"`
	University string   `json:"university,omitempty"`
	Country    string   `json:"country,omitempty"`
	Industry   string   `json:"industry,omitempty"`
	Languages  []string `json:"languages"`
}

// Category selects one of the name normalization tables.
type Category string

const (
	CategoryCompany    Category = "company"
	CategoryUniversity Category = "university"
	CategoryLanguage   Category = "language"
)

// Condition is a single standardized (subject, relation, object) statement a
// Person must satisfy. Subject is always SubjectPerson.
type Condition struct {
	Subject  string   `json:"subject"`
	Relation Relation `json:"relation"`
	Object   string   `json:"object"`
}

// SubjectPerson is the only entity class conditions can refer to.
const SubjectPerson = "Person"

// RawCondition is a condition as produced by the language model or an API
// caller, before its arity or content has been validated.
type RawCondition []string

// Query is a conjunction of conditions. Condition order carries no meaning.
//
// Text holds the natural language question the conditions were derived
// from and is empty when conditions were supplied directly.
type Query struct {
	ID         string      `json:"id"`
	Text       string      `json:"text,omitempty"`
	Conditions []Condition `json:"conditions"`
}

// QueryResult is the originating query plus every matching person in graph
// discovery order. An empty Matches slice is a valid result, not an error.
type QueryResult struct {
	Query   Query    `json:"query"`
	Matches []Person `json:"matches"`
}
