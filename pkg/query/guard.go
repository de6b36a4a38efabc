package query

import (
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
)

var (
	sqlKeyword        = regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop)\b`)
	aggregatePhrase   = regexp.MustCompile(`(?i)\b(average|count|how\s+many)\b`)
	unsupportedNotice = "Aggregate questions such as counts or averages are not supported. Ask for the people matching your criteria instead."
)

// CheckText rejects question text before it is sent to the language model.
// Statements of a query language are ErrDisallowedQuery, aggregate phrasing
// is ErrUnsupportedQueryType.
func CheckText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.InvalidFormatf("query text is empty")
	}
	if m := sqlKeyword.FindString(text); m != "" {
		return errors.Disallowedf("query text contains the SQL keyword %q", strings.ToUpper(m))
	}
	if aggregatePhrase.MatchString(text) {
		return errors.Unsupported(unsupportedNotice)
	}
	return nil
}
