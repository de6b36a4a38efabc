package query

import (
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/normalize"
)

// ValidateAndStandardize checks raw conditions and rewrites every object to
// the canonical label used by the graph. raw must be non-empty and every
// element must hold exactly three non-empty strings with subject "Person"
// and a known relation; any violation is an ErrInvalidFormat.
//
// Order is preserved.
func ValidateAndStandardize(n *normalize.Normalizer, raw []common.RawCondition) ([]common.Condition, error) {
	if len(raw) == 0 {
		return nil, errors.InvalidFormatf("no conditions given")
	}

	out := make([]common.Condition, 0, len(raw))
	for i, rc := range raw {
		if len(rc) != 3 {
			return nil, errors.InvalidFormatf("condition %d has %d elements, expected 3", i+1, len(rc))
		}

		subject := strings.TrimSpace(rc[0])
		relation := strings.TrimSpace(rc[1])
		object := strings.TrimSpace(rc[2])
		if subject == "" || relation == "" || object == "" {
			return nil, errors.InvalidFormatf("condition %d has an empty element", i+1)
		}

		if !strings.EqualFold(subject, common.SubjectPerson) {
			return nil, errors.InvalidFormatf("condition %d has subject %q, only %q is supported", i+1, subject, common.SubjectPerson)
		}

		rel, err := common.ParseRelation(relation)
		if err != nil {
			return nil, errors.Wrapf(err, "condition %d", i+1)
		}

		out = append(out, common.Condition{
			Subject:  common.SubjectPerson,
			Relation: rel,
			Object:   Standardize(n, rel, object),
		})
	}

	return out, nil
}

// Standardize maps object to its canonical form for relation r. Relations
// without a normalization table are title-cased.
func Standardize(n *normalize.Normalizer, r common.Relation, object string) string {
	category, ok := r.Category()
	if !ok || n == nil {
		return normalize.TitleCase(object)
	}
	return n.Normalize(category, object)
}
