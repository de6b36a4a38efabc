package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// minSubstringRunes is the shortest fragment the substring fallback will
// consider. Shorter fragments ("ms", "uk") match almost anything.
const minSubstringRunes = 3

// Table maps folded surface forms to canonical labels for one category.
// Keys keep their insertion order, which breaks ties in Match.
//
// A Table is read-only once its Normalizer has been built.
type Table struct {
	category  common.Category
	entries   *orderedmap.OrderedMap[string, string]
	canonical map[string]struct{}
}

func newTable(category common.Category) *Table {
	return &Table{
		category:  category,
		entries:   orderedmap.New[string, string](),
		canonical: make(map[string]struct{}),
	}
}

// register maps the folded form of a dataset value to that value. It
// replaces a derived entry under the same key; between two dataset values
// folding to the same key the first one wins.
func (t *Table) register(value string) {
	key := Fold(value)
	if key == "" {
		return
	}
	if _, ok := t.canonical[key]; ok {
		return
	}
	t.canonical[key] = struct{}{}
	t.entries.Set(key, value)
}

// derive adds key unless it is already present.
func (t *Table) derive(key, label string) {
	if key == "" || label == "" {
		return
	}
	if _, ok := t.entries.Get(key); ok {
		return
	}
	t.entries.Set(key, label)
}

// Category returns the category the table normalizes.
func (t *Table) Category() common.Category {
	return t.category
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return t.entries.Len()
}

// Keys returns all keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Lookup returns the label registered under the folded form of value.
func (t *Table) Lookup(value string) (string, bool) {
	return t.lookupKey(Fold(value))
}

func (t *Table) lookupKey(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return t.entries.Get(key)
}

// Match finds the label of the longest key that contains the folded value or
// is contained in it. Keys of equal length are resolved by insertion order.
func (t *Table) Match(value string) (string, bool) {
	return t.matchKey(Fold(value))
}

func (t *Table) matchKey(input string) (string, bool) {
	inputLen := utf8.RuneCountInString(input)
	if inputLen == 0 {
		return "", false
	}

	var (
		best    string
		bestLen int
	)
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		keyLen := utf8.RuneCountInString(pair.Key)
		if keyLen <= bestLen {
			continue
		}

		switch {
		case keyLen <= inputLen && keyLen >= minSubstringRunes && strings.Contains(input, pair.Key):
		case inputLen < keyLen && inputLen >= minSubstringRunes && strings.Contains(pair.Key, input):
		default:
			continue
		}

		best, bestLen = pair.Value, keyLen
	}
	return best, bestLen > 0
}
