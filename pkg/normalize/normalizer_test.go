package normalize

import (
	"testing"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"

	"github.com/stretchr/testify/assert"
)

func rowsWith(column string, values ...string) []common.Row {
	rows := make([]common.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, common.Row{column: v})
	}
	return rows
}

func TestCompanyNormalization(t *testing.T) {
	n := New(rowsWith(common.ColumnCompany,
		"Microsoft Corporation",
		"Capgemini",
		"Tata Consultancy Services",
		"Acme, Inc",
		"Amazon",
	))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "exact", input: "Microsoft Corporation", want: "Microsoft Corporation"},
		{name: "case_insensitive", input: "microsoft corporation", want: "Microsoft Corporation"},
		{name: "suffix_variant", input: "Microsoft Corp", want: "Microsoft Corporation"},
		{name: "suffix_stripped_registration", input: "Microsoft", want: "Microsoft Corporation"},
		{name: "unrelated_initials_do_not_resolve", input: "MS", want: "Ms"},
		{name: "country_qualifier", input: "Capgemini India", want: "Capgemini"},
		{name: "initials", input: "TCS", want: "Tata Consultancy Services"},
		{name: "first_word", input: "tata", want: "Tata Consultancy Services"},
		{name: "punctuated_suffix", input: "Acme Inc.", want: "Acme, Inc"},
		{name: "substring", input: "Amazon Web Services", want: "Amazon"},
		{name: "unknown_falls_back_to_title", input: "nonexistent company", want: "Nonexistent Company"},
		{name: "blank", input: "   ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(common.CategoryCompany, tc.input))
		})
	}
}

func TestCanonicalRegistrationBeatsDerivedKey(t *testing.T) {
	n := New(rowsWith(common.ColumnCompany, "Microsoft Corporation", "Microsoft"))

	assert.Equal(t, "Microsoft", n.Normalize(common.CategoryCompany, "microsoft"))
	assert.Equal(t, "Microsoft Corporation", n.Normalize(common.CategoryCompany, "Microsoft Corporation"))
}

func TestUniversityNormalization(t *testing.T) {
	n := New(rowsWith(common.ColumnUniversity,
		"Mansoura University",
		"University of California, Los Angeles",
		"Massachusetts Institute of Technology",
		"Harvard Business School",
		"University College Dublin",
	))

	tests := []struct {
		input string
		want  string
	}{
		{input: "Mansoura University", want: "Mansoura University"},
		{input: "mansoura", want: "Mansoura University"},
		{input: "UCLA", want: "University of California, Los Angeles"},
		{input: "UC Los Angeles", want: "University of California, Los Angeles"},
		{input: "MIT", want: "Massachusetts Institute of Technology"},
		{input: "Harvard Business", want: "Harvard Business School"},
		{input: "Oxford", want: "Oxford"},
		{input: "University of Oxford", want: "University Of Oxford"},
		{input: "UCD university college dublin", want: "University College Dublin"},
		{input: "UC Berkeley", want: "Uc Berkeley"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(common.CategoryUniversity, tc.input))
		})
	}
}

func TestLanguageNormalization(t *testing.T) {
	n := New(rowsWith(common.ColumnLanguages,
		"Arabic|Inglês",
		"Inglês|Português",
		"English",
		"Japanese | Français",
		"Español",
	))

	assert.Equal(t, "Inglês", n.EnglishLabel())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "english_resolves_to_dataset_label", input: "English", want: "Inglês"},
		{name: "english_variant", input: "anglais", want: "Inglês"},
		{name: "french_always_literal", input: "Français", want: "French"},
		{name: "french_variant", input: "francés", want: "French"},
		{name: "french_substring", input: "French (native)", want: "French"},
		{name: "french_dataset_spelling_substring", input: "français fluent", want: "French"},
		{name: "english_substring", input: "English (fluent)", want: "Inglês"},
		{name: "portuguese_synonym", input: "Portuguese", want: "Português"},
		{name: "spanish_synonym", input: "spanish", want: "Español"},
		{name: "dataset_token", input: "arabic", want: "Arabic"},
		{name: "german_without_dataset_label", input: "Deutsch", want: "German"},
		{name: "substring", input: "Japanese (native)", want: "Japanese"},
		{name: "unknown", input: "klingon", want: "Klingon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(common.CategoryLanguage, tc.input))
		})
	}
}

func TestCompanyLeadingArticleIsNotAKey(t *testing.T) {
	n := New(rowsWith(common.ColumnCompany, "The Home Depot", "Globex"))

	assert.NotContains(t, n.Table(common.CategoryCompany).Keys(), "the")
	assert.Equal(t, "The Home Depot", n.Normalize(common.CategoryCompany, "the home depot inc"))
}

func TestFrenchIgnoresDatasetSpelling(t *testing.T) {
	n := New(rowsWith(common.ColumnLanguages, "Français|Arabic", "English"))

	for _, input := range []string{"Français", "French", "French (native)", "français fluent"} {
		assert.Equal(t, "French", n.Normalize(common.CategoryLanguage, input), input)
	}
	assert.Equal(t, "Arabic", n.Normalize(common.CategoryLanguage, "arabic"))
}

func TestEnglishLabelDefaultsToEnglish(t *testing.T) {
	n := New(rowsWith(common.ColumnLanguages, "Arabic"))
	assert.Equal(t, "English", n.Normalize(common.CategoryLanguage, "inglés"))
}

func TestNormalizeIsIdempotentOnCanonicalValues(t *testing.T) {
	rows := []common.Row{
		{common.ColumnCompany: "Microsoft Corporation", common.ColumnUniversity: "Mansoura University", common.ColumnLanguages: "Arabic|English"},
		{common.ColumnCompany: "Capgemini", common.ColumnUniversity: "University of California, Los Angeles", common.ColumnLanguages: "Japanese"},
	}
	n := New(rows)

	inputs := map[common.Category][]string{
		common.CategoryCompany:    {"Microsoft Corporation", "Capgemini", "MS", "Capgemini India", "Globex"},
		common.CategoryUniversity: {"Mansoura University", "UCLA", "somewhere"},
		common.CategoryLanguage:   {"English", "anglais", "Français", "Japanese", "klingon"},
	}
	for category, values := range inputs {
		for _, v := range values {
			once := n.Normalize(category, v)
			assert.Equal(t, once, n.Normalize(category, once), "%s %q", category, v)
		}
	}
}

func TestMatchLongestKeyWins(t *testing.T) {
	tbl := newTable(common.CategoryCompany)
	tbl.register("Bank")
	tbl.register("Bank of America")
	tbl.register("America Express")

	label, ok := tbl.Match("bank of america merrill lynch")
	assert.True(t, ok)
	assert.Equal(t, "Bank of America", label)

	label, ok = tbl.Match("america")
	assert.True(t, ok)
	assert.Equal(t, "Bank of America", label, "equal length keys resolve by insertion order")

	_, ok = tbl.Match("ba")
	assert.False(t, ok, "fragments shorter than three runes never match")
}

func TestUnknownCategoryFallsBackToTitleCase(t *testing.T) {
	n := New(nil)
	assert.Equal(t, "United States", n.Normalize(common.Category("country"), "  united   states "))
	assert.Nil(t, n.Table(common.Category("country")))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "inglês", Fold("  INGLÊS "))
	assert.Equal(t, "software development", Fold("Software\tDevelopment"))
	assert.Equal(t, "Software Development", TitleCase("software   development"))
}
