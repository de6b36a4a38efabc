package graph

import (
	"slices"
	"testing"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, name, company, university, languages, industry, country string) common.Row {
	return common.Row{
		common.ColumnID:         id,
		common.ColumnName:       name,
		common.ColumnCompany:    company,
		common.ColumnUniversity: university,
		common.ColumnLanguages:  languages,
		common.ColumnIndustry:   industry,
		common.ColumnCountry:    country,
	}
}

func fixture() []common.Row {
	return []common.Row{
		row("alaa-el-said-56740659", "Alaa El-said", "Microsoft", "Mansoura University", "Arabic|English", "Software Development", "Saudi Arabia"),
		row("lauren-calderon", "Lauren Calderon", "Amazon", "", "English", "Software Development", "United States"),
		row("nick-ramos", "Nick Ramos", "Microsoft", "University of California, Los Angeles", "English|Spanish", "Software Development", "United States"),
		row("cesar-figueiredo", "Cesar Figueiredo", "Shopify", "", "Portuguese|English|Japanese", "Software Development", "Canada"),
		row("marie-dubois", "Marie Dubois", "", "", "French", "Hospitals and Health Care", "Canada"),
	}
}

func c(r common.Relation, object string) common.Condition {
	return common.Condition{Subject: common.SubjectPerson, Relation: r, Object: object}
}

func names(people []common.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.Name)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	g := New(fixture())

	tests := []struct {
		name       string
		conditions []common.Condition
		want       []string
	}{
		{
			name:       "works at microsoft and speaks english",
			conditions: []common.Condition{c(common.RelationWorksAt, "Microsoft"), c(common.RelationSpeaks, "English")},
			want:       []string{"Alaa El-said", "Nick Ramos"},
		},
		{
			name:       "single condition",
			conditions: []common.Condition{c(common.RelationLivesIn, "Canada")},
			want:       []string{"Cesar Figueiredo", "Marie Dubois"},
		},
		{
			name: "three conditions",
			conditions: []common.Condition{
				c(common.RelationSpeaks, "English"),
				c(common.RelationWorksIn, "Software Development"),
				c(common.RelationLivesIn, "United States"),
			},
			want: []string{"Lauren Calderon", "Nick Ramos"},
		},
		{
			name:       "studied at",
			conditions: []common.Condition{c(common.RelationStudiedAt, "University of California, Los Angeles")},
			want:       []string{"Nick Ramos"},
		},
		{
			name:       "unknown company",
			conditions: []common.Condition{c(common.RelationWorksAt, "NonExistentCompany")},
			want:       []string{},
		},
		{
			name:       "exact match only",
			conditions: []common.Condition{c(common.RelationWorksAt, "microsoft")},
			want:       []string{},
		},
		{
			name:       "missing edge never matches",
			conditions: []common.Condition{c(common.RelationWorksAt, "Microsoft"), c(common.RelationLivesIn, "Canada")},
			want:       []string{},
		},
		{
			name:       "repeated condition",
			conditions: []common.Condition{c(common.RelationSpeaks, "Japanese"), c(common.RelationSpeaks, "Japanese")},
			want:       []string{"Cesar Figueiredo"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Evaluate(tc.conditions)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	g := New(fixture())

	conditions := []common.Condition{
		c(common.RelationSpeaks, "English"),
		c(common.RelationWorksIn, "Software Development"),
		c(common.RelationWorksAt, "Microsoft"),
	}
	reversed := slices.Clone(conditions)
	slices.Reverse(reversed)

	assert.Equal(t, g.Evaluate(conditions), g.Evaluate(reversed))
}

func TestEvaluateEmptyMatchesEveryone(t *testing.T) {
	g := New(fixture())

	got := g.Evaluate(nil)
	assert.Equal(t, []string{"Alaa El-said", "Lauren Calderon", "Nick Ramos", "Cesar Figueiredo", "Marie Dubois"}, names(got))
}

func TestDuplicateIDsMerge(t *testing.T) {
	g := New([]common.Row{
		row("p1", "Ada", "Acme", "", "English", "", "Canada"),
		row("p2", "Bob", "Globex", "", "Spanish", "", ""),
		row("p1", "Ada", "Initech", "", "Spanish|English", "Software Development", "Canada"),
	})

	require.Equal(t, 2, g.Len())

	ada, ok := g.Person("p1")
	require.True(t, ok)
	assert.Equal(t, "Acme", ada.Company)
	assert.Equal(t, "Software Development", ada.Industry)
	assert.Equal(t, []string{"English", "Spanish"}, ada.Languages)

	assert.Equal(t, []string{"Ada", "Bob"}, names(g.Evaluate([]common.Condition{c(common.RelationSpeaks, "Spanish")})))
	assert.Empty(t, g.Evaluate([]common.Condition{c(common.RelationWorksAt, "Initech")}))
}

func TestBlankFieldsProduceNoEdges(t *testing.T) {
	g := New([]common.Row{
		row("p1", "Ada", "", "  ", " | ", "", ""),
		row("", "No Id", "Acme", "", "", "", ""),
	})

	require.Equal(t, 1, g.Len())
	stats := g.Stats()
	for _, r := range common.Relations {
		assert.Zero(t, stats.Edges[r], r)
	}

	ada, _ := g.Person("p1")
	assert.Equal(t, []string{}, ada.Languages)
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := New(fixture())

	people := g.People()
	people[0].Languages[0] = "Klingon"

	alaa, ok := g.Person("alaa-el-said-56740659")
	require.True(t, ok)
	assert.Equal(t, []string{"Arabic", "English"}, alaa.Languages)

	assert.Equal(t, []string{"Microsoft", "Amazon", "Shopify"}, g.Labels(common.RelationWorksAt))
	assert.Equal(t, []string{"Arabic", "English"}, g.Edges("alaa-el-said-56740659", common.RelationSpeaks))
	assert.Nil(t, g.Edges("nobody", common.RelationSpeaks))

	_, ok = g.Person("nobody")
	assert.False(t, ok)
}

func TestQuery(t *testing.T) {
	g := New(fixture())
	q := common.Query{ID: "q1", Conditions: []common.Condition{c(common.RelationSpeaks, "French")}}

	res := g.Query(q)
	assert.Equal(t, q, res.Query)
	assert.Equal(t, []string{"Marie Dubois"}, names(res.Matches))
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []int{2, 5}, intersect([]int{1, 2, 4, 5}, []int{2, 3, 5, 9}))
	assert.Empty(t, intersect([]int{1}, []int{2}))
}
