package chat

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	results map[string]common.QueryResult
	errs    map[string]error
	asked   []string
}

func (f *fakeAsker) Ask(_ context.Context, text string, tracers ...query.Tracer) (common.QueryResult, error) {
	f.asked = append(f.asked, text)
	if err, ok := f.errs[text]; ok {
		return common.QueryResult{}, err
	}
	res := f.results[text]
	for _, t := range tracers {
		t.Record(query.TraceEvent{Kind: query.TraceEventStandardized, Conditions: res.Query.Conditions})
	}
	return res, nil
}

var alaa = common.Person{
	ID:         "alaa-el-said",
	Name:       "Alaa El-said",
	Company:    "Microsoft",
	University: "Mansoura University",
	Country:    "Saudi Arabia",
	Industry:   "Software Development",
	Languages:  []string{"Arabic", "English"},
}

func run(t *testing.T, asker Asker, input string, showConditions bool) string {
	t.Helper()
	var out bytes.Buffer
	c := NewChat(NewChatParams{
		Asker:          asker,
		In:             strings.NewReader(input),
		Out:            &out,
		ShowConditions: showConditions,
	})
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestChatAnswers(t *testing.T) {
	asker := &fakeAsker{results: map[string]common.QueryResult{
		"Who works at Microsoft?": {Matches: []common.Person{alaa}},
		"Who works at Nowhere?":   {Matches: []common.Person{}},
	}}

	out := run(t, asker, "Who works at Microsoft?\n\n   \nWho works at Nowhere?\nquit\nnever asked\n", false)

	assert.Contains(t, out, welcomeText)
	assert.Contains(t, out, PromptSymbol)
	assert.Contains(t, out, "✨ Found 1 match:")
	assert.Contains(t, out, "👤 Alaa El-said")
	assert.Contains(t, out, "🏢 Company: Microsoft")
	assert.Contains(t, out, "🗣️ Languages: Arabic, English")
	assert.Contains(t, out, noMatchText)
	assert.Contains(t, out, goodbyeText)
	assert.NotContains(t, out, "❌ Error")

	assert.Equal(t, []string{"Who works at Microsoft?", "Who works at Nowhere?"}, asker.asked)
}

func TestChatErrorsAreNotNoMatches(t *testing.T) {
	asker := &fakeAsker{errs: map[string]error{
		"SELECT * FROM people": errors.Disallowedf("query text contains the SQL keyword %q", "SELECT"),
	}}

	out := run(t, asker, "SELECT * FROM people\nexit\n", false)

	assert.Contains(t, out, `❌ Error: query text contains the SQL keyword "SELECT" (ask a question in plain language instead)`)
	assert.NotContains(t, out, noMatchText)
}

func TestChatCommands(t *testing.T) {
	for _, cmd := range []string{"help", "?", "H"} {
		t.Run("help "+cmd, func(t *testing.T) {
			asker := &fakeAsker{}
			out := run(t, asker, cmd+"\nq\n", false)
			assert.Contains(t, out, "Query Examples:")
			assert.Contains(t, out, "Find developers who speak English")
			assert.Empty(t, asker.asked)
		})
	}

	for _, cmd := range []string{"quit", "EXIT", "bye", "q"} {
		t.Run("exit "+cmd, func(t *testing.T) {
			asker := &fakeAsker{}
			out := run(t, asker, cmd+"\nWho speaks English?\n", false)
			assert.Contains(t, out, goodbyeText)
			assert.Empty(t, asker.asked)
		})
	}
}

func TestChatEndOfInput(t *testing.T) {
	out := run(t, &fakeAsker{}, "", false)
	assert.Contains(t, out, goodbyeText)
}

func TestChatCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := NewChat(NewChatParams{Asker: &fakeAsker{}, In: blockingReader{}, Out: &out})
	require.NoError(t, c.Run(ctx))
	assert.Contains(t, out.String(), goodbyeText)
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestChatShowConditions(t *testing.T) {
	asker := &fakeAsker{results: map[string]common.QueryResult{
		"English speakers at Microsoft": {
			Query: common.Query{Conditions: []common.Condition{
				{Subject: "Person", Relation: common.RelationWorksAt, Object: "Microsoft"},
				{Subject: "Person", Relation: common.RelationSpeaks, Object: "English"},
			}},
			Matches: []common.Person{alaa},
		},
	}}

	out := run(t, asker, "English speakers at Microsoft\n", true)
	assert.Contains(t, out, "🧩 Conditions: (Person, WORKS_AT, Microsoft) AND (Person, SPEAKS, English)")
}
