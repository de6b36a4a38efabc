package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mid "github.com/OFFIS-RIT/peoplegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/peoplegraph/pkg/ai"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterKey = "test-master-key"

type stubClient struct {
	answer string
	err    error
	block  bool
}

func (s *stubClient) GenerateCompletion(ctx context.Context, _ string, _ ...ai.GenerateOption) (string, error) {
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.answer, s.err
}

func (s *stubClient) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...ai.GenerateOption) error {
	return s.err
}

func (s *stubClient) LoadModel(context.Context, ...ai.GenerateOption) error { return nil }
func (s *stubClient) ResetMetrics()                                          {}
func (s *stubClient) GetMetrics() ai.ModelMetrics                            { return ai.ModelMetrics{} }

func person(id, name, company, languages, country string) common.Row {
	return common.Row{
		common.ColumnID:         id,
		common.ColumnName:       name,
		common.ColumnCompany:    company,
		common.ColumnUniversity: "",
		common.ColumnLanguages:  languages,
		common.ColumnIndustry:   "Software Development",
		common.ColumnCountry:    country,
	}
}

func newTestServer(t *testing.T, client ai.GraphAIClient, masterAPIKey string) *echo.Echo {
	t.Helper()
	rows := []common.Row{
		person("alaa-el-said", "Alaa El-said", "Microsoft", "Arabic|English", "Saudi Arabia"),
		person("nick-ramos", "Nick Ramos", "Microsoft", "English|Spanish", "United States"),
		person("cesar-figueiredo", "Cesar Figueiredo", "Shopify", "Portuguese|English|Japanese", "Canada"),
	}
	g, n, err := query.Build(context.Background(), rows)
	require.NoError(t, err)

	engine := query.NewEngine(query.NewEngineParams{
		Graph:      g,
		Normalizer: n,
		Translator: query.NewTranslator(client, query.NewTranslatorParams{Timeout: 50 * time.Millisecond}),
	})
	return New(&mid.App{Engine: engine, MasterAPIKey: masterAPIKey})
}

func do(e *echo.Echo, method, target, body, key string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if key != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &stubClient{}, masterKey)
	rec := do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAuth(t *testing.T) {
	e := newTestServer(t, &stubClient{}, masterKey)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/people", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/people", "", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/people", "", masterKey).Code)

	open := newTestServer(t, &stubClient{}, "")
	assert.Equal(t, http.StatusOK, do(open, http.MethodGet, "/api/people", "", "").Code)
}

func TestQuery(t *testing.T) {
	client := &stubClient{answer: `[("Person", "WORKS_AT", "Microsoft"), ("Person", "SPEAKS", "english")]`}
	e := newTestServer(t, client, masterKey)

	rec := do(e, http.MethodPost, "/api/query?trace=true", `{"text": "Microsoft people who speak English"}`, masterKey)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Query   common.Query              `json:"query"`
		Matches []common.Person           `json:"matches"`
		Trace   *query.QueryTraceSnapshot `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "Alaa El-said", res.Matches[0].Name)
	assert.Equal(t, "Nick Ramos", res.Matches[1].Name)
	assert.Equal(t, "English", res.Query.Conditions[1].Object)
	require.NotNil(t, res.Trace)
	assert.Equal(t, []string{"alaa-el-said", "nick-ramos"}, res.Trace.MatchIDs)

	rec = do(e, http.MethodPost, "/api/query", `{"text": "Microsoft people who speak English"}`, masterKey)
	assert.NotContains(t, decode(t, rec), "trace")
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
		body   string
		status int
		kind   string
	}{
		{name: "missing text", client: &stubClient{}, body: `{}`, status: http.StatusBadRequest},
		{name: "sql", client: &stubClient{}, body: `{"text": "SELECT * FROM people"}`, status: http.StatusUnprocessableEntity, kind: "disallowed_query"},
		{name: "aggregate", client: &stubClient{}, body: `{"text": "How many people speak English?"}`, status: http.StatusUnprocessableEntity, kind: "unsupported_query_type"},
		{name: "sentinel", client: &stubClient{answer: "ERROR: Negations are not supported."}, body: `{"text": "Who does not speak English?"}`, status: http.StatusUnprocessableEntity, kind: "unsupported_query_type"},
		{name: "garbage", client: &stubClient{answer: "Sure! Here you go."}, body: `{"text": "Who speaks English?"}`, status: http.StatusBadRequest, kind: "invalid_format"},
		{name: "timeout", client: &stubClient{block: true}, body: `{"text": "Who speaks English?"}`, status: http.StatusGatewayTimeout, kind: "upstream_timeout"},
		{name: "upstream", client: &stubClient{err: context.Canceled}, body: `{"text": "Who speaks English?"}`, status: http.StatusBadGateway, kind: "upstream_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestServer(t, tc.client, masterKey)
			rec := do(e, http.MethodPost, "/api/query", tc.body, masterKey)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.kind != "" {
				assert.Equal(t, tc.kind, decode(t, rec)["kind"])
			}
		})
	}
}

func TestConditions(t *testing.T) {
	e := newTestServer(t, &stubClient{}, masterKey)

	rec := do(e, http.MethodPost, "/api/conditions", `{"conditions": [["Person", "LIVES_IN", "canada"]]}`, masterKey)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res common.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "cesar-figueiredo", res.Matches[0].ID)

	rec = do(e, http.MethodPost, "/api/conditions", `{"conditions": [["Person", "WORKS_AT", "NonExistentCompany"]]}`, masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decode(t, rec)["matches"])

	rec = do(e, http.MethodPost, "/api/conditions", `{"conditions": [["Person", "WORKS_AT", "x"], ["Person"]]}`, masterKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_format", decode(t, rec)["kind"])

	rec = do(e, http.MethodPost, "/api/conditions", `{"conditions": []}`, masterKey)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPeopleRoutes(t *testing.T) {
	e := newTestServer(t, &stubClient{}, masterKey)

	rec := do(e, http.MethodGet, "/api/people?offset=1&limit=1", "", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(3), body["total"])
	people := body["people"].([]any)
	require.Len(t, people, 1)
	assert.Equal(t, "Nick Ramos", people[0].(map[string]any)["name"])

	rec = do(e, http.MethodGet, "/api/people/cesar-figueiredo", "", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shopify", decode(t, rec)["company"])

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/people/nobody", "", masterKey).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/people?limit=-1", "", masterKey).Code)
}

func TestLabels(t *testing.T) {
	e := newTestServer(t, &stubClient{}, masterKey)

	rec := do(e, http.MethodGet, "/api/labels/speaks", "", masterKey)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "SPEAKS", body["relation"])
	assert.Equal(t, []any{"Arabic", "English", "Spanish", "Portuguese", "Japanese"}, body["labels"])

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/labels/LIKES", "", masterKey).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/stats", "", masterKey).Code)
}
