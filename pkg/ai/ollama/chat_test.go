package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OFFIS-RIT/peoplegraph/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3",
			"message":           map[string]any{"role": "assistant", "content": content},
			"done":              true,
			"prompt_eval_count": 30,
			"eval_count":        12,
			"total_duration":    int64(2_000_000_000),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateCompletion(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, `[("Person", "SPEAKS", "Japanese")]`, &seen)

	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{
		ChatModel:             "llama3",
		BaseURL:               srv.URL,
		MaxConcurrentRequests: 2,
	})
	require.NoError(t, err)

	out, err := client.GenerateCompletion(context.Background(), "Who speaks Japanese?",
		ai.WithSystemPrompts(ai.ConditionSystemPrompt),
		ai.WithTemperature(0.1),
	)
	require.NoError(t, err)
	assert.Equal(t, `[("Person", "SPEAKS", "Japanese")]`, out)

	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "llama3", seen["model"])

	metrics := client.GetMetrics()
	assert.Equal(t, 42, metrics.TotalTokens)
	assert.Equal(t, int64(2000), metrics.DurationMs)
}

func TestGenerateCompletionWithFormat(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, `{"conditions":[["Person","LIVES_IN","Canada"]],"error":""}`, &seen)

	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{ChatModel: "llama3", BaseURL: srv.URL})
	require.NoError(t, err)

	var out struct {
		Conditions [][]string `json:"conditions"`
		Error      string     `json:"error"`
	}
	require.NoError(t, client.GenerateCompletionWithFormat(context.Background(), "conditions", "", "Find people in Canada", &out))
	assert.Equal(t, [][]string{{"Person", "LIVES_IN", "Canada"}}, out.Conditions)
	assert.NotNil(t, seen["format"])

	err = client.GenerateCompletionWithFormat(context.Background(), "conditions", "", "x", nil)
	assert.Error(t, err)
}
