package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhav-sp/All-ai-models/pkg/llm"
)

func TestCreateCompletion(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}],"usage":{"total_tokens":5}}`))
	}))
	defer server.Close()

	client := New(server.URL, "sk-test")
	completion, err := client.CreateCompletion(context.Background(), "m1", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "m1", gotPayload["model"])

	// Generation bounds ride along as fixed constants
	assert.Equal(t, float64(defaultMaxTokens), gotPayload["max_tokens"])
	assert.Equal(t, defaultTemperature, gotPayload["temperature"])

	require.Len(t, completion.Choices, 1)
	assert.Equal(t, "hello", completion.Choices[0].Message.Content)
	assert.JSONEq(t, `{"total_tokens":5}`, string(completion.Usage))
}

func TestCreateCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"auth_error"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "sk-bad")
	_, err := client.CreateCompletion(context.Background(), "m1", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad key", apiErr.Message)
	assert.Equal(t, "auth_error", apiErr.Type)
}

func TestCreateCompletionNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := New(server.URL, "sk-test")
	_, err := client.CreateCompletion(context.Background(), "m1", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[{"id":"a","name":"Model A"},{"id":"b"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "sk-test")
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, llm.Model{ID: "a", Name: "Model A"}, models[0])
	assert.Equal(t, llm.Model{ID: "b"}, models[1])
}

func TestListModelsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "sk-test")
	_, err := client.ListModels(context.Background())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClassification(t *testing.T) {
	assert.True(t, IsAuth(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsAuth(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsAuth(&APIError{StatusCode: http.StatusInternalServerError}))

	assert.True(t, IsRateLimit(&APIError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRateLimit(&APIError{StatusCode: http.StatusUnauthorized}))

	// Transport errors are neither auth nor rate-limit failures
	assert.False(t, IsAuth(context.DeadlineExceeded))
	assert.False(t, IsRateLimit(context.DeadlineExceeded))
}

func TestCompletionResultDefaults(t *testing.T) {
	// Missing role defaults to assistant, missing content stays an empty
	// string, missing usage becomes an empty object.
	empty := &Completion{}
	result := empty.Result()
	assert.Equal(t, llm.RoleAssistant, result.Message.Role)
	assert.Equal(t, "", result.Message.Content)
	assert.JSONEq(t, `{}`, string(result.Usage))

	full := &Completion{Usage: json.RawMessage(`{"tokens":5}`)}
	full.Choices = append(full.Choices, struct {
		Message llm.Message `json:"message"`
	}{Message: llm.Message{Role: llm.RoleAssistant, Content: "hello"}})

	result = full.Result()
	assert.Equal(t, "hello", result.Message.Content)
	assert.JSONEq(t, `{"tokens":5}`, string(result.Usage))
}
