package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innerlight/internal/app"
)

func TestCompleteSendsRequestAndParsesResponse(t *testing.T) {
	var got chatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"  hello there  "}}]}`)
	}))
	defer upstream.Close()

	c := New(Config{APIKey: "test-key", BaseURL: upstream.URL + "/v1", Model: "test-model"})

	out, err := c.Complete(context.Background(), app.CompletionRequest{
		Messages:    []app.Message{{Role: "user", Content: "hi"}},
		Temperature: 0.3,
		JSONObject:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.3, got.Temperature)
	assert.False(t, got.Stream)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestCompleteUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	c := New(Config{APIKey: "test-key", BaseURL: upstream.URL})

	_, err := c.Complete(context.Background(), app.CompletionRequest{
		Messages: []app.Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestCompleteMissingAPIKey(t *testing.T) {
	c := New(Config{})
	_, err := c.Complete(context.Background(), app.CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestStreamRelaysDeltas(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"once \"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"upon \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a time\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	c := New(Config{APIKey: "test-key", BaseURL: upstream.URL})

	fragments, errc := c.Stream(context.Background(), app.CompletionRequest{
		Messages: []app.Message{{Role: "user", Content: "tell me a story"}},
	})

	var collected []string
	for f := range fragments {
		collected = append(collected, f)
	}
	require.NoError(t, <-errc)
	assert.Equal(t, []string{"once ", "upon ", "a time"}, collected)
}

func TestStreamUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c := New(Config{APIKey: "test-key", BaseURL: upstream.URL})

	fragments, errc := c.Stream(context.Background(), app.CompletionRequest{})
	for range fragments {
		t.Error("received fragment from failed stream")
	}
	require.Error(t, <-errc)
}
