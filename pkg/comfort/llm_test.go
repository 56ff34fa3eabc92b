package comfort

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, content string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientComplete(t *testing.T) {
	var req chatRequest
	srv := chatServer(t, "  마음을 알아주고 싶어요.  ", &req)
	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1/"), WithModel("test-model"))

	got, err := c.Complete(context.Background(), Prompt{System: "sys", User: "user", Temperature: 0.6, MaxTokens: 160})
	require.NoError(t, err)
	assert.Equal(t, "마음을 알아주고 싶어요.", got)

	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, 0.6, req.Temperature)
	assert.Equal(t, int64(160), req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "sys", req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "user", req.Messages[1].Content)
}

func TestClientEmptyReply(t *testing.T) {
	srv := chatServer(t, "   ", nil)
	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1/"))

	_, err := c.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrRequest)
}

func TestClientNotConfigured(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL+"/v1/"))
	_, err := c.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1/"))
	_, err := c.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrRequest)
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1/"), WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := c.Complete(context.Background(), Prompt{User: "hi"})
	assert.ErrorIs(t, err, ErrRequest)
	assert.Less(t, time.Since(start), time.Second)
}
