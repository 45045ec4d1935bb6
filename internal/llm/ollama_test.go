package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatOK(w http.ResponseWriter, content string) {
	json.NewEncoder(w).Encode(chatResponse{
		Message: Message{Role: "assistant", Content: content},
	})
}

func TestGenerateSendsConversation(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		chatOK(w, "hello")
	}))
	defer srv.Close()

	c := NewOllamaChat(srv.URL, "qwen3:8b")
	answer, err := c.Generate([]Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", answer)
	assert.Equal(t, "qwen3:8b", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestGenerateRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "model is loading", http.StatusInternalServerError)
			return
		}
		chatOK(w, "recovered")
	}))
	defer srv.Close()

	c := NewOllamaChat(srv.URL, "m")
	answer, err := c.Generate([]Message{{Role: "user", Content: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
