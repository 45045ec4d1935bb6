package embedder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const embedRetries = 2

// OllamaEmbedder calls the Ollama /api/embed endpoint.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates an embedder targeting the given Ollama instance.
func NewOllama(baseURL, model string) *OllamaEmbedder {
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Model returns the configured model name.
func (e *OllamaEmbedder) Model() string { return e.model }

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed sends a batch of texts to Ollama and returns their embeddings in
// input order. Transient request failures are retried with a short backoff.
func (e *OllamaEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= embedRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		embeddings, err := e.post(body, len(texts))
		if err == nil {
			return embeddings, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (e *OllamaEmbedder) post(body []byte, want int) ([][]float32, error) {
	resp, err := e.client.Post(e.baseURL+"/api/embed", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama embed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama embed returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(result.Embeddings) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(result.Embeddings))
	}
	return result.Embeddings, nil
}

// EmbedSingle embeds a single text and returns the embedding vector.
func (e *OllamaEmbedder) EmbedSingle(text string) ([]float32, error) {
	results, err := e.Embed([]string{text})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}
