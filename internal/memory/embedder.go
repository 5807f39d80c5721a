package memory

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainerrors "github.com/cinelogapp/cinelog-server/internal/errors"
)

// Embedder turns text into a vector. Implementations must use the same model
// for memorization and querying; mixing models silently breaks similarity
// ranking.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	defaultEmbedTimeout = 30 * time.Second
)

// OllamaEmbedder computes embeddings via a local Ollama server's
// /api/embeddings endpoint. The default model (all-minilm) matches the
// sentence-transformer family used for the original plot memory.
type OllamaEmbedder struct {
	http     *http.Client
	endpoint string
	model    string
	logger   *slog.Logger
}

// NewOllamaEmbedder creates an embedder client.
// endpoint is the server base URL (e.g. http://localhost:11434).
func NewOllamaEmbedder(endpoint, model string, timeout time.Duration, logger *slog.Logger) *OllamaEmbedder {
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}
	return &OllamaEmbedder{
		http:     &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		logger:   logger,
	}
}

// Embed implements Embedder. Any transport or model failure is an
// embedding-unavailable error and must propagate: swallowing it would make
// similarity search return stale or empty results with no diagnosis.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]string{
		"model":  e.model,
		"prompt": text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/api/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeEmbedding, "embedding server unreachable at %s", e.endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeEmbedding, "read embedding response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.Wrapf(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			domainerrors.CodeEmbedding,
			"embedding model %q failed", e.model,
		)
	}

	var parsed struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeEmbedding, "parse embedding response")
	}
	if len(parsed.Embedding) == 0 {
		return nil, domainerrors.Embedding("embedding server returned an empty vector")
	}

	e.logger.Debug("embedded text", "model", e.model, "dims", len(parsed.Embedding))
	return parsed.Embedding, nil
}
