package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/config"
	"github.com/cinelogapp/cinelog-server/internal/logger"
	"github.com/cinelogapp/cinelog-server/internal/memory"
)

// ProvideEmbedder provides the Ollama embedding client.
func ProvideEmbedder(i do.Injector) (*memory.OllamaEmbedder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	embedder := memory.NewOllamaEmbedder(
		cfg.Embedding.Endpoint,
		cfg.Embedding.Model,
		cfg.Embedding.Timeout,
		log.Logger,
	)

	log.Info("Embedder configured",
		"endpoint", cfg.Embedding.Endpoint,
		"model", cfg.Embedding.Model,
	)

	return embedder, nil
}

// MemoryStoreHandle wraps the memory store with shutdown capability.
type MemoryStoreHandle struct {
	*memory.Store
}

// Shutdown implements do.Shutdownable.
func (h *MemoryStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideMemoryStore provides the badger-backed semantic memory store.
func ProvideMemoryStore(i do.Injector) (*MemoryStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	embedder := do.MustInvoke[*memory.OllamaEmbedder](i)

	path := cfg.MemoryPath()
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create memory directory: %w", err)
	}

	store, err := memory.Open(path, embedder, log.Logger)
	if err != nil {
		return nil, err
	}

	return &MemoryStoreHandle{Store: store}, nil
}
