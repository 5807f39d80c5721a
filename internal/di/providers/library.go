package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/config"
	"github.com/cinelogapp/cinelog-server/internal/logger"
	"github.com/cinelogapp/cinelog-server/internal/store/sqlite"
)

// LibraryStoreHandle wraps the sqlite library store with shutdown capability.
type LibraryStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *LibraryStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideLibraryStore provides the sqlite watchlist/reviews store.
func ProvideLibraryStore(i do.Injector) (*LibraryStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := sqlite.Open(cfg.LibraryDBPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	return &LibraryStoreHandle{Store: store}, nil
}
