package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/logger"
	"github.com/cinelogapp/cinelog-server/internal/service"
)

// ProvideMemoryService provides the semantic memory service and wires the
// keyword index into the memory store for automatic indexing on upsert.
// When the index was recreated on open (mapping bump or corruption), it is
// repopulated from the memory store before the service goes live.
func ProvideMemoryService(i do.Injector) (*service.MemoryService, error) {
	storeHandle := do.MustInvoke[*MemoryStoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	libraryHandle := do.MustInvoke[*LibraryStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	storeHandle.SetSearchIndexer(indexHandle.Index)

	if indexHandle.Index.NeedsReindex() {
		recs, err := storeHandle.All(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load records for reindex: %w", err)
		}
		if err := indexHandle.Index.IndexBatch(context.Background(), recs); err != nil {
			return nil, fmt.Errorf("repopulate search index: %w", err)
		}
		log.Info("search index repopulated", "records", len(recs))
	}

	return service.NewMemoryService(storeHandle.Store, indexHandle.Index, libraryHandle.Store, log.Logger), nil
}

// ProvideDiscoveryService provides the discovery aggregator.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	client := do.MustInvoke[*tmdb.Client](i)
	libraryHandle := do.MustInvoke[*LibraryStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiscoveryService(client, libraryHandle.Store, log.Logger), nil
}

// ProvideLibraryService provides the watchlist/review service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	libraryHandle := do.MustInvoke[*LibraryStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(libraryHandle.Store, log.Logger), nil
}
