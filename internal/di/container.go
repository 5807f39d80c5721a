// Package di provides dependency injection configuration for the CineLog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/config"
	"github.com/cinelogapp/cinelog-server/internal/di/providers"
	"github.com/cinelogapp/cinelog-server/internal/logger"
	"github.com/cinelogapp/cinelog-server/internal/memory"
	"github.com/cinelogapp/cinelog-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideEmbedder)
	do.Provide(injector, providers.ProvideMemoryStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideLibraryStore)

	// Remote catalog
	do.Provide(injector, providers.ProvideTMDBClient)

	// Business services
	do.Provide(injector, providers.ProvideMemoryService)
	do.Provide(injector, providers.ProvideDiscoveryService)
	do.Provide(injector, providers.ProvideLibraryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*memory.OllamaEmbedder](injector)
	_ = do.MustInvoke[*providers.MemoryStoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.LibraryStoreHandle](injector)
	_ = do.MustInvoke[*tmdb.Client](injector)

	_ = do.MustInvoke[*service.MemoryService](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
