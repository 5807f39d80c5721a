package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	"github.com/cinelogapp/cinelog-server/internal/config"
	"github.com/cinelogapp/cinelog-server/internal/logger"
)

// ProvideTMDBClient provides the TMDB catalog client.
// An empty API key is allowed: local-only flows keep working and remote
// lookups fail with a configuration error instead of a network call.
func ProvideTMDBClient(i do.Injector) (*tmdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := tmdb.New(cfg.Catalog.APIKey, log.Logger,
		tmdb.WithProviderRegion(cfg.Catalog.ProviderRegion),
	)

	if !client.Configured() {
		log.Warn("TMDB_API_KEY is not set; catalog lookups will fail until configured")
	}

	return client, nil
}
