package api

import (
	"github.com/cinelogapp/cinelog-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Memory    *service.MemoryService
	Discovery *service.DiscoveryService
	Library   *service.LibraryService
}
