package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	memHealth := s.checkMemory(ctx)
	components["memory"] = memHealth
	if memHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	libHealth := s.checkLibrary(ctx)
	components["library"] = libHealth
	if libHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkMemory verifies the semantic memory store is accessible.
func (s *Server) checkMemory(ctx context.Context) ComponentHealth {
	if s.services == nil || s.services.Memory == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "memory service not configured",
		}
	}

	start := time.Now()
	_, err := s.services.Memory.Count(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "memory store read failed",
		}
	}
	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkLibrary verifies the watchlist database is accessible.
func (s *Server) checkLibrary(ctx context.Context) ComponentHealth {
	if s.services == nil || s.services.Library == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "library service not configured",
		}
	}

	start := time.Now()
	_, err := s.services.Library.Watchlist(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "library read failed",
		}
	}
	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}
