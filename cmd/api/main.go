// Package main provides the entry point for the CineLog server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/cinelogapp/cinelog-server/internal/di"
	"github.com/cinelogapp/cinelog-server/internal/di/providers"
	"github.com/cinelogapp/cinelog-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// Storage handles use wrapper types; close them explicitly in case the
	// container missed them.
	if memHandle, err := do.Invoke[*providers.MemoryStoreHandle](injector); err == nil {
		if err := memHandle.Shutdown(); err != nil {
			log.Error("Failed to close memory store", "error", err)
		}
	}
	if searchHandle, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
		if err := searchHandle.Shutdown(); err != nil {
			log.Error("Failed to close search index", "error", err)
		}
	}
	if libHandle, err := do.Invoke[*providers.LibraryStoreHandle](injector); err == nil {
		if err := libHandle.Shutdown(); err != nil {
			log.Error("Failed to close library store", "error", err)
		}
	}

	log.Info("Roll credits.")
}
