package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path"},
		Embedding: EmbeddingConfig{
			Endpoint: "http://localhost:11434",
			Model:    "all-minilm",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level %q", level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingAPIKeyIsAllowed(t *testing.T) {
	// Local-only flows work without a TMDB credential; the catalog client
	// rejects remote calls itself.
	cfg := validConfig()
	cfg.Catalog.APIKey = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmbeddingEndpointRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Endpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestDerivedPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = "/data"

	assert.Equal(t, filepath.Join("/data", "memory"), cfg.MemoryPath())
	assert.Equal(t, filepath.Join("/data", "search"), cfg.SearchPath())
	assert.Equal(t, filepath.Join("/data", "library.db"), cfg.LibraryDBPath())
}
