package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081/tarefa", cfg.API.BaseURL)
	assert.Equal(t, DefaultEndpoints(), cfg.API.Endpoints)
	assert.Equal(t, ":8081", cfg.Server.Addr)
}

func TestLoadFromOverridesSelectedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://tasks.example.com/api/tarefa"

[api.endpoints]
update = "/{id}"
update_method = "POST"

[log]
level = "debug"
path = "~/logs/tarefas.log"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com/api/tarefa", cfg.API.BaseURL)
	assert.Equal(t, "/{id}", cfg.API.Endpoints.Update)
	assert.Equal(t, http.MethodPost, cfg.API.Endpoints.UpdateMethod)
	assert.Equal(t, "/registrar", cfg.API.Endpoints.Create, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)

	homeDir, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(homeDir, "logs", "tarefas.log"), cfg.Log.Path)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad scheme", `[api]
base_url = "ftp://example.com"`},
		{"no host", `[api]
base_url = "http://"`},
		{"bad verb", `[api.endpoints]
update_method = "DELETE"`},
		{"update without id", `[api.endpoints]
update = "/atualizar"`},
		{"malformed toml", `[api`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "http://backend:9000/tarefa"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API, loaded.API)
}
