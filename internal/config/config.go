package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the application configuration
type Config struct {
	API    APIConfig    `toml:"api"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// APIConfig describes the task backend the client talks to
type APIConfig struct {
	BaseURL   string          `toml:"base_url"`
	Endpoints EndpointsConfig `toml:"endpoints"`
}

// EndpointsConfig holds the path templates below the base URL.
// "{id}" is replaced with the escaped task identifier.
type EndpointsConfig struct {
	Create       string `toml:"create"`
	List         string `toml:"list"`
	Get          string `toml:"get"`
	Update       string `toml:"update"`
	UpdateMethod string `toml:"update_method"`
	Delete       string `toml:"delete"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// ServerConfig holds settings for the bundled development backend
type ServerConfig struct {
	Addr     string `toml:"addr"`
	Database string `toml:"database"`
}

// DefaultEndpoints returns the endpoint layout of the reference backend
func DefaultEndpoints() EndpointsConfig {
	return EndpointsConfig{
		Create:       "/registrar",
		List:         "/buscarTodos",
		Get:          "/buscarPorTarefa/{id}",
		Update:       "/atualizar/{id}",
		UpdateMethod: http.MethodPut,
		Delete:       "/deletar/{id}",
	}
}

// Default returns the default configuration
func Default() *Config {
	dir := configDir()
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8081/tarefa",
			Endpoints: DefaultEndpoints(),
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "tarefas.log"),
		},
		Server: ServerConfig{
			Addr:     ":8081",
			Database: filepath.Join(dir, "tarefas.db"),
		},
	}
}

func configDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "tarefas-tui")
}

// Path returns the standard config file location
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tarefas-tui", "config.toml"), nil
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Log.Path = expandPath(cfg.Log.Path)
	cfg.Server.Database = expandPath(cfg.Server.Database)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail on first use
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: missing host", c.API.BaseURL)
	}

	switch strings.ToUpper(c.API.Endpoints.UpdateMethod) {
	case http.MethodPut, http.MethodPost, http.MethodPatch:
	default:
		return fmt.Errorf("invalid api.endpoints.update_method %q", c.API.Endpoints.UpdateMethod)
	}

	ep := c.API.Endpoints
	for name, path := range map[string]string{
		"create": ep.Create,
		"list":   ep.List,
		"get":    ep.Get,
		"update": ep.Update,
		"delete": ep.Delete,
	} {
		if path == "" {
			return fmt.Errorf("api.endpoints.%s must not be empty", name)
		}
	}
	for name, path := range map[string]string{"get": ep.Get, "update": ep.Update, "delete": ep.Delete} {
		if !strings.Contains(path, "{id}") {
			return fmt.Errorf("api.endpoints.%s %q must contain {id}", name, path)
		}
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
