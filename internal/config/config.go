package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// Transports the server can listen on.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Config holds west-mcp settings.
type Config struct {
	// Binary is the west executable, a name looked up on PATH or a path.
	Binary string `json:"binary,omitempty"`
	// WorkDir is the working directory for west; "" inherits ours.
	WorkDir string `json:"workdir,omitempty"`
	// Env is added to the environment of every west process.
	Env           map[string]string `json:"env,omitempty"`
	LogLevel      string            `json:"logLevel,omitempty"`
	LogToFile     bool              `json:"logToFile,omitempty"`
	DisabledTools []string          `json:"disabledTools,omitempty"`
	Transport     string            `json:"transport,omitempty"`
	Address       string            `json:"address,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Binary:    "west",
		LogLevel:  "INFO",
		Transport: TransportStdio,
		Address:   "127.0.0.1:8080",
	}
}

var envPattern = regexp.MustCompile(`\{env:([^}]+)\}`)

// Load reads configuration for the given working directory.
func Load(fsys afero.Fs, directory string) (*Config, error) {
	config := Default()

	dotenv, err := readDotenv(fsys, filepath.Join(directory, ".env"))
	if err != nil {
		return nil, err
	}
	getenv := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	loaded := make(map[string]bool)
	loadOnce := func(path string) error {
		if path == "" || loaded[path] {
			return nil
		}
		loaded[path] = true
		return loadConfigFile(fsys, path, config, getenv)
	}

	// 1. Global config
	if err := loadOnce(GetPaths().GlobalConfigPath()); err != nil {
		return nil, err
	}

	// 2. Project config
	if directory != "" {
		for _, name := range []string{"west-mcp.json", "west-mcp.jsonc"} {
			if err := loadOnce(filepath.Join(directory, name)); err != nil {
				return nil, err
			}
		}
	}

	// 3. WEST_MCP_CONFIG file override
	if path := getenv("WEST_MCP_CONFIG"); path != "" {
		if exists, _ := afero.Exists(fsys, path); !exists {
			return nil, fmt.Errorf("config file %s from WEST_MCP_CONFIG does not exist", path)
		}
		if err := loadOnce(path); err != nil {
			return nil, err
		}
	}

	// 4. Environment variables
	applyEnvOverrides(config, getenv)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// readDotenv parses a .env file. A missing file yields an empty map.
func readDotenv(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

// loadConfigFile merges one config file. A missing file is skipped.
func loadConfigFile(fsys afero.Fs, path string, config *Config, getenv func(string) string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	// Strip JSONC comments using tidwall/jsonc
	data = jsonc.ToJSON(data)

	data = envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		value, _ := json.Marshal(getenv(string(name)))
		// Drop the surrounding quotes; the placeholder sits inside a string.
		return value[1 : len(value)-1]
	})

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	mergeConfig(config, &fileConfig)
	return nil
}

// mergeConfig merges source config into target.
func mergeConfig(target, source *Config) {
	if source.Binary != "" {
		target.Binary = source.Binary
	}
	if source.WorkDir != "" {
		target.WorkDir = source.WorkDir
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
	}
	if source.LogToFile {
		target.LogToFile = true
	}
	if source.Transport != "" {
		target.Transport = source.Transport
	}
	if source.Address != "" {
		target.Address = source.Address
	}

	// Merge env
	if source.Env != nil {
		if target.Env == nil {
			target.Env = make(map[string]string)
		}
		for k, v := range source.Env {
			target.Env[k] = v
		}
	}

	// Merge disabled tools
	for _, name := range source.DisabledTools {
		if !slices.Contains(target.DisabledTools, name) {
			target.DisabledTools = append(target.DisabledTools, name)
		}
	}
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(config *Config, getenv func(string) string) {
	if v := getenv("WEST_MCP_BINARY"); v != "" {
		config.Binary = v
	}
	if v := getenv("WEST_MCP_WORKDIR"); v != "" {
		config.WorkDir = v
	}
	if v := getenv("WEST_MCP_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := getenv("WEST_MCP_TRANSPORT"); v != "" {
		config.Transport = v
	}
	if v := getenv("WEST_MCP_ADDRESS"); v != "" {
		config.Address = v
	}
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q (want stdio, sse or http)", c.Transport)
	}
	if c.Binary == "" {
		return fmt.Errorf("binary must not be empty")
	}
	return nil
}
