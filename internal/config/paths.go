package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "west-mcp"

// Paths contains the standard paths for west-mcp files.
type Paths struct {
	Config string // ~/.config/west-mcp
	State  string // ~/.local/state/west-mcp
}

// GetPaths returns the standard paths for west-mcp files.
func GetPaths() *Paths {
	return &Paths{
		Config: filepath.Join(getEnvOrDefault("XDG_CONFIG_HOME", defaultConfigHome()), appName),
		State:  filepath.Join(getEnvOrDefault("XDG_STATE_HOME", defaultStateHome()), appName),
	}
}

// LogDir returns the directory log files are written to.
func (p *Paths) LogDir() string {
	return filepath.Join(p.State, "logs")
}

// GlobalConfigPath returns the path to the global config file.
func (p *Paths) GlobalConfigPath() string {
	return filepath.Join(p.Config, appName+".jsonc")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultConfigHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func defaultStateHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}
