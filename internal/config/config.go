package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	WorkspaceRoot string `yaml:"workspace_root"`
	AgentCommand  string `yaml:"agent_command"`
	MergeBackend  string `yaml:"merge_backend"`
	LogLevel      string `yaml:"log_level"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/remerge/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		AgentCommand: "node",
		MergeBackend: "diff3",
		LogLevel:     "info",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// Load ~/.config/remerge/config.yaml if it exists; it is optional so
	// a missing file is not an error.
	_ = loadYAMLConfig(cfg)

	// Override with environment variables
	if root := os.Getenv("REMERGE_WORKSPACE_ROOT"); root != "" {
		cfg.WorkspaceRoot = root
	}
	if command := os.Getenv("REMERGE_AGENT_COMMAND"); command != "" {
		cfg.AgentCommand = command
	}
	if backend := os.Getenv("REMERGE_MERGE_BACKEND"); backend != "" {
		cfg.MergeBackend = backend
	}
	if logLevel := os.Getenv("REMERGE_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

// loadYAMLConfig loads configuration from ~/.config/remerge/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "remerge", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, just check cwd
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Clean paths for reliable comparison
	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		// Stop if we've reached home directory
		if dir == homeDir {
			break
		}

		// Get parent directory
		parent := filepath.Dir(dir)

		// Stop if we've reached the filesystem root
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
