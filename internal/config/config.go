// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for readsync with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. API tokens are never
// read from the config file itself; the file only names the environment
// variables that carry them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .readsync.yaml (current directory)
//   - .readsync.yml (current directory)
//   - ~/.readsync/config.yaml
//   - ~/.readsync/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on the output directory.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".readsync.yaml",
			".readsync.yml",
			filepath.Join(os.Getenv("HOME"), ".readsync", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".readsync", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Sync.OutputDir = expandPath(cfg.Sync.OutputDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// API endpoints
	if endpoint := os.Getenv("READWISE_API_ENDPOINT"); endpoint != "" {
		cfg.Readwise.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	// Persistence settings
	if backend := os.Getenv("READSYNC_BACKEND"); backend != "" {
		cfg.Sync.Backend = strings.ToLower(strings.TrimSpace(backend))
	}
	if dir := os.Getenv("READSYNC_OUTPUT_DIR"); dir != "" {
		cfg.Sync.OutputDir = dir
	}
	if repo := os.Getenv("READSYNC_GITHUB_REPO"); repo != "" {
		cfg.GitHub.Repository = repo
	}
	if branch := os.Getenv("READSYNC_GITHUB_BRANCH"); branch != "" {
		cfg.GitHub.Branch = branch
	}
	if p := os.Getenv("READSYNC_GITHUB_PATH"); p != "" {
		cfg.GitHub.Path = p
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// ReadwiseToken returns the export API token from the configured
// environment variable.
func (c *Config) ReadwiseToken() string {
	return os.Getenv(c.Readwise.TokenEnv)
}

// GitHubToken returns the GitHub token from the configured environment
// variable.
func (c *Config) GitHubToken() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// Validate checks if the configuration contains valid values. It ensures the
// backend is known, endpoints are not empty, and the github backend has a
// target repository. This should be called after loading configuration to
// catch invalid settings early.
func (c *Config) Validate() error {
	if c.Sync.Backend != BackendLocal && c.Sync.Backend != BackendGitHub {
		return fmt.Errorf("unknown backend %q, expected %q or %q", c.Sync.Backend, BackendLocal, BackendGitHub)
	}
	if c.Readwise.APIEndpoint == "" {
		return fmt.Errorf("readwise API endpoint cannot be empty")
	}
	if c.Sync.ArticlesFile == "" || c.Sync.WatermarkFile == "" {
		return fmt.Errorf("articles_file and watermark_file cannot be empty")
	}
	if c.Sync.Backend == BackendGitHub {
		if c.GitHub.GraphQLEndpoint == "" {
			return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
		}
		if c.GitHub.Repository == "" {
			return fmt.Errorf("github backend requires a repository (owner/repo)")
		}
		if c.GitHub.Branch == "" {
			return fmt.Errorf("github backend requires a branch")
		}
	}
	return nil
}
