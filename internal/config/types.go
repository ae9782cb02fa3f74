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

// Package config types define the configuration structures used throughout
// readsync. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Backend names accepted by SyncConfig.Backend.
const (
	BackendLocal  = "local"
	BackendGitHub = "github"
)

// Config represents the complete configuration for readsync. It consolidates
// settings from various sources and provides a unified interface for
// accessing configuration values throughout the application.
type Config struct {
	Readwise ReadwiseConfig `yaml:"readwise"`
	GitHub   GitHubConfig   `yaml:"github"`
	Sync     SyncConfig     `yaml:"sync"`
}

// ReadwiseConfig contains export API settings. The token itself never lives
// in the config file; TokenEnv names the environment variable that holds it.
type ReadwiseConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// GitHubConfig contains settings for the GitHub-backed store: the GraphQL
// endpoint (replaceable for GitHub Enterprise), the token environment
// variable, and the target repository and branch.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
	Repository      string `yaml:"repository"`
	Branch          string `yaml:"branch"`

	// Path is the directory inside the repository that holds the synced
	// files. Empty means the repository root.
	Path string `yaml:"path"`
}

// SyncConfig controls where and how the synced files are persisted.
type SyncConfig struct {
	// Backend selects the persistence adapter: "local" or "github".
	Backend string `yaml:"backend"`

	// OutputDir is the base directory of the local backend.
	OutputDir string `yaml:"output_dir"`

	// ArticlesFile and WatermarkFile are the file names written under
	// OutputDir. Both have defaults matching the published file contract.
	ArticlesFile  string `yaml:"articles_file"`
	WatermarkFile string `yaml:"watermark_file"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases: the public Readwise API, the public GitHub GraphQL endpoint,
// and a local export directory under the platform data dir.
func DefaultConfig() *Config {
	return &Config{
		Readwise: ReadwiseConfig{
			APIEndpoint: "https://readwise.io/api/v2",
			TokenEnv:    "READWISE_TOKEN",
		},
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
			Branch:          "main",
		},
		Sync: SyncConfig{
			Backend:       BackendLocal,
			OutputDir:     filepath.Join(xdg.DataHome, "readsync"),
			ArticlesFile:  "articles.json",
			WatermarkFile: "last_update.json",
		},
	}
}
