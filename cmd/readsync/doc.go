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

// Package main implements the readsync command-line interface.
// This tool synchronizes article highlights from the Readwise export API
// into a deduplicated JSON list, persisted to a local directory or to a
// file in a GitHub repository.
//
// The CLI supports:
//   - Incremental syncs driven by a persisted watermark (default behavior)
//   - Full-history backfills with the --all-time flag
//   - Explicit date-range backfills with --start-date / --end-date
//   - Local-disk or GitHub-repository persistence, selected by --backend
//   - Token authentication via flags or environment variables
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	readsync sync [flags]
//
// Example:
//
//	export READWISE_TOKEN=your_token
//	readsync sync --output-dir ~/readwise-exports
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Configuration/authentication error
//   - 3: Network error
package main
