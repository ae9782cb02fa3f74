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

// Package state persists the sync watermark: the day-granularity timestamp
// of the last successful sync.
//
// The watermark lives next to the article list in whichever blob store the
// tool is configured with, as a small JSON file:
//
//	{"last_update": "2026-08-25"}
//
// Loading fails soft. A missing, unreadable or malformed watermark degrades
// to "absent", which makes the next sync fetch the full history — losing the
// watermark costs one redundant fetch, never data.
package state
