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

// Package store provides key-addressed blob storage for the synced article
// list and the watermark file.
//
// Two interchangeable backends implement the same contract: a local
// directory (atomic write-to-temp-and-rename) and a file in a GitHub
// repository (read via the GraphQL blob query, write via the
// createCommitOnBranch mutation so every sync leaves a commit). The sync
// engine is backend-agnostic; the backend is selected by configuration.
package store
