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

// Package apierror classifies errors returned by the external services this
// tool talks to (the Readwise export API and the GitHub GraphQL API).
//
// Neither API returns structured error types through the HTTP client layer,
// so classification falls back to inspecting the error text. The
// ErrorChainInspector additionally honors typed errors anywhere in the chain
// via errors.As, letting adapters attach precise classifications when they
// have them.
package apierror
