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

// Package readwise provides the client for the Readwise highlight export API.
//
// The export endpoint returns every highlighted document with its metadata in
// one response; the optional updated_after and updated_before parameters
// restrict the result set to documents updated inside that window. This tool
// deliberately issues a single unpaginated request per sync — the incremental
// window keeps responses small, and pagination, retries and rate-limit
// handling are out of scope.
package readwise
