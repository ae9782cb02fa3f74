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

// Package sync implements the incremental synchronization engine.
//
// Each invocation runs the pipeline once, strictly sequentially: decide the
// fetch window from the caller's options and the stored watermark, fetch
// highlights from the export API, keep the article-category records, merge
// them into the persisted list without duplicates, write the list back, and
// finally advance the watermark — but only when the run used the implicit
// incremental path. Explicit backfills (--all-time or a date range) never
// move the watermark, so out-of-band runs cannot disturb the steady-state
// cadence.
//
// The watermark only advances after the merged list has been persisted.
// A failed write therefore leaves the watermark where it was and the next
// run re-fetches the same window.
package sync
