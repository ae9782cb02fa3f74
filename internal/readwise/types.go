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

package readwise

import "time"

// ExportResult is a single highlighted document as returned by the export
// endpoint. Title and SourceURL are pointers because the API omits the fields
// entirely for some document types, and an absent title is handled
// differently from an empty one.
type ExportResult struct {
	Category  string  `json:"category"`
	Title     *string `json:"title"`
	SourceURL *string `json:"source_url"`
}

// ExportPage is the export endpoint's response envelope. The cursor for
// subsequent pages is intentionally not modeled; this tool fetches a single
// page per sync.
type ExportPage struct {
	Results []ExportResult `json:"results"`
}

// ExportOptions restricts the export to documents updated inside a window.
// Zero times mean the corresponding bound is unset. Both bounds are sent to
// the API as full RFC 3339 timestamps.
type ExportOptions struct {
	// UpdatedAfter is the inclusive lower bound of the window.
	UpdatedAfter time.Time

	// UpdatedBefore is the upper bound of the window.
	UpdatedBefore time.Time
}
