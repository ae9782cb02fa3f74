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

// Package article defines the article record retained from synced highlights
// and the pure transformations over it: title normalization, the category
// filter applied to export results, and the duplicate-safe merge.
package article

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/readsynchq/readsync/internal/readwise"
)

// categoryArticles is the only export category retained; everything else is
// silently dropped.
const categoryArticles = "articles"

// defaultTitle is used when an export result carries no title field at all.
const defaultTitle = "Untitled"

// Article is the subset of a highlight's metadata kept by this tool.
// The (Title, URL) pair uniquely identifies an article within the
// persisted list.
type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NormalizeTitle collapses every run of whitespace (including newlines) into
// a single space and trims the result.
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FromExport converts raw export results into article records, keeping only
// results in the "articles" category (case-insensitive). A missing title
// defaults to "Untitled"; a missing source URL defaults to the empty string.
// Relative order of kept results is preserved.
func FromExport(results []readwise.ExportResult) []Article {
	var articles []Article
	for _, r := range results {
		if !strings.EqualFold(r.Category, categoryArticles) {
			continue
		}

		title := defaultTitle
		if r.Title != nil {
			title = *r.Title
		}

		url := ""
		if r.SourceURL != nil {
			url = *r.SourceURL
		}

		articles = append(articles, Article{
			Title: NormalizeTitle(title),
			URL:   url,
		})
	}
	return articles
}

// Merge unions incoming articles into existing ones. An incoming article is
// appended only if no existing article shares both its title and URL.
// Existing articles keep their positions; additions append in incoming order.
// The second return value lists exactly the articles that were appended.
func Merge(existing, incoming []Article) (merged, added []Article) {
	seen := make(map[Article]struct{}, len(existing))
	for _, a := range existing {
		seen[a] = struct{}{}
	}

	merged = existing
	for _, a := range incoming {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		merged = append(merged, a)
		added = append(added, a)
	}
	return merged, added
}

// Encode serializes an article list as an indented JSON array. HTML escaping
// is disabled so URLs and non-ASCII titles stay readable in the file.
func Encode(articles []Article) ([]byte, error) {
	if articles == nil {
		articles = []Article{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return nil, fmt.Errorf("failed to encode article list: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a persisted article list.
func Decode(data []byte) ([]Article, error) {
	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("article list is corrupted (invalid JSON): %w", err)
	}
	return articles, nil
}
