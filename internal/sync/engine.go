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

package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/readsynchq/readsync/internal/article"
	"github.com/readsynchq/readsync/internal/readwise"
	"github.com/readsynchq/readsync/internal/state"
	"github.com/readsynchq/readsync/internal/store"
)

// DefaultArticlesKey is the blob store key of the persisted article list.
const DefaultArticlesKey = "articles.json"

// dateLayout is the day-granularity format used for watermark comparisons.
const dateLayout = "2006-01-02"

// Options control the fetch window of a single sync invocation.
type Options struct {
	// StartDate, when set, requests an explicit range fetch starting at
	// this date (inclusive). Range fetches never advance the watermark.
	StartDate time.Time

	// EndDate bounds an explicit range fetch; defaults to now when unset.
	// Ignored unless StartDate is set.
	EndDate time.Time

	// AllTime requests a full-history fetch, ignoring the watermark and
	// any explicit range. Never advances the watermark.
	AllTime bool
}

// Result reports the outcome of a sync invocation.
type Result struct {
	// Added lists the articles appended to the persisted list, in fetch order.
	Added []article.Article

	// NewCount is len(Added).
	NewCount int

	// ExistingCount is the number of articles already persisted before this run.
	ExistingCount int

	// UpToDate is true when the run short-circuited because the watermark
	// is today or later. Nothing was fetched and nothing was written.
	UpToDate bool
}

// Engine orchestrates a sync: fetch, filter, merge, persist, watermark.
type Engine struct {
	client      readwise.Client
	blobs       store.BlobStore
	marks       *state.Watermark
	articlesKey string
	now         func() time.Time
	log         *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithArticlesKey overrides the blob store key of the article list.
func WithArticlesKey(key string) EngineOption {
	return func(e *Engine) { e.articlesKey = key }
}

// WithClock overrides the engine's notion of "now". Used in tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// New creates a sync engine over the given export client, blob store and
// watermark store.
func New(client readwise.Client, blobs store.BlobStore, marks *state.Watermark, opts ...EngineOption) *Engine {
	e := &Engine{
		client:      client,
		blobs:       blobs,
		marks:       marks,
		articlesKey: DefaultArticlesKey,
		now:         time.Now,
		log:         slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sync runs one synchronization pass. See the package documentation for the
// pipeline; any failure after the fetch aborts the run without advancing the
// watermark.
func (e *Engine) Sync(ctx context.Context, opts Options) (*Result, error) {
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var fetch readwise.ExportOptions
	advanceWatermark := false

	switch {
	case opts.AllTime:
		// Full-history backfill. Takes precedence over an explicit range.
		e.log.Info("fetching full highlight history", "reason", "all-time requested")

	case !opts.StartDate.IsZero():
		end := opts.EndDate
		if end.IsZero() {
			end = now
		}
		fetch.UpdatedAfter = opts.StartDate
		fetch.UpdatedBefore = end
		e.log.Info("fetching explicit date range",
			"start", opts.StartDate.Format(dateLayout),
			"end", end.Format(dateLayout))

	default:
		watermark, ok := e.marks.Load(ctx)
		if !ok {
			// First run: fetch everything, then start the incremental cadence.
			advanceWatermark = true
			e.log.Info("no previous sync found, fetching full highlight history")
			break
		}
		// Compare calendar dates, not instants: the watermark parses into
		// midnight UTC while today is midnight in the clock's zone, and an
		// instant comparison would defeat the guard west of UTC.
		if watermark.Format(dateLayout) >= today.Format(dateLayout) {
			e.log.Info("already synced today, nothing to do",
				"watermark", watermark.Format(dateLayout))
			return &Result{UpToDate: true}, nil
		}
		fetch.UpdatedAfter = watermark
		advanceWatermark = true
		e.log.Info("fetching highlights updated since last sync",
			"watermark", watermark.Format(dateLayout))
	}

	page, err := e.client.Export(ctx, fetch)
	if err != nil {
		return nil, err
	}

	incoming := article.FromExport(page.Results)
	e.log.Debug("filtered export results",
		"fetched", len(page.Results), "articles", len(incoming))

	existing, err := e.loadExisting(ctx)
	if err != nil {
		return nil, err
	}

	merged, added := article.Merge(existing, incoming)

	data, err := article.Encode(merged)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Sync %d new article(s)", len(added))
	if err := e.blobs.Write(ctx, e.articlesKey, data, message); err != nil {
		return nil, fmt.Errorf("failed to persist article list: %w", err)
	}

	// The watermark moves only after the list is safely persisted, and only
	// on the implicit paths. Explicit backfills leave it untouched.
	if advanceWatermark {
		if err := e.marks.Save(ctx, today); err != nil {
			return nil, err
		}
	}

	e.log.Info("sync complete",
		"new", len(added), "existing", len(existing), "total", len(merged))

	return &Result{
		Added:         added,
		NewCount:      len(added),
		ExistingCount: len(existing),
	}, nil
}

// loadExisting returns the persisted article list. A missing list is an
// empty list, and a corrupted one is logged and treated as empty so a sync
// is never blocked by bad state. A read transport failure is fatal: merging
// against an unreadable list and then writing would silently drop every
// article already persisted.
func (e *Engine) loadExisting(ctx context.Context) ([]article.Article, error) {
	data, found, err := e.blobs.Read(ctx, e.articlesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read article list: %w", err)
	}
	if !found {
		return nil, nil
	}

	existing, err := article.Decode(data)
	if err != nil {
		e.log.Warn("article list is corrupted, treating as empty", "error", err)
		return nil, nil
	}
	return existing, nil
}
