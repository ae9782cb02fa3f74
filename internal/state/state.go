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

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/readsynchq/readsync/internal/store"
)

// dateLayout is the serialization format of the watermark date.
const dateLayout = "2006-01-02"

// watermarkFile is the persisted watermark payload.
type watermarkFile struct {
	LastUpdate string `json:"last_update"`
}

// Watermark stores the date of the last successful sync in a blob store.
type Watermark struct {
	blobs store.BlobStore
	key   string
	log   *slog.Logger
}

// NewWatermark creates a watermark store persisting under key in blobs.
func NewWatermark(blobs store.BlobStore, key string, log *slog.Logger) *Watermark {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Watermark{blobs: blobs, key: key, log: log}
}

// Load returns the stored watermark date, or ok=false if none is stored.
// Read failures and malformed payloads are logged and treated as absent;
// Load never fails a sync.
func (w *Watermark) Load(ctx context.Context) (time.Time, bool) {
	data, found, err := w.blobs.Read(ctx, w.key)
	if err != nil {
		w.log.Warn("failed to read watermark, treating as absent", "key", w.key, "error", err)
		return time.Time{}, false
	}
	if !found {
		return time.Time{}, false
	}

	var payload watermarkFile
	if err := json.Unmarshal(data, &payload); err != nil {
		w.log.Warn("watermark is corrupted, treating as absent", "key", w.key, "error", err)
		return time.Time{}, false
	}

	day, err := time.Parse(dateLayout, payload.LastUpdate)
	if err != nil {
		w.log.Warn("watermark date is malformed, treating as absent", "key", w.key, "value", payload.LastUpdate, "error", err)
		return time.Time{}, false
	}

	return day, true
}

// Save overwrites the stored watermark with the given date, truncated to day
// granularity. Atomicity is the blob store's concern.
func (w *Watermark) Save(ctx context.Context, day time.Time) error {
	payload := watermarkFile{LastUpdate: day.Format(dateLayout)}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal watermark: %w", err)
	}

	if err := w.blobs.Write(ctx, w.key, data, "Update sync watermark"); err != nil {
		return fmt.Errorf("failed to save watermark: %w", err)
	}

	return nil
}
