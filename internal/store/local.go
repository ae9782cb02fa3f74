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

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local stores blobs as files under a base directory.
type Local struct {
	dir string
}

// NewLocal creates a local-directory blob store rooted at dir. The directory
// is created lazily on the first write.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Read returns the content of the file stored under key.
func (s *Local) Read(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Write atomically replaces the file stored under key. It uses a
// write-to-temp-and-rename pattern so a concurrent reader never observes a
// partially written file.
func (s *Local) Write(_ context.Context, key string, data []byte, _ string) error {
	path := filepath.Join(s.dir, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tempFile := path + ".tmp"

	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file for %s: %w", key, err)
	}

	// Sync to ensure data is flushed to disk before the rename
	file, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file for %s: %w", key, err)
	}

	return nil
}
