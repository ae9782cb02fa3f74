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

import "context"

// Memory is an in-memory BlobStore for tests. It records write messages and
// can be configured to fail reads or writes for specific keys.
type Memory struct {
	Blobs    map[string][]byte
	Messages map[string][]string

	// ReadErr and WriteErr, when set for a key, are returned by the
	// corresponding operation instead of touching Blobs.
	ReadErr  map[string]error
	WriteErr map[string]error

	// Track calls for verification
	ReadCount  int
	WriteCount int
}

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{
		Blobs:    make(map[string][]byte),
		Messages: make(map[string][]string),
		ReadErr:  make(map[string]error),
		WriteErr: make(map[string]error),
	}
}

// Read implements BlobStore.
func (s *Memory) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.ReadCount++
	if err := s.ReadErr[key]; err != nil {
		return nil, false, err
	}
	data, ok := s.Blobs[key]
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

// Write implements BlobStore.
func (s *Memory) Write(_ context.Context, key string, data []byte, message string) error {
	s.WriteCount++
	if err := s.WriteErr[key]; err != nil {
		return err
	}
	s.Blobs[key] = append([]byte(nil), data...)
	s.Messages[key] = append(s.Messages[key], message)
	return nil
}
