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

// BlobStore is the persistence boundary of the sync engine.
type BlobStore interface {
	// Read returns the content stored under key. A missing key is reported
	// as found=false, not as an error.
	Read(ctx context.Context, key string) (data []byte, found bool, err error)

	// Write stores data under key, creating it if absent and replacing it
	// otherwise. message is a human-readable description of the change,
	// used by backends that keep versioned history (it becomes the commit
	// message on the GitHub backend) and ignored by the others.
	Write(ctx context.Context, key string, data []byte, message string) error
}
