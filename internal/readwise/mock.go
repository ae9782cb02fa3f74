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

import (
	"context"
	"fmt"

	syncerrors "github.com/readsynchq/readsync/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Results to return
	Results []ExportResult

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount int
	LastOpts  ExportOptions
}

// NewMockClient creates a new mock client with default test data.
func NewMockClient() *MockClient {
	return &MockClient{
		Results: generateTestResults(),
	}
}

// Export implements the Client interface.
func (m *MockClient) Export(ctx context.Context, opts ExportOptions) (*ExportPage, error) {
	m.CallCount++
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", syncerrors.ErrInvalidToken)
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", syncerrors.ErrNetworkFailure)
	}

	if m.Error != nil {
		return nil, m.Error
	}

	return &ExportPage{Results: m.Results}, nil
}

// generateTestResults creates sample export data for testing.
func generateTestResults() []ExportResult {
	title1 := "Understanding Go Memory Management"
	url1 := "https://example.com/go-memory"
	title2 := "The Pragmatic Programmer"
	title3 := "Designing Data-Intensive Applications"

	return []ExportResult{
		{Category: "articles", Title: &title1, SourceURL: &url1},
		{Category: "books", Title: &title2},
		{Category: "books", Title: &title3},
	}
}

// MockClientOption allows configuring the mock client.
type MockClientOption func(*MockClient)

// WithResults sets specific export results to return.
func WithResults(results []ExportResult) MockClientOption {
	return func(m *MockClient) {
		m.Results = results
	}
}

// WithError makes the client return a specific error.
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure.
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options.
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
