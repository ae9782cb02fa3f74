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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncerrors "github.com/readsynchq/readsync/internal/errors"
)

func TestHTTPClient_Export(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"nextPageCursor": null,
			"results": [
				{"category": "articles", "title": "First", "source_url": "https://a.example"},
				{"category": "books", "title": "A Book"}
			]
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient("secret-token", server.URL)

	page, err := client.Export(context.Background(), ExportOptions{})
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.Equal(t, "articles", page.Results[0].Category)
	require.NotNil(t, page.Results[0].Title)
	assert.Equal(t, "First", *page.Results[0].Title)
	require.NotNil(t, page.Results[0].SourceURL)
	assert.Equal(t, "https://a.example", *page.Results[0].SourceURL)
	assert.Nil(t, page.Results[1].SourceURL)

	// Request shape
	assert.Equal(t, "/export/", gotReq.URL.Path)
	assert.Empty(t, gotReq.URL.RawQuery, "no filter params expected for a full fetch")
	assert.Equal(t, "Token secret-token", gotReq.Header.Get("Authorization"))
	assert.Contains(t, gotReq.Header.Get("User-Agent"), "readsync/")
}

func TestHTTPClient_ExportWindow(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewHTTPClient("secret-token", server.URL)

	after := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC)
	_, err := client.Export(context.Background(), ExportOptions{
		UpdatedAfter:  after,
		UpdatedBefore: before,
	})
	require.NoError(t, err)

	// Bounds are serialized as full RFC 3339 timestamps, not bare dates.
	require.Len(t, gotQuery["updated_after"], 1)
	assert.Equal(t, "2026-01-15T00:00:00Z", gotQuery["updated_after"][0])
	require.Len(t, gotQuery["updated_before"], 1)
	assert.Equal(t, "2026-02-01T12:30:00Z", gotQuery["updated_before"][0])
}

func TestHTTPClient_ExportLowerBoundOnly(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewHTTPClient("secret-token", server.URL)

	_, err := client.Export(context.Background(), ExportOptions{
		UpdatedAfter: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, gotQuery["updated_after"], 1)
	assert.Empty(t, gotQuery["updated_before"])
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, syncerrors.ErrInvalidToken},
		{"forbidden", http.StatusForbidden, syncerrors.ErrInvalidToken},
		{"server error", http.StatusInternalServerError, syncerrors.ErrNetworkFailure},
		{"bad gateway", http.StatusBadGateway, syncerrors.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			client := NewHTTPClient("secret-token", server.URL)
			_, err := client.Export(context.Background(), ExportOptions{})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v in chain", err, tt.wantErr)
		})
	}
}

func TestHTTPClient_ConnectionFailure(t *testing.T) {
	// Point at a server that is no longer listening.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewHTTPClient("secret-token", endpoint)
	_, err := client.Export(context.Background(), ExportOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, syncerrors.ErrNetworkFailure), "got %v", err)
}

func TestMockClient_RecordsOptions(t *testing.T) {
	mock := NewMockClient()

	after := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	page, err := mock.Export(context.Background(), ExportOptions{UpdatedAfter: after})
	require.NoError(t, err)

	assert.NotEmpty(t, page.Results)
	assert.Equal(t, 1, mock.CallCount)
	assert.Equal(t, after, mock.LastOpts.UpdatedAfter)
}
