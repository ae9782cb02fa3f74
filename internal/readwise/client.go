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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/readsynchq/readsync/internal/apierror"
	syncerrors "github.com/readsynchq/readsync/internal/errors"
	"github.com/readsynchq/readsync/pkg/version"
)

// Client defines the interface for fetching highlights from the export API.
// This interface allows for easy mocking in tests.
type Client interface {
	// Export retrieves highlighted documents, optionally restricted to an
	// update window via opts.
	Export(ctx context.Context, opts ExportOptions) (*ExportPage, error)
}

// HTTPClient implements the Client interface against the Readwise REST API.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	inspector  apierror.Inspector
}

// NewHTTPClient creates an export API client with the provided token and
// endpoint base URL (e.g. "https://readwise.io/api/v2"). The client is
// configured with:
//   - Token authentication on every request
//   - A User-Agent header for API compliance
//   - Response size limiting to prevent memory issues
func NewHTTPClient(token, endpoint string) *HTTPClient {
	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  http.DefaultTransport,
		},
	}

	return &HTTPClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: httpClient,
		inspector:  apierror.NewInspector(),
	}
}

// Export fetches highlighted documents from the export endpoint. A zero
// option struct fetches the full history; set bounds restrict the window.
// The response is decoded in one piece — the export endpoint is only ever
// called with a window small enough to fit in a single page.
func (c *HTTPClient) Export(ctx context.Context, opts ExportOptions) (*ExportPage, error) {
	endpoint := c.endpoint + "/export/"

	params := url.Values{}
	if !opts.UpdatedAfter.IsZero() {
		params.Set("updated_after", opts.UpdatedAfter.Format(time.RFC3339))
	}
	if !opts.UpdatedBefore.IsZero() {
		params.Set("updated_before", opts.UpdatedBefore.Format(time.RFC3339))
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapStatus(resp)
	}

	var page ExportPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode export response: %w", err)
	}

	return &page, nil
}

// mapError converts transport-level errors into sentinel errors so the CLI
// can map them to exit codes.
func (c *HTTPClient) mapError(err error) error {
	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to the export API. Please check your internet connection and try again: %w", syncerrors.ErrNetworkFailure)
	}
	return fmt.Errorf("export request failed: %w", err)
}

// mapStatus converts non-200 responses into sentinel errors.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("export API authentication failed (status %d). Please provide a valid token via --token flag or the READWISE_TOKEN environment variable: %w",
			resp.StatusCode, syncerrors.ErrInvalidToken)
	case resp.StatusCode >= 500:
		return fmt.Errorf("export API returned status %d: %w", resp.StatusCode, syncerrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("export API returned unexpected status %d", resp.StatusCode)
	}
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds the Readwise token header and safety limits to HTTP requests.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	// Readwise uses the "Token" authorization scheme
	req.Header.Set("Authorization", "Token "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("readsync/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024,
		}
	}

	return resp, nil
}
