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
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	syncerrors "github.com/readsynchq/readsync/internal/errors"
)

// graphqlRequest is the wire shape of a GraphQL POST body.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// newGitHubServer returns a fake GraphQL endpoint that answers blob reads,
// branch head queries and createCommitOnBranch mutations. Requests are
// recorded for verification.
func newGitHubServer(t *testing.T, blobText *string) (*httptest.Server, *[]graphqlRequest) {
	t.Helper()

	var requests []graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "createCommitOnBranch"):
			_, _ = w.Write([]byte(`{"data":{"createCommitOnBranch":{"commit":{"oid":"newcommitsha"}}}}`))
		case strings.Contains(req.Query, "ref("):
			_, _ = w.Write([]byte(`{"data":{"repository":{"ref":{"target":{"oid":"headsha123"}}}}}`))
		case strings.Contains(req.Query, "object("):
			if blobText == nil {
				_, _ = w.Write([]byte(`{"data":{"repository":{"object":null}}}`))
				return
			}
			resp := map[string]interface{}{
				"data": map[string]interface{}{
					"repository": map[string]interface{}{
						"object": map[string]interface{}{"text": *blobText},
					},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			t.Errorf("unexpected query: %s", req.Query)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	return server, &requests
}

func TestGitHub_ReadFound(t *testing.T) {
	text := `[{"title":"One","url":"https://one.example"}]`
	server, requests := newGitHubServer(t, &text)
	defer server.Close()

	s, err := NewGitHub("gh-token", server.URL, "octocat/reading-list", "main")
	if err != nil {
		t.Fatalf("NewGitHub() error = %v", err)
	}

	data, found, err := s.Read(context.Background(), "articles.json")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if string(data) != text {
		t.Errorf("data = %q, want %q", data, text)
	}

	if len(*requests) != 1 {
		t.Fatalf("got %d requests, want 1", len(*requests))
	}
	vars := (*requests)[0].Variables
	if vars["expr"] != "main:articles.json" {
		t.Errorf("expr = %v, want main:articles.json", vars["expr"])
	}
	if vars["owner"] != "octocat" || vars["name"] != "reading-list" {
		t.Errorf("owner/name = %v/%v", vars["owner"], vars["name"])
	}
}

func TestGitHub_ReadAbsent(t *testing.T) {
	server, _ := newGitHubServer(t, nil)
	defer server.Close()

	s, err := NewGitHub("gh-token", server.URL, "octocat/reading-list", "main")
	if err != nil {
		t.Fatalf("NewGitHub() error = %v", err)
	}

	_, found, err := s.Read(context.Background(), "articles.json")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if found {
		t.Error("found = true for missing file")
	}
}

func TestGitHub_WriteCommitsWithExpectedHead(t *testing.T) {
	server, requests := newGitHubServer(t, nil)
	defer server.Close()

	s, err := NewGitHub("gh-token", server.URL, "octocat/reading-list", "main")
	if err != nil {
		t.Fatalf("NewGitHub() error = %v", err)
	}

	content := []byte(`[{"title":"One","url":"https://one.example"}]`)
	if err := s.Write(context.Background(), "articles.json", content, "Sync 1 new article(s)"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Head query first, then the mutation.
	if len(*requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(*requests))
	}

	input, ok := (*requests)[1].Variables["input"].(map[string]interface{})
	if !ok {
		t.Fatalf("mutation input missing: %v", (*requests)[1].Variables)
	}
	if input["expectedHeadOid"] != "headsha123" {
		t.Errorf("expectedHeadOid = %v, want headsha123", input["expectedHeadOid"])
	}

	message := input["message"].(map[string]interface{})
	if message["headline"] != "Sync 1 new article(s)" {
		t.Errorf("headline = %v", message["headline"])
	}

	branch := input["branch"].(map[string]interface{})
	if branch["repositoryNameWithOwner"] != "octocat/reading-list" || branch["branchName"] != "main" {
		t.Errorf("branch = %v", branch)
	}

	additions := input["fileChanges"].(map[string]interface{})["additions"].([]interface{})
	if len(additions) != 1 {
		t.Fatalf("got %d additions, want 1", len(additions))
	}
	addition := additions[0].(map[string]interface{})
	if addition["path"] != "articles.json" {
		t.Errorf("path = %v", addition["path"])
	}
	wantContents := base64.StdEncoding.EncodeToString(content)
	if addition["contents"] != wantContents {
		t.Errorf("contents = %v, want %v", addition["contents"], wantContents)
	}
}

func TestGitHub_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "bad token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: syncerrors.ErrInvalidToken,
		},
		{
			name: "repository not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"errors":[{"message":"Could not resolve to a Repository with the name 'octocat/missing'."}]}`))
			},
			wantErr: syncerrors.ErrRepoNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			s, err := NewGitHub("gh-token", server.URL, "octocat/missing", "main")
			if err != nil {
				t.Fatalf("NewGitHub() error = %v", err)
			}

			_, _, err = s.Read(context.Background(), "articles.json")
			if err == nil {
				t.Fatal("Read() expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v in chain", err, tt.wantErr)
			}
		})
	}
}

func TestSplitRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{"octocat/reading-list", "octocat", "reading-list", false},
		{"octocat", "", "", true},
		{"a/b/c", "", "", true},
		{"/repo", "", "", true},
		{"owner/", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			owner, name, err := splitRepository(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("splitRepository(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitRepository(%q) error = %v", tt.input, err)
			}
			if owner != tt.wantOwner || name != tt.wantName {
				t.Errorf("got %s/%s, want %s/%s", owner, name, tt.wantOwner, tt.wantName)
			}
		})
	}
}
