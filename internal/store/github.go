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
	"fmt"
	"net/http"
	"strings"

	"github.com/shurcooL/graphql"

	"github.com/readsynchq/readsync/internal/apierror"
	syncerrors "github.com/readsynchq/readsync/internal/errors"
	"github.com/readsynchq/readsync/pkg/version"
)

// GitHub stores blobs as files in a GitHub repository, one commit per write.
// Reads go through the GraphQL blob query; writes use the
// createCommitOnBranch mutation, which keeps the branch history linear and
// rejects the commit if the branch head moved since it was read
// (optimistic concurrency via expectedHeadOid).
type GitHub struct {
	client    *graphql.Client
	owner     string
	name      string
	branch    string
	inspector apierror.Inspector
}

// NewGitHub creates a GitHub-backed blob store for the given repository
// ("owner/repo" format) and branch, talking to the provided GraphQL endpoint.
func NewGitHub(token, endpoint, repository, branch string) (*GitHub, error) {
	owner, name, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Transport: &bearerTransport{
			token: token,
			base:  http.DefaultTransport,
		},
	}

	return &GitHub{
		client:    graphql.NewClient(endpoint, httpClient),
		owner:     owner,
		name:      name,
		branch:    branch,
		inspector: apierror.NewInspector(),
	}, nil
}

// splitRepository parses an owner/repo string into its components.
func splitRepository(repository string) (owner, name string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repository)
	}

	owner = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repository)
	}

	return owner, name, nil
}

// Read fetches the blob stored at key on the configured branch.
func (s *GitHub) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var query struct {
		Repository struct {
			Object *struct {
				Blob struct {
					Text graphql.String
				} `graphql:"... on Blob"`
			} `graphql:"object(expression: $expr)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(s.owner),
		"name":  graphql.String(s.name),
		"expr":  graphql.String(s.branch + ":" + key),
	}

	if err := s.client.Query(ctx, &query, variables); err != nil {
		return nil, false, s.mapError(err)
	}

	if query.Repository.Object == nil {
		return nil, false, nil
	}

	return []byte(query.Repository.Object.Blob.Text), true, nil
}

// Write commits data to key on the configured branch. The commit is rejected
// by GitHub if the branch head changed since the preceding head query, so a
// concurrent writer surfaces as an error rather than a silent overwrite.
func (s *GitHub) Write(ctx context.Context, key string, data []byte, message string) error {
	headOid, err := s.branchHead(ctx)
	if err != nil {
		return err
	}

	var mutation struct {
		CreateCommitOnBranch struct {
			Commit struct {
				OID graphql.String `graphql:"oid"`
			}
		} `graphql:"createCommitOnBranch(input: $input)"`
	}

	input := CreateCommitOnBranchInput{
		Branch: CommittableBranch{
			RepositoryNameWithOwner: graphql.String(s.owner + "/" + s.name),
			BranchName:              graphql.String(s.branch),
		},
		ExpectedHeadOid: GitObjectID(headOid),
		Message:         CommitMessage{Headline: graphql.String(message)},
		FileChanges: FileChanges{
			Additions: []FileAddition{
				{
					Path:     graphql.String(key),
					Contents: Base64String(base64.StdEncoding.EncodeToString(data)),
				},
			},
		},
	}

	variables := map[string]interface{}{
		"input": input,
	}

	if err := s.client.Mutate(ctx, &mutation, variables); err != nil {
		return s.mapError(err)
	}

	return nil
}

// branchHead returns the current OID of the configured branch head.
func (s *GitHub) branchHead(ctx context.Context) (string, error) {
	var query struct {
		Repository struct {
			Ref *struct {
				Target struct {
					OID graphql.String `graphql:"oid"`
				}
			} `graphql:"ref(qualifiedName: $ref)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(s.owner),
		"name":  graphql.String(s.name),
		"ref":   graphql.String("refs/heads/" + s.branch),
	}

	if err := s.client.Query(ctx, &query, variables); err != nil {
		return "", s.mapError(err)
	}

	if query.Repository.Ref == nil {
		return "", fmt.Errorf("branch %q not found in %s/%s", s.branch, s.owner, s.name)
	}

	return string(query.Repository.Ref.Target.OID), nil
}

// mapError converts GraphQL client errors into sentinel errors.
func (s *GitHub) mapError(err error) error {
	if err == nil {
		return nil
	}

	if s.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --github-token flag or the GITHUB_TOKEN environment variable: %w", syncerrors.ErrInvalidToken)
	}

	if s.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w", s.owner, s.name, syncerrors.ErrRepoNotFound)
	}

	if s.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to the GitHub API. Please check your internet connection and try again: %w", syncerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("github store request failed: %w", err)
}

// GraphQL input types for the createCommitOnBranch mutation. The Go type
// names must match the GraphQL schema type names, as the client derives
// variable type declarations from them.
type (
	// CreateCommitOnBranchInput is the input object of createCommitOnBranch.
	CreateCommitOnBranchInput struct {
		Branch          CommittableBranch `json:"branch"`
		ExpectedHeadOid GitObjectID       `json:"expectedHeadOid"`
		FileChanges     FileChanges       `json:"fileChanges"`
		Message         CommitMessage     `json:"message"`
	}

	// CommittableBranch identifies the branch to commit to.
	CommittableBranch struct {
		RepositoryNameWithOwner graphql.String `json:"repositoryNameWithOwner"`
		BranchName              graphql.String `json:"branchName"`
	}

	// CommitMessage is the message of the commit to create.
	CommitMessage struct {
		Headline graphql.String `json:"headline"`
	}

	// FileChanges lists file additions for the commit.
	FileChanges struct {
		Additions []FileAddition `json:"additions"`
	}

	// FileAddition creates or replaces one file.
	FileAddition struct {
		Path     graphql.String `json:"path"`
		Contents Base64String   `json:"contents"`
	}

	// GitObjectID is a git object SHA.
	GitObjectID string

	// Base64String is base64-encoded file content.
	Base64String string
)

// bearerTransport adds GitHub bearer authentication to HTTP requests.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", fmt.Sprintf("readsync/%s", version.Version))

	return t.base.RoundTrip(req)
}
