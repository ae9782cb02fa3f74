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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/readsynchq/readsync/internal/config"
	syncerrors "github.com/readsynchq/readsync/internal/errors"
	"github.com/readsynchq/readsync/internal/logging"
	"github.com/readsynchq/readsync/internal/readwise"
	"github.com/readsynchq/readsync/internal/state"
	"github.com/readsynchq/readsync/internal/store"
	syncengine "github.com/readsynchq/readsync/internal/sync"
)

// dateLayout is the format of the --start-date and --end-date flags.
const dateLayout = "2006-01-02"

// syncFlags carries the raw flag values of the sync command.
type syncFlags struct {
	configPath  string
	token       string
	githubToken string
	backend     string
	outputDir   string
	repo        string
	branch      string
	startDate   string
	endDate     string
	allTime     bool
	timeout     time.Duration
	quiet       bool
	logFormat   string
}

// newSyncCommand builds the sync subcommand.
func newSyncCommand() *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch new article highlights and merge them into the list",
		Long: `Fetch article highlights from the Readwise export API and merge them into
the persisted JSON list without duplicates.

By default the fetch is incremental: only highlights updated since the last
successful sync are requested, and running twice on the same day is a no-op.
Use --all-time to backfill the full history, or --start-date/--end-date for
an explicit range. Backfills never move the incremental watermark.

Authentication is required via Readwise token:
  - Use --token flag to provide the token directly
  - Or set the READWISE_TOKEN environment variable
The github backend additionally needs a GitHub token (--github-token or
GITHUB_TOKEN).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyEnvFallbacks(cmd, &flags)

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			return runSync(ctx, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to config file (default: standard locations)")
	cmd.Flags().StringVar(&flags.token, "token", "", "Readwise API token (overrides READWISE_TOKEN env var)")
	cmd.Flags().StringVar(&flags.githubToken, "github-token", "", "GitHub token for the github backend (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "Persistence backend: local or github")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory for the local backend")
	cmd.Flags().StringVar(&flags.repo, "repo", "", "Target repository for the github backend (owner/repo)")
	cmd.Flags().StringVar(&flags.branch, "branch", "", "Target branch for the github backend")
	cmd.Flags().StringVar(&flags.startDate, "start-date", "", "Fetch highlights updated on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.endDate, "end-date", "", "Fetch highlights updated before this date (YYYY-MM-DD, default: now)")
	cmd.Flags().BoolVar(&flags.allTime, "all-time", false, "Fetch the full highlight history, ignoring the watermark")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 60*time.Second, "Deadline for the whole invocation")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only log warnings and errors")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	return cmd
}

// applyEnvFallbacks fills mode flags from the environment when the flag was
// not given on the command line. Explicit flags always win.
func applyEnvFallbacks(cmd *cobra.Command, flags *syncFlags) {
	if !cmd.Flags().Changed("start-date") {
		flags.startDate = os.Getenv("READSYNC_START_DATE")
	}
	if !cmd.Flags().Changed("end-date") {
		flags.endDate = os.Getenv("READSYNC_END_DATE")
	}
	if !cmd.Flags().Changed("all-time") {
		flags.allTime = envBool(os.Getenv("READSYNC_ALL_TIME"))
	}
}

// envBool parses various boolean representations.
func envBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// runSync executes the sync command.
func runSync(ctx context.Context, flags syncFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := parseSyncOptions(flags)
	if err != nil {
		return err
	}

	log := logging.New(flags.logFormat, flags.quiet)

	// Resolve tokens before any network call.
	token := flags.token
	if token == "" {
		token = cfg.ReadwiseToken()
	}
	if token == "" {
		return fmt.Errorf("readwise token not found. Set %s or use --token flag: %w",
			cfg.Readwise.TokenEnv, syncerrors.ErrMissingToken)
	}

	blobs, prefix, err := buildStore(cfg, flags)
	if err != nil {
		return err
	}

	client := readwise.NewHTTPClient(token, cfg.Readwise.APIEndpoint)
	marks := state.NewWatermark(blobs, path.Join(prefix, cfg.Sync.WatermarkFile), log)
	engine := syncengine.New(client, blobs, marks,
		syncengine.WithArticlesKey(path.Join(prefix, cfg.Sync.ArticlesFile)),
		syncengine.WithLogger(log))

	result, err := engine.Sync(ctx, opts)
	if err != nil {
		return err
	}

	if result.UpToDate {
		fmt.Fprintln(os.Stderr, "Already synced today, nothing to do")
		return nil
	}

	fmt.Fprintf(os.Stderr, "Synced %d new article(s), %d already present\n",
		result.NewCount, result.ExistingCount)
	for _, a := range result.Added {
		fmt.Printf("- %s\n", a.Title)
	}

	return nil
}

// applyFlagOverrides lays command-line flags over the loaded configuration.
func applyFlagOverrides(cfg *config.Config, flags syncFlags) {
	if flags.backend != "" {
		cfg.Sync.Backend = flags.backend
	}
	if flags.outputDir != "" {
		cfg.Sync.OutputDir = flags.outputDir
	}
	if flags.repo != "" {
		cfg.GitHub.Repository = flags.repo
	}
	if flags.branch != "" {
		cfg.GitHub.Branch = flags.branch
	}
}

// parseSyncOptions converts date flags into engine options.
// An end date without a start date is ignored: range mode requires a start.
func parseSyncOptions(flags syncFlags) (syncengine.Options, error) {
	var opts syncengine.Options
	opts.AllTime = flags.allTime

	if flags.startDate != "" {
		start, err := time.Parse(dateLayout, flags.startDate)
		if err != nil {
			return opts, fmt.Errorf("invalid --start-date %q, expected YYYY-MM-DD: %w", flags.startDate, err)
		}
		opts.StartDate = start

		if flags.endDate != "" {
			end, err := time.Parse(dateLayout, flags.endDate)
			if err != nil {
				return opts, fmt.Errorf("invalid --end-date %q, expected YYYY-MM-DD: %w", flags.endDate, err)
			}
			opts.EndDate = end
		}
	}

	return opts, nil
}

// buildStore constructs the configured backing store and returns it together
// with the key prefix synced files live under.
func buildStore(cfg *config.Config, flags syncFlags) (store.BlobStore, string, error) {
	switch cfg.Sync.Backend {
	case config.BackendGitHub:
		token := flags.githubToken
		if token == "" {
			token = cfg.GitHubToken()
		}
		if token == "" {
			return nil, "", fmt.Errorf("github token not found. Set %s or use --github-token flag: %w",
				cfg.GitHub.TokenEnv, syncerrors.ErrMissingToken)
		}
		gh, err := store.NewGitHub(token, cfg.GitHub.GraphQLEndpoint, cfg.GitHub.Repository, cfg.GitHub.Branch)
		if err != nil {
			return nil, "", err
		}
		return gh, cfg.GitHub.Path, nil
	default:
		return store.NewLocal(cfg.Sync.OutputDir), "", nil
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, syncerrors.ErrMissingToken) ||
		errors.Is(err, syncerrors.ErrInvalidToken) ||
		errors.Is(err, syncerrors.ErrRepoNotFound) {
		return 2 // Configuration/authentication errors
	}

	if errors.Is(err, syncerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
