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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/readsynchq/readsync/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "readsync",
		Short: "Sync article highlights from Readwise into a JSON list",
		Long: `readsync incrementally synchronizes article highlights from the
Readwise export API into a deduplicated JSON list. The list can be kept in a
local directory or committed to a GitHub repository. A watermark of the last
successful sync makes repeated runs fetch only newly updated highlights.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newSyncCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
