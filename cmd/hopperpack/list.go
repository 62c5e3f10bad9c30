// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"hopperpack/internal/scan"

	"github.com/spf13/cobra"
)

var (
	listResourceRoots []string

	// listCmd shows what a generate run would pick up, without writing anything
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List data format descriptors discovered in the resource roots",
		Long: `List the data format descriptors a generate run would pick up.

Nothing is written; this is a dry inspection of the registry directories
under the module's resource roots.`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().StringArrayVar(&listResourceRoots, "resource-root", nil, "resource root to scan, repeatable (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	res, err := scan.New(baseDir, resourceRoots(activeConfig(), listResourceRoots)).Scan()
	if err != nil {
		issueID, styledMsg := classifyGenerateError(err, verbose)
		renderIssue(issueID)
		fmt.Fprint(os.Stderr, styledMsg)
		return &ExitError{Code: 1, Err: err}
	}

	printDiagnostics(res.Diagnostics)

	if res.Count() == 0 {
		fmt.Println(SubtitleStyle.Render("No data format descriptors found under " + scan.RegistryPath))
		return nil
	}

	fmt.Println(TitleStyle.Render("Data formats"))
	for _, entry := range res.Entries {
		class := entry.JavaType
		if class == "" {
			class = SubtitleStyle.Render("(no class)")
		}
		fmt.Printf("  %s  %s\n", CmdStyle.Render(entry.Name), class)
		if verbose {
			fmt.Println(VerboseStyle.Render("    " + entry.Path))
		}
	}

	return nil
}
