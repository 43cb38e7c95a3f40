// Command sieveview is a read-only terminal viewer over discovery.FindFiles
// results: an expandable tree, with configuration-pruned directories shown
// struck through, plus a count of search groups and a summary line of
// unmatched patterns.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sieve/internal/discovery"
	"github.com/mattsolo1/grove-sieve/internal/sieveconfig"
	"github.com/mattsolo1/grove-sieve/internal/sievetree"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		globInputPaths bool
		cwd            string
	)

	cmd := &cobra.Command{
		Use:   "sieveview [patterns...]",
		Short: "Interactively browse the files matched by a set of patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absCwd, err := filepath.Abs(cwd)
			if err != nil {
				return fmt.Errorf("resolving --cwd: %w", err)
			}

			provider := sieveconfig.New()
			stat, err := discovery.FindFilesWithStats(cmd.Context(), args, discovery.Options{
				Cwd:            absCwd,
				GlobInputPaths: globInputPaths,
				ConfigProvider: provider,
			})

			var root *sievetree.FileNode
			if err == nil {
				root = sievetree.Build(absCwd, stat.Files, stat.PrunedDirectories)
			}

			m := newModel(root, stat, err)
			_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return runErr
		},
	}

	cmd.Flags().BoolVar(&globInputPaths, "glob", true, "interpret patterns that aren't a literal file or directory as globs")
	cmd.Flags().StringVar(&cwd, "cwd", ".", "working directory patterns are resolved against")

	return cmd
}
