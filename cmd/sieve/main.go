// Command sieve resolves file patterns against a working directory and
// prints the matched, deduplicated absolute paths.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sieve/internal/discovery"
	"github.com/mattsolo1/grove-sieve/internal/sieveconfig"
	"github.com/mattsolo1/grove-sieve/internal/sieveutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sieve",
		Short:         "Configuration-aware file discovery",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newFindCmd())
	return root
}

func newFindCmd() *cobra.Command {
	var (
		globInputPaths   bool
		errorOnUnmatched bool
		cwd              string
		configPath       string
		verbose          bool
	)

	cmd := &cobra.Command{
		Use:   "find [patterns...]",
		Short: "Resolve patterns to a deduplicated list of absolute file paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := sieveutil.NewLogger("sieve.cmd.find")
			sieveutil.SetVerbose(log, verbose)

			absCwd, err := filepath.Abs(cwd)
			if err != nil {
				return fmt.Errorf("resolving --cwd: %w", err)
			}

			provider, err := newProvider(configPath)
			if err != nil {
				return err
			}

			files, err := discovery.FindFiles(cmd.Context(), args, discovery.Options{
				Cwd:                     absCwd,
				GlobInputPaths:          globInputPaths,
				ErrorOnUnmatchedPattern: errorOnUnmatched,
				ConfigProvider:          provider,
			})
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&globInputPaths, "glob", true, "interpret patterns that aren't a literal file or directory as globs")
	cmd.Flags().BoolVar(&errorOnUnmatched, "error-on-unmatched", true, "fail if a pattern matches nothing (or only ignored files)")
	cmd.Flags().StringVar(&cwd, "cwd", ".", "working directory patterns are resolved against")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a .sieverc.yml override used as the provider's root search anchor")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// newProvider builds the reference configuration provider. When configPath
// is set, its containing directory anchors the provider's upward search:
// ancestor lookups never climb past it.
func newProvider(configPath string) (*sieveconfig.Provider, error) {
	if configPath == "" {
		return sieveconfig.New(), nil
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving --config: %w", err)
	}
	return sieveconfig.NewWithRoot(filepath.Dir(absConfig)), nil
}
