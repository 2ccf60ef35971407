// =============================================================================
// i18ngen - Root Command
// =============================================================================
//
// Defines the root command for the Cobra CLI. All subcommands attach here:
//
//   i18ngen
//   ├── generate   (spreadsheet -> generated table, with optional merge)
//   ├── export     (generated table -> spreadsheet)
//   ├── validate   (parse and report only)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file, overridable via --config.
var cfgFile string

// verbose enables detailed output.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "i18ngen",
	Short: "i18ngen - Maintain the generated UI translation table from a spreadsheet",
	Long: `i18ngen maintains the generated C translation table for the embedded UI,
driven by a translator-edited spreadsheet (CSV or XLSX).

Key Features:
  - Merge mode that reconciles the spreadsheet with a previously generated
    table without destroying manual edits on either side
  - Conservative conflict policy by default: a blank spreadsheet cell never
    erases a previously filled-in translation
  - Aside-backups of overwritten files for a manual undo path
  - Round-trip export of an existing generated table back to CSV

Example Usage:
  i18ngen generate --csv translations.csv --out src/intl
  i18ngen generate --csv translations.csv --out src/intl --merge --dry-run
  i18ngen export --in src/intl/i18n_gen.cpp --out translations.csv`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output",
	)
}
