// =============================================================================
// i18ngen - Validate Command
// =============================================================================
//
// Parses the spreadsheet and prints the statistics without writing any
// files. Exits non-zero when the input is malformed (missing 'key' header,
// no language columns, empty file).
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronoslabs/i18ngen/internal/config"
	"github.com/chronoslabs/i18ngen/internal/pipeline"
	"github.com/chronoslabs/i18ngen/pkg/files"
)

var (
	validateCSVPath  string
	validateXLSXPath string
	validateSheet    string
	validateSortKeys bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a spreadsheet without generating anything",
	Long: `The validate command parses the translator spreadsheet exactly as
'generate' would, then prints the statistics (row count, languages, empty
cells per language, duplicate keys) and stops. Nothing is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateCSVPath, "csv", "", "Path to the translations CSV file")
	validateCmd.Flags().StringVar(&validateXLSXPath, "xlsx", "", "Path to the translations XLSX workbook")
	validateCmd.Flags().StringVar(&validateSheet, "sheet", "", "Workbook sheet name (default: first sheet)")
	validateCmd.Flags().BoolVar(&validateSortKeys, "sort-keys", false, "Sort rows alphabetically by key")
}

func runValidate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if (validateCSVPath == "") == (validateXLSXPath == "") {
		return fmt.Errorf("exactly one of --csv or --xlsx is required")
	}

	opts := pipeline.Options{
		CSVPath:  validateCSVPath,
		XLSXPath: validateXLSXPath,
		Sheet:    validateSheet,
		SortKeys: validateSortKeys,
		DryRun:   true,
	}

	result, err := pipeline.Run(context.Background(), cfg, opts, files.NewManager(false))
	if err != nil {
		return err
	}

	fmt.Print(result.Summary())
	return nil
}
