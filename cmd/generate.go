// =============================================================================
// i18ngen - Generate Command
// =============================================================================
//
// The main command: reads the translator spreadsheet and (re)generates the
// translation table sources, optionally merging with the previously
// generated table instead of overwriting it.
//
// COMMAND USAGE:
//   i18ngen generate [flags]
//
// FLAGS:
//   --csv / --xlsx    : Spreadsheet input (exactly one required)
//   --out             : Output directory for the generated sources
//   --sort-keys       : Sort rows alphabetically by key
//   --emit-fallback   : Also emit the self-contained fallback source
//   --merge           : Merge with the existing generated table in --out
//   --prefer          : Conflict policy, 'csv' or 'existing'
//   --overwrite-all   : Overwrite even when the spreadsheet cell is empty
//   --drop-orphans    : Drop keys that exist only in the existing table
//   --dry-run         : Compute and summarize without writing files
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronoslabs/i18ngen/internal/config"
	"github.com/chronoslabs/i18ngen/internal/merge"
	"github.com/chronoslabs/i18ngen/internal/pipeline"
	"github.com/chronoslabs/i18ngen/pkg/files"
)

var (
	genCSVPath      string
	genXLSXPath     string
	genSheet        string
	genOutDir       string
	genSortKeys     bool
	genEmitFallback bool
	genMerge        bool
	genPrefer       string
	genOverwriteAll bool
	genDropOrphans  bool
	genDryRun       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the translation table sources from a spreadsheet",
	Long: `The generate command parses the translator spreadsheet and emits the
generated translation table sources (export header, table source and
optionally the self-contained fallback source).

With --merge, the existing generated table in the output directory is parsed
back in and reconciled with the spreadsheet. The default policy is
conservative: for a key and language present on both sides, a non-empty
value is never replaced by an empty one, so manual edits in the generated
table survive blank spreadsheet cells. --overwrite-all disables that
protection, and --drop-orphans removes keys that no longer appear in the
spreadsheet.

Previously generated files are renamed aside with a timestamp before being
overwritten. Outputs whose content is unchanged are left untouched.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genCSVPath, "csv", "", "Path to the translations CSV file")
	generateCmd.Flags().StringVar(&genXLSXPath, "xlsx", "", "Path to the translations XLSX workbook")
	generateCmd.Flags().StringVar(&genSheet, "sheet", "", "Workbook sheet name (default: first sheet)")
	generateCmd.Flags().StringVar(&genOutDir, "out", "", "Output directory (default: from config)")
	generateCmd.Flags().BoolVar(&genSortKeys, "sort-keys", false, "Sort rows alphabetically by key")
	generateCmd.Flags().BoolVar(&genEmitFallback, "emit-fallback", false, "Also emit the optional fallback source")
	generateCmd.Flags().BoolVar(&genMerge, "merge", false, "Merge with the existing generated table in the output directory")
	generateCmd.Flags().StringVar(&genPrefer, "prefer", "", "Conflict policy when both sides have values: 'csv' or 'existing'")
	generateCmd.Flags().BoolVar(&genOverwriteAll, "overwrite-all", false, "Overwrite existing values even when the spreadsheet cell is empty (dangerous)")
	generateCmd.Flags().BoolVar(&genDropOrphans, "drop-orphans", false, "Drop keys that exist only in the existing table")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Do not write files; only print the summary")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if (genCSVPath == "") == (genXLSXPath == "") {
		return fmt.Errorf("exactly one of --csv or --xlsx is required")
	}

	prefer := cfg.Merge.Prefer
	if genPrefer != "" {
		if genPrefer != "csv" && genPrefer != "existing" {
			return fmt.Errorf("--prefer must be 'csv' or 'existing', got %q", genPrefer)
		}
		prefer = genPrefer
	}

	outDir := genOutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	opts := pipeline.Options{
		CSVPath:      genCSVPath,
		XLSXPath:     genXLSXPath,
		Sheet:        genSheet,
		OutDir:       outDir,
		SortKeys:     genSortKeys,
		EmitFallback: genEmitFallback,
		Merge:        genMerge,
		Policy: merge.Policy{
			PreferPrimaryOnTie: prefer == "csv",
			OverwriteAll:       genOverwriteAll || cfg.Merge.OverwriteAll,
			DropOrphans:        genDropOrphans || cfg.Merge.DropOrphans,
		},
		DryRun: genDryRun,
	}

	ctx := context.Background()
	fm := files.NewManager(!cfg.NoBackup)

	result, err := pipeline.Run(ctx, cfg, opts, fm)
	if err != nil {
		return err
	}

	summary := result.Summary()
	fmt.Print(summary)

	if cfg.ReportDir != "" && !genDryRun {
		reportPath, err := fm.WriteReport(ctx, cfg.ReportDir, summary)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("Report  : %s\n", reportPath)
		}
	}

	if !genDryRun && len(result.Written) > 0 {
		fmt.Println("\nRebuild your firmware to take effect.")
	}
	return nil
}
