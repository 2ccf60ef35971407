// =============================================================================
// i18ngen - Export Command
// =============================================================================
//
// The reverse path: reads an existing generated table source and writes the
// translator-editable CSV. Language column names come from the export
// header when one is found next to the table source; otherwise generic
// lang_1, lang_2, ... headers are used and the translator renames them.
//
// COMMAND USAGE:
//   i18ngen export --in src/intl/i18n_gen.cpp --out translations.csv
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chronoslabs/i18ngen/internal/config"
	"github.com/chronoslabs/i18ngen/internal/model"
	"github.com/chronoslabs/i18ngen/internal/tablegen"
	"github.com/chronoslabs/i18ngen/internal/tabular"
	"github.com/chronoslabs/i18ngen/pkg/files"
)

var (
	exportInPath     string
	exportOutPath    string
	exportHeaderPath string
	exportNoBOM      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an existing generated table back to CSV",
	Long: `The export command extracts all records from a generated translation table
source (the regular table or the fallback variant) and writes them as CSV,
ready for a translator to edit and feed back through 'generate --merge'.

The number of language columns is auto-detected from the widest record.
When the export header can be located, its field names become the CSV
language headers; otherwise lang_1, lang_2, ... placeholders are used.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportInPath, "in", "", "Path to the generated table source (required)")
	exportCmd.Flags().StringVar(&exportOutPath, "out", "translations.csv", "Path of the CSV file to write")
	exportCmd.Flags().StringVar(&exportHeaderPath, "header", "", "Path to the export header for language names (default: next to --in)")
	exportCmd.Flags().BoolVar(&exportNoBOM, "no-bom", false, "Do not prepend a UTF-8 byte order mark")
	exportCmd.MarkFlagRequired("in")
}

func runExport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	fm := files.NewManager(!cfg.NoBackup)

	src, ok, err := fm.ReadText(ctx, exportInPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("table source not found: %s", exportInPath)
	}

	tuples := tablegen.ParseTuples(src)
	if len(tuples) == 0 {
		return fmt.Errorf("found no translation rows in %s", exportInPath)
	}

	maxFields := 0
	for _, t := range tuples {
		if len(t) > maxFields {
			maxFields = len(t)
		}
	}

	languages := exportLanguages(ctx, fm, maxFields-1)

	records := make([]model.Record, 0, len(tuples))
	for _, t := range tuples {
		values := make(map[string]string, len(languages))
		for i, lang := range languages {
			if 1+i < len(t) {
				values[lang] = t[1+i]
			} else {
				values[lang] = ""
			}
		}
		records = append(records, model.Record{Key: t[0], Values: values})
	}

	content := tabular.WriteCSV(languages, records, tabular.WriteOptions{BOM: !exportNoBOM})
	if err := fm.WriteText(ctx, exportOutPath, content); err != nil {
		return err
	}

	fmt.Printf("Exported %d rows with %d language column(s) to %s\n",
		len(records), len(languages), exportOutPath)
	return nil
}

// exportLanguages resolves the CSV language headers: real field names from
// the export header when available, else lang_1..lang_N placeholders.
func exportLanguages(ctx context.Context, fm *files.Manager, count int) []string {
	headerPath := exportHeaderPath
	if headerPath == "" {
		headerPath = filepath.Join(filepath.Dir(exportInPath), tablegen.HeaderFileName)
	}

	if headerText, ok, err := fm.ReadText(ctx, headerPath); err == nil && ok {
		if languages, found := tablegen.ParseLanguages(headerText); found && len(languages) == count {
			return languages
		}
	}

	languages := make([]string, count)
	for i := range languages {
		languages[i] = "lang_" + strconv.Itoa(i+1)
	}
	return languages
}
