// =============================================================================
// i18ngen - CSV Writer (export path)
// =============================================================================
//
// Renders a model back into the translator-editable CSV form. The output
// matches the shape translators already have: every field quoted, a UTF-8
// byte order mark so spreadsheet applications pick the right encoding, and
// LF line endings for stable version-control diffs.
//
// =============================================================================

package tabular

import (
	"strings"

	"github.com/chronoslabs/i18ngen/internal/model"
)

// WriteOptions controls CSV rendering for export.
type WriteOptions struct {
	// BOM prepends a UTF-8 byte order mark. Default in the export command:
	// true.
	BOM bool
}

// WriteCSV renders languages and records as CSV text. Every field is quoted
// and inner quotes are doubled, so embedded delimiters, quotes and newlines
// survive the round trip.
func WriteCSV(languages []string, records []model.Record, opts WriteOptions) string {
	var b strings.Builder
	if opts.BOM {
		b.WriteString("\ufeff")
	}

	writeRow(&b, append([]string{"key"}, languages...))
	for _, r := range records {
		row := make([]string, 0, 1+len(languages))
		row = append(row, r.Key)
		for _, lang := range languages {
			row = append(row, r.Value(lang))
		}
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
