// =============================================================================
// i18ngen - Tabular Model Parser
// =============================================================================
//
// This module turns spreadsheet-like input (rows of cells, first column the
// translation key, remaining columns per-language values) into the normalized
// model. It handles:
//   - UTF-8 with or without a byte order mark, plus configurable encodings
//   - Configurable delimiters (comma, pipe, tab, semicolon)
//   - Comment rows (key starting with '#' or '//') and fully blank rows
//   - Short rows, which are right-padded to header width
//   - Duplicate keys, which are reported and resolved last-occurrence-wins
//
// The only fatal condition is a malformed header; everything else degrades
// to the most conservative interpretation and is surfaced via Stats.
//
// =============================================================================

package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/chronoslabs/i18ngen/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// FormatError reports malformed or unsupported tabular input: empty input,
// a first header cell other than "key", or zero language columns. It is the
// only fatal parse condition; callers abort the run when they see one.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "tabular: " + e.Reason
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings contains settings for reading the raw spreadsheet file.
type Settings struct {
	// Delimiter is the field separator. Accepts the literal character or
	// the aliases "tab", "pipe", "semicolon". Default: ",".
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file.
	// Supported: "UTF-8" (default, BOM tolerated), "UTF-16", "UTF-16BE",
	// "ISO-8859-1", "Windows-1252".
	Encoding string `yaml:"encoding"`
}

// ParseOptions controls optional post-processing of the parsed model.
type ParseOptions struct {
	// SortKeys requests a stable lexicographic (case-sensitive) sort of the
	// records by key after parsing.
	SortKeys bool
}

// =============================================================================
// FILE READING
// =============================================================================

// ReadCSV reads a delimited text file into raw rows, converting from the
// configured encoding to UTF-8 on the fly.
func ReadCSV(filePath string, settings Settings) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(bufio.NewReader(file), decoder))
	configureReader(reader, settings)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// decoderFor maps an encoding name to a decoder. UTF-8 input goes through
// unicode.UTF8BOM so a leading byte order mark is stripped transparently.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "UTF-8", "UTF8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "UTF-16", "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	case "ISO-8859-1", "LATIN1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %q", name)
	}
}

// configureReader applies the delimiter settings to the CSV reader.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Translation rows legitimately vary in width; short rows are padded
	// during parsing rather than rejected here.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// =============================================================================
// PARSING
// =============================================================================

// Parse builds the normalized model from raw rows.
//
// The first non-blank row is the header: its first cell must equal "key"
// case-insensitively (after BOM stripping) and at least one language column
// must follow, otherwise a FormatError is returned. Each header cell after
// the first is normalized into a unique language identifier.
//
// Data rows with an empty key or a key starting with '#' or '//' are
// skipped. A duplicate key overwrites the values of its first occurrence
// (last occurrence wins) and is recorded in Stats.DuplicateKeys.
func Parse(rows [][]string, opts ParseOptions) (model.Model, model.Stats, error) {
	rows = normalizeRows(rows)
	if len(rows) == 0 {
		return model.Model{}, model.Stats{}, &FormatError{Reason: "input is empty"}
	}

	header := rows[0]
	// Rows may come from sources other than ReadCSV, where the BOM is not
	// stripped by the decoder.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	if !strings.EqualFold(strings.TrimSpace(header[0]), "key") {
		return model.Model{}, model.Stats{}, &FormatError{Reason: "first column must be 'key' (case-insensitive)"}
	}

	rawLangs := header[1:]
	if len(rawLangs) == 0 {
		return model.Model{}, model.Stats{}, &FormatError{Reason: "no language columns found (need at least one after 'key')"}
	}

	langs := model.UniqueLanguages(rawLangs)

	emptyCount := make(map[string]int, len(langs))
	for _, lang := range langs {
		emptyCount[lang] = 0
	}

	var records []model.Record
	recordIndex := make(map[string]int)
	dupSeen := make(map[string]bool)
	var dupKeys []string

	for _, row := range rows[1:] {
		// Right-pad short rows to header width.
		for len(row) < 1+len(rawLangs) {
			row = append(row, "")
		}

		key := strings.TrimSpace(row[0])
		if key == "" || strings.HasPrefix(key, "#") || strings.HasPrefix(key, "//") {
			continue
		}

		values := make(map[string]string, len(langs))
		for i, lang := range langs {
			val := strings.TrimSpace(row[1+i])
			if val == "" {
				emptyCount[lang]++
			}
			values[lang] = val
		}

		if at, dup := recordIndex[key]; dup {
			// Last occurrence wins, at the first occurrence's position.
			records[at] = model.Record{Key: key, Values: values}
			if !dupSeen[key] {
				dupSeen[key] = true
				dupKeys = append(dupKeys, key)
			}
			continue
		}

		recordIndex[key] = len(records)
		records = append(records, model.Record{Key: key, Values: values})
	}

	if opts.SortKeys {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Key < records[j].Key
		})
	}

	m := model.Model{Languages: langs, Records: records}
	stats := model.Stats{
		Rows:             len(records),
		Languages:        langs,
		EmptyPerLanguage: emptyCount,
		DuplicateKeys:    dupKeys,
		Sorted:           opts.SortKeys,
	}
	return m, stats, nil
}

// normalizeRows trims every cell and discards fully blank rows.
func normalizeRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		blank := true
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
			if trimmed[i] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, trimmed)
		}
	}
	return out
}
