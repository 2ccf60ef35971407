// =============================================================================
// i18ngen - Generated-Table Model Parser
// =============================================================================
//
// Reads a previously generated translation table back into the normalized
// model so it can be merged with a fresh spreadsheet parse. Two extractions:
//
//   1. The Entry struct declaration in the export header gives the language
//      field names, in declared order (the leading 'key' field excluded).
//   2. The D[] array initializer in the table source gives the records, one
//      brace-delimited tuple per record, quoted literals matched positionally
//      against the language list.
//
// Both are deliberately tolerant. A missing declaration yields "absent"
// rather than an error, an emptied or placeholder table yields zero records,
// missing trailing tuple fields read as "", excess fields are ignored. An
// emptied generated file is a legitimate prior state and must not abort a
// merge run.
//
// The patterns are compiled once and kept together below so a stricter
// grammar can replace this extraction without touching any caller.
//
// =============================================================================

package tablegen

import (
	"regexp"
	"strings"

	"github.com/chronoslabs/i18ngen/internal/model"
)

var (
	// struct Entry { ... };
	structRe = regexp.MustCompile(`(?s)struct\s+Entry\s*\{(.*?)\};`)

	// const char* <name>; fields inside the struct body.
	fieldRe = regexp.MustCompile(`const\s+char\*\s+([A-Za-z0-9_]+)\s*;`)

	// const Entry D[] = { ... }; with optional 'static' and the D_builtin
	// variant used by the fallback table.
	tableRe = regexp.MustCompile(`(?s)(?:static\s+)?const\s+Entry\s+D(?:_builtin)?\s*\[\s*\]\s*=\s*\{(.*?)\};`)

	// One brace-delimited tuple.
	tupleRe = regexp.MustCompile(`(?s)\{(.*?)\}`)

	// One quoted string literal, with escape sequences kept intact.
	literalRe = regexp.MustCompile(`"((?:\\.|[^"\\])*)"`)
)

// ParseLanguages extracts the language field names from export header
// source, in declared order, excluding the leading 'key' field. ok is false
// when no Entry declaration (or no language field) can be found; the caller
// then degrades to an empty secondary model instead of failing.
func ParseLanguages(src string) ([]string, bool) {
	m := structRe.FindStringSubmatch(src)
	if m == nil {
		return nil, false
	}

	var langs []string
	for _, f := range fieldRe.FindAllStringSubmatch(m[1], -1) {
		if f[1] == "key" {
			continue
		}
		langs = append(langs, f[1])
	}
	if len(langs) == 0 {
		return nil, false
	}
	return langs, true
}

// ParseRecords extracts records from table source, matching quoted literals
// positionally against the given language list. The first literal of each
// tuple is the key; missing trailing values become "", excess values are
// ignored. Tuples without any literal are skipped. A duplicate key
// overwrites its first occurrence, keeping that position.
func ParseRecords(src string, languages []string) []model.Record {
	var records []model.Record
	index := make(map[string]int)

	for _, tuple := range ParseTuples(src) {
		key := tuple[0]
		values := make(map[string]string, len(languages))
		for i, lang := range languages {
			if 1+i < len(tuple) {
				values[lang] = tuple[1+i]
			} else {
				values[lang] = ""
			}
		}

		rec := model.Record{Key: key, Values: values}
		if at, dup := index[key]; dup {
			records[at] = rec
			continue
		}
		index[key] = len(records)
		records = append(records, rec)
	}
	return records
}

// ParseTuples extracts the raw quoted tuples of the D[] initializer without
// interpreting them against a language list. Used by the export command,
// which derives the column count from the widest tuple. Returns nil when
// the initializer block is absent or holds no parsable tuples.
func ParseTuples(src string) [][]string {
	m := tableRe.FindStringSubmatch(src)
	if m == nil {
		return nil
	}

	var tuples [][]string
	for _, row := range tupleRe.FindAllStringSubmatch(m[1], -1) {
		literals := literalRe.FindAllStringSubmatch(row[1], -1)
		if len(literals) == 0 {
			continue
		}
		tuple := make([]string, len(literals))
		for i, lit := range literals {
			tuple[i] = Unescape(lit[1])
		}
		tuples = append(tuples, tuple)
	}
	return tuples
}

// Unescape reverses the emitter's C string escaping so that parse and emit
// are inverses: \\ -> backslash, \" -> quote, \n -> line feed, \t -> tab.
// Unknown escape sequences keep the escaped character verbatim.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
