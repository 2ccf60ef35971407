// =============================================================================
// i18ngen - Shared Model Types
// =============================================================================
//
// This package contains the normalized in-memory model shared across the
// parsers, the merge engine and the emitter, to avoid import cycles:
//   - tabular   (spreadsheet -> Model)
//   - tablegen  (generated table <-> Model)
//   - merge     (Model x Model -> Model)
//
// Models are value objects: constructed once by a parser, consumed by the
// merge engine or the emitter, never mutated in place afterwards.
//
// =============================================================================

package model

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// MODEL TYPES
// =============================================================================

// Record is one translation key plus its value in every known language.
// Values is keyed by language identifier; a missing entry reads as "".
type Record struct {
	Key    string
	Values map[string]string
}

// Value returns the record's value for a language, or "" when absent.
func (r Record) Value(lang string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[lang]
}

// Model is an ordered list of records plus the ordered language identifier
// list that defines which value fields are meaningful. Record order matters
// for emission; merging is keyed by Key, not by position.
type Model struct {
	Languages []string
	Records   []Record
}

// Keys returns the record keys in model order.
func (m Model) Keys() []string {
	keys := make([]string, len(m.Records))
	for i, r := range m.Records {
		keys[i] = r.Key
	}
	return keys
}

// Index returns a key -> record lookup. Keys are unique within a model, so
// the mapping is unambiguous.
func (m Model) Index() map[string]Record {
	idx := make(map[string]Record, len(m.Records))
	for _, r := range m.Records {
		idx[r.Key] = r
	}
	return idx
}

// =============================================================================
// PARSE STATISTICS
// =============================================================================

// Stats describes what a parser saw while building a model. It is reported
// for observability only; the merge engine never consults it.
type Stats struct {
	// Rows is the number of records in the model.
	Rows int

	// Languages are the normalized language identifiers, in header order.
	Languages []string

	// EmptyPerLanguage counts empty value cells per language identifier.
	EmptyPerLanguage map[string]int

	// DuplicateKeys lists keys that appeared more than once, in
	// first-duplicate-detected order, de-duplicated.
	DuplicateKeys []string

	// Sorted records whether the caller requested a key sort.
	Sorted bool
}

// =============================================================================
// LANGUAGE IDENTIFIER NORMALIZATION
// =============================================================================

var langSanitize = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeLanguage converts a raw spreadsheet column header into a valid C
// identifier usable as a struct field name. Dashes and spaces map to
// underscores, every other non-identifier character is replaced, a leading
// digit is prefixed with an underscore, and an empty result becomes
// "unnamed".
func SanitizeLanguage(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = langSanitize.ReplaceAllString(s, "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	if s == "" {
		return "unnamed"
	}
	return s
}

// UniqueLanguages sanitizes each raw header cell and disambiguates
// collisions deterministically by appending "_2", "_3", ... in first-seen
// order. The returned identifiers are distinct and non-empty.
func UniqueLanguages(raw []string) []string {
	langs := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, name := range raw {
		lang := SanitizeLanguage(name)
		base := lang
		for i := 2; seen[lang]; i++ {
			lang = base + "_" + strconv.Itoa(i)
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	return langs
}
