// =============================================================================
// i18ngen - Table Emitter
// =============================================================================
//
// Renders a normalized model into the generated translation table sources:
//
//   - the export header, declaring the Entry record type (field order: key,
//     then the merged language list in order) and the extern table symbols
//   - the table source, defining const Entry D[] with one brace-enclosed
//     tuple of quoted literals per record
//   - optionally the fallback source, same rows but with a self-contained
//     local Entry declaration, usable without the shared header
//
// The text shape matches what the firmware build already consumes, byte for
// byte given identical input, so regenerating an unchanged table produces an
// empty version-control diff.
//
// =============================================================================

package tablegen

import (
	"strings"

	"github.com/chronoslabs/i18ngen/internal/model"
)

// File names of the generated sources, shared by the pipeline and the
// export command.
const (
	HeaderFileName   = "i18n_gen_export.h"
	TableFileName    = "i18n_gen.cpp"
	FallbackFileName = "i18n_fallback.cpp"
)

// Escape renders a value safe for embedding as a quoted C string literal.
// Backslash and quote are escaped, CRLF and CR normalize to LF, then tab
// and LF become their two-character escapes.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// EmitHeader renders the export header for the given language list.
func EmitHeader(languages []string) string {
	var b strings.Builder
	b.WriteString("// Auto-generated from CSV — DO NOT EDIT MANUALLY\n")
	b.WriteString("#pragma once\n")
	b.WriteString("#include <stddef.h>\n\n")
	b.WriteString("struct Entry {\n")
	b.WriteString("    const char* key;\n")
	for _, lang := range languages {
		b.WriteString("    const char* " + lang + ";\n")
	}
	b.WriteString("};\n\n")
	b.WriteString("extern \"C\" {\n")
	b.WriteString("    extern const Entry* g_i18n_gen_table;\n")
	b.WriteString("    extern const size_t g_i18n_gen_count;\n")
	b.WriteString("}\n")
	return b.String()
}

// EmitTable renders the table source defining D[] and the extern "C"
// symbols the firmware links against.
func EmitTable(languages []string, records []model.Record) string {
	var b strings.Builder
	b.WriteString("// Auto-generated from CSV — DO NOT EDIT MANUALLY\n")
	b.WriteString("#include \"i18n.h\"\n")
	b.WriteString("#include \"i18n_gen_export.h\"\n\n")
	b.WriteString("const Entry D[] = {\n")
	writeTuples(&b, languages, records)
	b.WriteString("};\n\n")
	b.WriteString("extern \"C\" {\n")
	b.WriteString("    const Entry* g_i18n_gen_table = D;\n")
	b.WriteString("    const size_t g_i18n_gen_count = sizeof(D) / sizeof(D[0]);\n")
	b.WriteString("}\n")
	return b.String()
}

// EmitFallback renders the optional self-contained table source with a
// locally declared record type, for builds without the shared header.
func EmitFallback(languages []string, records []model.Record) string {
	var b strings.Builder
	b.WriteString("// Auto-generated fallback table — optional\n")
	b.WriteString("#include \"i18n.h\"\n")
	b.WriteString("// This file can be used instead of the generated table if desired.\n\n")
	b.WriteString("struct Entry {\n")
	b.WriteString("    const char* key;\n")
	for _, lang := range languages {
		b.WriteString("    const char* " + lang + ";\n")
	}
	b.WriteString("};\n\n")
	b.WriteString("static const Entry D_builtin[] = {\n")
	writeTuples(&b, languages, records)
	b.WriteString("};\n\n")
	b.WriteString("// Implement your own tr() to search D_builtin if you want a built-in table.\n")
	return b.String()
}

// writeTuples writes one '    { "key", "v1", ... },' line per record, field
// order exactly key followed by the language list in order.
func writeTuples(b *strings.Builder, languages []string, records []model.Record) {
	for _, r := range records {
		fields := make([]string, 0, 1+len(languages))
		fields = append(fields, Escape(r.Key))
		for _, lang := range languages {
			fields = append(fields, Escape(r.Value(lang)))
		}
		b.WriteString(`    { "` + strings.Join(fields, `", "`) + `" },` + "\n")
	}
}
