// =============================================================================
// i18ngen - Main Entry Point
// =============================================================================
//
// i18ngen maintains the generated C translation table for the embedded UI
// from a translator-edited spreadsheet (CSV or XLSX).
//
// USAGE:
//   i18ngen generate      - Generate (and optionally merge) the translation table
//   i18ngen export        - Export an existing generated table back to CSV
//   i18ngen validate      - Parse the spreadsheet and report statistics only
//   i18ngen version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/chronoslabs/i18ngen/cmd"
)

func main() {
	cmd.Execute()
}
