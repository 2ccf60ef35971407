// =============================================================================
// i18ngen - Generation Pipeline
// =============================================================================
//
// Orchestrates one run: read the spreadsheet, parse it into the model,
// optionally merge with the previously generated table, emit the generated
// sources, and write them (or just report, under --dry-run).
//
// PIPELINE:
//   1. Read raw rows (CSV or XLSX)
//   2. Parse into the normalized model (fatal on FormatError)
//   3. Optionally parse the existing generated table and merge
//   4. Emit header/table(/fallback) text
//   5. Write outputs with aside-backup, skipping byte-identical files
//
// Data flows one way, parsers -> merge -> emitter; only step 5 touches the
// file system for writing.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chronoslabs/i18ngen/internal/config"
	"github.com/chronoslabs/i18ngen/internal/merge"
	"github.com/chronoslabs/i18ngen/internal/model"
	"github.com/chronoslabs/i18ngen/internal/tablegen"
	"github.com/chronoslabs/i18ngen/internal/tabular"
	"github.com/chronoslabs/i18ngen/pkg/files"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options describes one generation run.
type Options struct {
	// CSVPath or XLSXPath names the spreadsheet input; exactly one is set.
	CSVPath  string
	XLSXPath string

	// Sheet selects the workbook sheet; empty means the first one.
	Sheet string

	// OutDir is where the generated sources live and are written.
	OutDir string

	// SortKeys sorts records lexicographically by key before merging.
	SortKeys bool

	// EmitFallback additionally writes the self-contained fallback source.
	EmitFallback bool

	// Merge reconciles the spreadsheet with the existing generated table
	// under Policy instead of overwriting it wholesale.
	Merge  bool
	Policy merge.Policy

	// DryRun computes everything but writes nothing.
	DryRun bool
}

// Result is the outcome of a run, consumed for console display.
type Result struct {
	Model    model.Model
	Stats    model.Stats
	Counters *merge.Counters // nil when no merge was performed
	Written  []string
	Skipped  []string // outputs already byte-identical
	Warnings []string
	DryRun   bool
}

// =============================================================================
// RUN
// =============================================================================

// Run executes the pipeline. The returned error is fatal (malformed input
// or an I/O failure); recoverable conditions surface as Result.Warnings.
func Run(ctx context.Context, cfg *config.Config, opts Options, fm *files.Manager) (*Result, error) {
	rows, err := readRows(cfg, opts)
	if err != nil {
		return nil, err
	}

	m, stats, err := tabular.Parse(rows, tabular.ParseOptions{SortKeys: opts.SortKeys})
	if err != nil {
		return nil, err
	}

	res := &Result{Model: m, Stats: stats, DryRun: opts.DryRun}
	if len(stats.DuplicateKeys) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"duplicate keys (%d): %s (last occurrence wins)",
			len(stats.DuplicateKeys), strings.Join(stats.DuplicateKeys, ", ")))
	}

	if opts.Merge {
		secondary, warnings, err := readExisting(ctx, opts.OutDir, fm)
		if err != nil {
			return nil, err
		}
		res.Warnings = append(res.Warnings, warnings...)

		merged, counters := merge.Merge(m, secondary, opts.Policy, m.Keys())
		res.Model = merged
		res.Counters = &counters
		m = merged
	}

	outputs := []struct {
		name    string
		content string
		enabled bool
	}{
		{tablegen.HeaderFileName, tablegen.EmitHeader(m.Languages), true},
		{tablegen.TableFileName, tablegen.EmitTable(m.Languages, m.Records), true},
		{tablegen.FallbackFileName, tablegen.EmitFallback(m.Languages, m.Records), opts.EmitFallback},
	}

	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		path := filepath.Join(opts.OutDir, out.name)
		if opts.DryRun {
			continue
		}
		if fm.Unchanged(ctx, path, out.content) {
			res.Skipped = append(res.Skipped, path)
			continue
		}
		if err := fm.WriteText(ctx, path, out.content); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, path)
	}

	return res, nil
}

// readRows loads the raw spreadsheet rows from whichever input was given.
func readRows(cfg *config.Config, opts Options) ([][]string, error) {
	if opts.XLSXPath != "" {
		return tabular.ReadXLSX(opts.XLSXPath, opts.Sheet)
	}
	return tabular.ReadCSV(opts.CSVPath, cfg.Tabular)
}

// readExisting parses the previously generated sources into the secondary
// model. Missing or unparsable files degrade to the empty model with a
// warning; a merge run never fails on the state of its own prior output.
func readExisting(ctx context.Context, outDir string, fm *files.Manager) (model.Model, []string, error) {
	var warnings []string

	headerPath := filepath.Join(outDir, tablegen.HeaderFileName)
	tablePath := filepath.Join(outDir, tablegen.TableFileName)

	headerText, headerOK, err := fm.ReadText(ctx, headerPath)
	if err != nil {
		return model.Model{}, nil, err
	}
	tableText, tableOK, err := fm.ReadText(ctx, tablePath)
	if err != nil {
		return model.Model{}, nil, err
	}

	if !headerOK || !tableOK {
		warnings = append(warnings, fmt.Sprintf(
			"merge requested, but existing files are missing in %s; treating existing table as empty", outDir))
		return model.Model{}, warnings, nil
	}

	languages, ok := tablegen.ParseLanguages(headerText)
	if !ok {
		warnings = append(warnings, fmt.Sprintf(
			"could not find the Entry declaration in %s; treating existing table as empty", headerPath))
		return model.Model{}, warnings, nil
	}

	records := tablegen.ParseRecords(tableText, languages)
	return model.Model{Languages: languages, Records: records}, warnings, nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary renders the run outcome for console display.
func (r *Result) Summary() string {
	var b strings.Builder

	b.WriteString("\n=== Summary ===\n")
	fmt.Fprintf(&b, "Rows        : %d\n", r.Stats.Rows)
	fmt.Fprintf(&b, "Languages   : %s\n", strings.Join(r.Stats.Languages, ", "))
	fmt.Fprintf(&b, "Sorted      : %s\n", yesNo(r.Stats.Sorted))

	hasEmpties := false
	for _, lang := range r.Stats.Languages {
		if r.Stats.EmptyPerLanguage[lang] > 0 {
			if !hasEmpties {
				b.WriteString("Empty cells :\n")
				hasEmpties = true
			}
			fmt.Fprintf(&b, "  - %s: %d\n", lang, r.Stats.EmptyPerLanguage[lang])
		}
	}

	if len(r.Stats.DuplicateKeys) > 0 {
		fmt.Fprintf(&b, "Duplicates  : %d -> %s\n",
			len(r.Stats.DuplicateKeys), strings.Join(r.Stats.DuplicateKeys, ", "))
	}

	if r.Counters != nil {
		b.WriteString("Merge result:\n")
		fmt.Fprintf(&b, "  %-14s: %d\n", "added", r.Counters.Added)
		fmt.Fprintf(&b, "  %-14s: %d\n", "updated", r.Counters.Updated)
		fmt.Fprintf(&b, "  %-14s: %d\n", "unchanged", r.Counters.Unchanged)
		fmt.Fprintf(&b, "  %-14s: %d\n", "orphan_kept", r.Counters.OrphanKept)
		fmt.Fprintf(&b, "  %-14s: %d\n", "orphan_dropped", r.Counters.OrphanDropped)
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "WARNING: %s\n", w)
	}

	switch {
	case r.DryRun:
		b.WriteString("Dry-run: no files written.\n")
	default:
		for _, p := range r.Written {
			fmt.Fprintf(&b, "Written : %s\n", p)
		}
		for _, p := range r.Skipped {
			fmt.Fprintf(&b, "Skipped : %s (unchanged)\n", p)
		}
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
