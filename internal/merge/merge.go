// =============================================================================
// i18ngen - Merge Engine
// =============================================================================
//
// Reconciles a freshly parsed tabular model (primary) against a previously
// generated table model (secondary) into a single consistent merged model
// plus change counters. This is pure data transformation: it never touches
// raw text, never performs I/O, and never fails. An absent secondary source
// is represented as the zero Model, which the algorithm handles uniformly
// (every primary key classifies as added).
//
// RULES:
//   - Languages: primary's languages first in their original order, then
//     secondary-only languages in theirs.
//   - Record order: the order hint (usually the primary's key order) if
//     given, else the primary's natural order; then secondary-only keys in
//     secondary order, unless DropOrphans.
//   - Shared keys merge per language under the policy below.
//
// =============================================================================

package merge

import (
	"github.com/chronoslabs/i18ngen/internal/model"
)

// =============================================================================
// POLICY AND COUNTERS
// =============================================================================

// Policy controls conflict resolution for keys present in both models.
type Policy struct {
	// PreferPrimaryOnTie picks the primary (spreadsheet) value when both
	// sides hold a non-empty value for the same key and language. When
	// false, the secondary (existing table) value wins such ties.
	PreferPrimaryOnTie bool

	// OverwriteAll takes the preferred side's value unconditionally, even
	// when it is empty. This is the explicit danger mode: a blank
	// spreadsheet cell can erase a previously filled-in translation. In the
	// default conservative mode a non-empty value is never replaced by an
	// empty one.
	OverwriteAll bool

	// DropOrphans omits keys that exist only in the secondary model instead
	// of carrying them over.
	DropOrphans bool
}

// Counters reports what the merge did. The identity
// Added+Updated+Unchanged+OrphanKept == len(merged.Records) always holds.
type Counters struct {
	Added         int
	Updated       int
	Unchanged     int
	OrphanKept    int
	OrphanDropped int
}

// =============================================================================
// MERGE
// =============================================================================

// Merge produces the merged model and counters for two models under the
// given policy. orderHint, when non-nil, dictates the leading record order
// (it is typically the primary model's key order); secondary-only keys
// always follow in the secondary model's natural order.
//
// Per-key classification over the union of both key sets:
//   - primary only: added, fields verbatim from primary (languages the
//     primary lacks read as "")
//   - secondary only: orphan, kept verbatim or dropped per policy
//   - both: per-language resolution under the policy; the key counts as
//     updated when any resulting field differs from the secondary value,
//     else unchanged
func Merge(primary, secondary model.Model, policy Policy, orderHint []string) (model.Model, Counters) {
	var c Counters

	// Language union, primary first, both sides keeping internal order.
	mergedLangs := make([]string, 0, len(primary.Languages)+len(secondary.Languages))
	seenLang := make(map[string]bool, cap(mergedLangs))
	for _, lang := range primary.Languages {
		mergedLangs = append(mergedLangs, lang)
		seenLang[lang] = true
	}
	for _, lang := range secondary.Languages {
		if !seenLang[lang] {
			mergedLangs = append(mergedLangs, lang)
			seenLang[lang] = true
		}
	}

	primaryIdx := primary.Index()
	secondaryIdx := secondary.Index()

	// Output key order: hint (or primary order), then surviving orphans in
	// secondary order.
	keys := make([]string, 0, len(primary.Records)+len(secondary.Records))
	if orderHint != nil {
		keys = append(keys, orderHint...)
	} else {
		keys = append(keys, primary.Keys()...)
	}
	for _, r := range secondary.Records {
		if _, inPrimary := primaryIdx[r.Key]; inPrimary {
			continue
		}
		if policy.DropOrphans {
			c.OrphanDropped++
			continue
		}
		c.OrphanKept++
		keys = append(keys, r.Key)
	}

	merged := make([]model.Record, 0, len(keys))
	for _, key := range keys {
		p, inPrimary := primaryIdx[key]
		s, inSecondary := secondaryIdx[key]

		values := make(map[string]string, len(mergedLangs))
		switch {
		case inPrimary && !inSecondary:
			for _, lang := range mergedLangs {
				values[lang] = p.Value(lang)
			}
			c.Added++

		case inSecondary && !inPrimary:
			// Orphan; counted while building the key order above.
			for _, lang := range mergedLangs {
				values[lang] = s.Value(lang)
			}

		default:
			changed := false
			for _, lang := range mergedLangs {
				val := resolve(p.Value(lang), s.Value(lang), policy)
				if val != s.Value(lang) {
					changed = true
				}
				values[lang] = val
			}
			if changed {
				c.Updated++
			} else {
				c.Unchanged++
			}
		}

		merged = append(merged, model.Record{Key: key, Values: values})
	}

	return model.Model{Languages: mergedLangs, Records: merged}, c
}

// resolve picks the merged value for one key and language. p is the primary
// value, s the secondary; either may be "" when that side lacks the
// language or left the cell blank.
func resolve(p, s string, policy Policy) string {
	if policy.OverwriteAll {
		if policy.PreferPrimaryOnTie {
			return p
		}
		return s
	}
	if policy.PreferPrimaryOnTie {
		if p != "" {
			return p
		}
		return s
	}
	if s != "" {
		return s
	}
	return p
}
