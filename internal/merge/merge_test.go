package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoslabs/i18ngen/internal/model"
)

func rec(key string, kv ...string) model.Record {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}
	return model.Record{Key: key, Values: values}
}

func counterIdentity(t *testing.T, m model.Model, c Counters) {
	t.Helper()
	assert.Equal(t, len(m.Records), c.Added+c.Updated+c.Unchanged+c.OrphanKept,
		"added+updated+unchanged+orphan_kept must equal the merged record count")
}

func TestMergeLanguageUnion(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("a", "en", "A", "fr", "")},
	}
	secondary := model.Model{
		Languages: []string{"fr", "de", "es"},
		Records:   []model.Record{rec("a", "fr", "Un", "de", "Ein", "es", "Uno")},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true}, nil)

	assert.Equal(t, []string{"en", "fr", "de", "es"}, merged.Languages,
		"primary languages first in order, then secondary extras in order")
	counterIdentity(t, merged, c)
}

func TestMergeConservativePreferPrimary(t *testing.T) {
	// The worked example: primary {ok, en:"OK", fr:""} vs secondary
	// {ok, en:"", fr:"D'accord"} must merge to {en:"OK", fr:"D'accord"}
	// and classify as updated.
	primary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("ok", "en", "OK", "fr", "")},
	}
	secondary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("ok", "en", "", "fr", "D'accord")},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true}, nil)

	require.Len(t, merged.Records, 1)
	assert.Equal(t, "OK", merged.Records[0].Value("en"))
	assert.Equal(t, "D'accord", merged.Records[0].Value("fr"))
	assert.Equal(t, Counters{Updated: 1}, c)
	counterIdentity(t, merged, c)
}

func TestMergeConservativePreferSecondary(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("k", "en", "new")},
	}
	secondary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("k", "en", "old")},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: false}, nil)

	assert.Equal(t, "old", merged.Records[0].Value("en"),
		"secondary wins non-empty conflicts when not preferring primary")
	assert.Equal(t, Counters{Unchanged: 1}, c)
	counterIdentity(t, merged, c)
}

func TestMergeNonDestructiveDefault(t *testing.T) {
	// In conservative mode the merged value is never empty if either side
	// had a non-empty value, regardless of tie preference.
	primary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("k", "en", "", "fr", "salut")},
	}
	secondary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("k", "en", "hello", "fr", "")},
	}

	for _, preferPrimary := range []bool{true, false} {
		merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: preferPrimary}, nil)
		assert.Equal(t, "hello", merged.Records[0].Value("en"), "preferPrimary=%v", preferPrimary)
		assert.Equal(t, "salut", merged.Records[0].Value("fr"), "preferPrimary=%v", preferPrimary)
		counterIdentity(t, merged, c)
	}
}

func TestMergeOverwriteAllPreferPrimary(t *testing.T) {
	// Danger mode determinism: the merged value equals the primary value
	// exactly, even when empty.
	primary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("k", "en", "", "fr", "oui")},
	}
	secondary := model.Model{
		Languages: []string{"en", "fr"},
		Records:   []model.Record{rec("k", "en", "manual edit", "fr", "non")},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true, OverwriteAll: true}, nil)

	assert.Equal(t, "", merged.Records[0].Value("en"), "blank cell erases the manual edit")
	assert.Equal(t, "oui", merged.Records[0].Value("fr"))
	assert.Equal(t, Counters{Updated: 1}, c)
	counterIdentity(t, merged, c)
}

func TestMergeOverwriteAllPreferSecondary(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("k", "en", "new")},
	}
	secondary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("k", "en", "")},
	}

	merged, c := Merge(primary, secondary, Policy{OverwriteAll: true}, nil)

	assert.Equal(t, "", merged.Records[0].Value("en"))
	assert.Equal(t, Counters{Unchanged: 1}, c)
	counterIdentity(t, merged, c)
}

func TestMergeKeyOrderAndOrphans(t *testing.T) {
	// The worked example: primary [a,b], secondary [b,c] keeps order
	// [a,b,c] with a added and c kept as orphan.
	primary := model.Model{
		Languages: []string{"en"},
		Records: []model.Record{
			rec("a", "en", "A"),
			rec("b", "en", "B"),
		},
	}
	secondary := model.Model{
		Languages: []string{"en"},
		Records: []model.Record{
			rec("b", "en", "B"),
			rec("c", "en", "C"),
		},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true}, nil)

	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	assert.Equal(t, 1, c.Added)
	assert.Equal(t, 1, c.OrphanKept)
	assert.Equal(t, 1, c.Unchanged)
	assert.Equal(t, 0, c.OrphanDropped)
	assert.Equal(t, "C", merged.Records[2].Value("en"), "orphan fields are verbatim from secondary")
	counterIdentity(t, merged, c)
}

func TestMergeDropOrphans(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("a", "en", "A")},
	}
	secondary := model.Model{
		Languages: []string{"en"},
		Records: []model.Record{
			rec("gone", "en", "X"),
			rec("a", "en", "A"),
			rec("gone2", "en", "Y"),
		},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true, DropOrphans: true}, nil)

	assert.Equal(t, []string{"a"}, merged.Keys())
	assert.Equal(t, 2, c.OrphanDropped)
	assert.Equal(t, 0, c.OrphanKept)
	counterIdentity(t, merged, c)
}

func TestMergeOrderHint(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en"},
		Records: []model.Record{
			rec("b", "en", "B"),
			rec("a", "en", "A"),
		},
	}

	merged, c := Merge(primary, model.Model{}, Policy{PreferPrimaryOnTie: true}, []string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, merged.Keys(), "order hint dictates the leading order")
	assert.Equal(t, 2, c.Added)
	counterIdentity(t, merged, c)
}

func TestMergeEmptySecondary(t *testing.T) {
	// An absent secondary source is the zero Model; everything classifies
	// as added.
	primary := model.Model{
		Languages: []string{"en", "hr"},
		Records: []model.Record{
			rec("touch_to_wake", "en", "Touch to wake", "hr", "Dodirni za povratak"),
			rec("bye", "en", "Bye", "hr", ""),
		},
	}

	merged, c := Merge(primary, model.Model{}, Policy{PreferPrimaryOnTie: true}, nil)

	assert.Equal(t, primary.Keys(), merged.Keys())
	assert.Equal(t, Counters{Added: 2}, c)
	counterIdentity(t, merged, c)
}

func TestMergeIdempotence(t *testing.T) {
	m := model.Model{
		Languages: []string{"en", "de"},
		Records: []model.Record{
			rec("a", "en", "A", "de", "Ein A"),
			rec("b", "en", "", "de", "B"),
		},
	}

	for _, preferPrimary := range []bool{true, false} {
		merged, c := Merge(m, m, Policy{PreferPrimaryOnTie: preferPrimary}, nil)
		assert.Equal(t, Counters{Unchanged: 2}, c, "preferPrimary=%v", preferPrimary)
		assert.Equal(t, m.Keys(), merged.Keys())
		counterIdentity(t, merged, c)
	}
}

func TestMergeAddedFillsMissingLanguages(t *testing.T) {
	// A key only in the primary still gets a value slot for every merged
	// language; languages the primary lacks read as "".
	primary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("new", "en", "New")},
	}
	secondary := model.Model{
		Languages: []string{"en", "de"},
		Records:   []model.Record{rec("old", "en", "Old", "de", "Alt")},
	}

	merged, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true}, nil)

	require.Equal(t, []string{"new", "old"}, merged.Keys())
	assert.Equal(t, "", merged.Records[0].Value("de"))
	assert.Equal(t, "Alt", merged.Records[1].Value("de"))
	assert.Equal(t, Counters{Added: 1, OrphanKept: 1}, c)
	counterIdentity(t, merged, c)
}

func TestMergeUnionCompleteness(t *testing.T) {
	primary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("a", "en", "1"), rec("b", "en", "2")},
	}
	secondary := model.Model{
		Languages: []string{"en"},
		Records:   []model.Record{rec("b", "en", "2"), rec("c", "en", "3"), rec("d", "en", "4")},
	}

	merged, _ := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true}, nil)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, merged.Keys())

	dropped, c := Merge(primary, secondary, Policy{PreferPrimaryOnTie: true, DropOrphans: true}, nil)
	assert.ElementsMatch(t, []string{"a", "b"}, dropped.Keys())
	assert.Equal(t, 2, c.OrphanDropped)
}
