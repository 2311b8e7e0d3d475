package complete

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tentacle-scylla/chsql/internal/testutil"
	"github.com/tentacle-scylla/chsql/pkg/dialect"
)

func loadDialect(t *testing.T) *dialect.Data {
	t.Helper()
	d, err := dialect.Load(testutil.DialectJSON())
	require.NoError(t, err)
	return d
}

func findItem(t *testing.T, items []CompletionItem, label string) CompletionItem {
	t.Helper()
	for _, item := range items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("item %q not found", label)
	return CompletionItem{}
}

func labels(items []CompletionItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func TestBuildCacheBuckets(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	assert.Equal(t, []string{"count", "sum", "toDate", "now", "lower", "lcase", "COUNT_ALIAS"}, labels(c.Functions))
	assert.Len(t, c.Keywords, 11)
	assert.Equal(t, []string{"UInt64", "String", "DateTime", "Nullable", "BIGINT", "TEXT"}, labels(c.DataTypes))
	assert.Equal(t, []string{"MergeTree", "ReplacingMergeTree", "Memory"}, labels(c.TableEngines))
	assert.Len(t, c.Formats, 4)
	assert.Equal(t, []string{"numbers", "remote"}, labels(c.TableFunctions))
	assert.Equal(t, []string{"max_threads", "max_block_size", "index_granularity"}, labels(c.Settings))
	assert.Equal(t, LogicalOperators, labels(c.LogicalOperators))
	assert.Equal(t, OrderByKeywords, labels(c.OrderByKeywords))

	// every dataset item appears once in All, in category order
	want := append([]string{}, labels(c.Functions)...)
	want = append(want, labels(c.Keywords)...)
	want = append(want, labels(c.DataTypes)...)
	want = append(want, labels(c.TableEngines)...)
	want = append(want, labels(c.Formats)...)
	want = append(want, labels(c.TableFunctions)...)
	want = append(want, labels(c.Settings)...)
	assert.Equal(t, want, labels(c.All))
	assert.NotContains(t, labels(c.All), "IS NOT NULL")

	sizes := c.Len()
	assert.Equal(t, len(want), sizes["all"])
	assert.Equal(t, 8, sizes["logical_operators"])
}

func TestBuildCacheDeterministic(t *testing.T) {
	d := loadDialect(t)
	a := BuildCache(d, true)
	b := BuildCache(d, true)

	assert.Equal(t, a, b)
	assert.NotSame(t, &a.All[0], &b.All[0], "each build allocates its own items")
}

func TestFunctionItems(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	count := findItem(t, c.Functions, "count")
	assert.Equal(t, KindMethod, count.Kind)
	assert.Equal(t, "(aggregate function)", count.Detail)
	assert.Equal(t, "count($1)$0", count.InsertText)
	assert.Equal(t, Snippet, count.InsertTextFormat)
	assert.Equal(t, "1_count", count.SortText)
	require.NotNil(t, count.Documentation)
	assert.Equal(t, "markdown", count.Documentation.Kind)
	assert.Equal(t, "**Syntax:** `count(expr)`\n\n"+
		"Counts the number of rows or not-NULL values.\n\n"+
		"**Arguments:**\n- `expr` — An expression.\n\n"+
		"**Returns:**\nNumber of rows. UInt64.\n\n"+
		"**Category:** Aggregate", count.Documentation.Value)

	toDate := findItem(t, c.Functions, "toDate")
	assert.Equal(t, KindFunction, toDate.Kind)
	assert.Equal(t, "(function)", toDate.Detail)

	now := findItem(t, c.Functions, "now")
	require.NotNil(t, now.Documentation)
	assert.Equal(t, "**Syntax:** `now([timezone])`\n\n"+
		"Returns the current date and time at the moment of query analysis.\n\n"+
		"**Category:** Dates and Times", now.Documentation.Value)

	lower := findItem(t, c.Functions, "lower")
	assert.Nil(t, lower.Documentation, "no documentation fields means no documentation")

	lcase := findItem(t, c.Functions, "lcase")
	assert.Equal(t, "(alias for lower)", lcase.Detail)
	assert.Equal(t, "9_lcase", lcase.SortText)
	require.NotNil(t, lcase.Documentation)
	assert.Equal(t, "**lcase** _(alias for `lower`)_", lcase.Documentation.Value)

	alias := findItem(t, c.Functions, "COUNT_ALIAS")
	assert.Equal(t, KindMethod, alias.Kind)
	assert.Equal(t, "(alias for count)", alias.Detail)
	require.NotNil(t, alias.Documentation)
	assert.Equal(t, "**COUNT_ALIAS** _(alias for `count`)_\n\n"+count.Documentation.Value, alias.Documentation.Value)
}

func TestPlainTextInsert(t *testing.T) {
	c := BuildCache(loadDialect(t), false)

	count := findItem(t, c.Functions, "count")
	assert.Equal(t, "count()", count.InsertText)
	assert.Equal(t, PlainText, count.InsertTextFormat)

	numbers := findItem(t, c.TableFunctions, "numbers")
	assert.Equal(t, "numbers()", numbers.InsertText)
	assert.Equal(t, PlainText, numbers.InsertTextFormat)
}

func TestOtherItems(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	sel := findItem(t, c.Keywords, "SELECT")
	assert.Equal(t, KindKeyword, sel.Kind)
	assert.Equal(t, "(keyword)", sel.Detail)
	assert.Equal(t, "SELECT", sel.InsertText)
	assert.Equal(t, "0_SELECT", sel.SortText)
	assert.Nil(t, sel.Documentation)

	u64 := findItem(t, c.DataTypes, "UInt64")
	assert.Equal(t, KindType, u64.Kind)
	assert.Equal(t, "(data type)", u64.Detail)
	assert.Equal(t, "2_UInt64", u64.SortText)

	bigint := findItem(t, c.DataTypes, "BIGINT")
	assert.Equal(t, "(alias for Int64)", bigint.Detail)
	assert.Equal(t, "9_BIGINT", bigint.SortText)

	mt := findItem(t, c.TableEngines, "MergeTree")
	assert.Equal(t, KindEngine, mt.Kind)
	assert.Equal(t, "(table engine)", mt.Detail)
	assert.Equal(t, "3_MergeTree", mt.SortText)

	formats := map[string]string{
		"JSONEachRow":       "(format: input/output)",
		"LineAsString":      "(format: input only)",
		"Pretty":            "(format: output only)",
		"Prometheus_legacy": "(format)",
	}
	for name, detail := range formats {
		f := findItem(t, c.Formats, name)
		assert.Equal(t, KindFormat, f.Kind)
		assert.Equal(t, detail, f.Detail, name)
		assert.Equal(t, "4_"+name, f.SortText)
	}

	numbers := findItem(t, c.TableFunctions, "numbers")
	assert.Equal(t, KindFunction, numbers.Kind)
	assert.Equal(t, "(table function)", numbers.Detail)
	assert.Equal(t, "numbers($1)$0", numbers.InsertText)
	assert.Equal(t, "5_numbers", numbers.SortText)
	require.NotNil(t, numbers.Documentation)
	assert.Equal(t, "Returns tables with a single `number` column.", numbers.Documentation.Value)
	assert.Nil(t, findItem(t, c.TableFunctions, "remote").Documentation)

	threads := findItem(t, c.Settings, "max_threads")
	assert.Equal(t, KindSetting, threads.Kind)
	assert.Equal(t, "(setting: MaxThreads)", threads.Detail)
	assert.Equal(t, "6_max_threads", threads.SortText)
	require.NotNil(t, threads.Documentation)
	assert.Nil(t, findItem(t, c.Settings, "max_block_size").Documentation)

	gran := findItem(t, c.Settings, "index_granularity")
	assert.Equal(t, "(MergeTree setting: UInt64)", gran.Detail)
}

func TestSortKeyOrder(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	sorted := Sorted(c.All)
	require.Len(t, sorted, len(c.All))
	assert.Equal(t, KindKeyword, sorted[0].Kind, "keywords sort first")

	// canonical names come before every alias
	lastCanonical, firstAlias := -1, len(sorted)
	for i, item := range sorted {
		if item.SortKey.Rank == RankAlias {
			if i < firstAlias {
				firstAlias = i
			}
		} else {
			lastCanonical = i
		}
	}
	assert.Less(t, lastCanonical, firstAlias)

	// sortText order agrees with SortKey.Less
	texts := make([]string, len(sorted))
	for i, item := range sorted {
		texts[i] = item.SortText
	}
	assert.True(t, sort.StringsAreSorted(texts))

	// input order is untouched
	assert.Equal(t, "count", c.All[0].Label)
}

func TestSortKeyLess(t *testing.T) {
	assert.True(t, SortKey{RankKeyword, "zzz"}.Less(SortKey{RankFunction, "aaa"}))
	assert.True(t, SortKey{RankFunction, "a"}.Less(SortKey{RankFunction, "b"}))
	assert.False(t, SortKey{RankAlias, "a"}.Less(SortKey{RankSetting, "z"}))
	assert.Equal(t, "9_lcase", SortKey{RankAlias, "lcase"}.String())
}

func TestBuildCacheEmpty(t *testing.T) {
	c := BuildCache(nil, true)
	assert.Empty(t, c.All)
	assert.Len(t, c.LogicalOperators, 8)
	assert.Len(t, c.OrderByKeywords, 4)
}
