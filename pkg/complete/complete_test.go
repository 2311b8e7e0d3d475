package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMapping(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	tests := []struct {
		ctx  ContextType
		want []CompletionItem
	}{
		{ContextEngine, c.TableEngines},
		{ContextFormat, c.Formats},
		{ContextWhereClause, append(append([]CompletionItem{}, c.Functions...), c.LogicalOperators...)},
		{ContextOrderByClause, append(append([]CompletionItem{}, c.Functions...), c.OrderByKeywords...)},
		{ContextSelectClause, c.Functions},
		{ContextFromClause, c.TableFunctions},
		{ContextColumnDefinition, c.DataTypes},
		{ContextSettings, c.Settings},
		{ContextDefault, c.All},
	}
	require.Len(t, tests, len(Contexts), "every context is covered")

	for _, tt := range tests {
		t.Run(string(tt.ctx), func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.ctx, c))
		})
	}
}

func TestSelectKinds(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	for _, item := range Select(ContextEngine, c) {
		assert.Equal(t, KindEngine, item.Kind, item.Label)
	}
	for _, item := range Select(ContextFormat, c) {
		assert.Equal(t, KindFormat, item.Kind, item.Label)
	}
	for _, item := range Select(ContextColumnDefinition, c) {
		assert.Equal(t, KindType, item.Kind, item.Label)
	}
	for _, item := range Select(ContextSettings, c) {
		assert.Equal(t, KindSetting, item.Kind, item.Label)
	}

	where := Select(ContextWhereClause, c)
	var hasFunction, hasAnd bool
	for _, item := range where {
		if item.Kind == KindFunction || item.Kind == KindMethod {
			hasFunction = true
		}
		if item.Label == "AND" && item.Kind == KindKeyword {
			hasAnd = true
		}
	}
	assert.True(t, hasFunction)
	assert.True(t, hasAnd)

	// functions come before the operators
	assert.Equal(t, c.Functions[0].Label, where[0].Label)
	assert.Equal(t, "IS NOT NULL", where[len(where)-1].Label)
}

func TestSelectDoesNotAliasBuckets(t *testing.T) {
	c := BuildCache(loadDialect(t), true)
	functions := len(c.Functions)

	where := Select(ContextWhereClause, c)
	where[0].Label = "changed"
	_ = append(Select(ContextOrderByClause, c), CompletionItem{Label: "extra"})

	assert.Equal(t, "count", c.Functions[0].Label)
	assert.Len(t, c.Functions, functions)
}

func TestGetCompletions(t *testing.T) {
	c := BuildCache(loadDialect(t), true)

	tests := []struct {
		name      string
		query     string
		position  int
		wantFirst string
		wantLen   int
	}{
		{"engine", "CREATE TABLE t ENGINE = ", 24, "MergeTree", len(c.TableEngines)},
		{"format", "SELECT * FROM t FORMAT ", 23, "JSONEachRow", len(c.Formats)},
		{"from", "SELECT * FROM ", 14, "numbers", len(c.TableFunctions)},
		{"column definition", "CREATE TABLE t (id ", 19, "UInt64", len(c.DataTypes)},
		{"settings", "SELECT * SETTINGS ", 18, "max_threads", len(c.Settings)},
		{"default", "", 0, "count", len(c.All)},
		{"order by", "SELECT * FROM t ORDER BY ", 25, "count", len(c.Functions) + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := GetCompletions(tt.query, tt.position, c)
			require.Len(t, items, tt.wantLen)
			assert.Equal(t, tt.wantFirst, items[0].Label)
		})
	}
}

func TestGetCompletionsNilCache(t *testing.T) {
	items := GetCompletions("SELECT ", 7, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSelectEmptyBucketIsNotNil(t *testing.T) {
	c := BuildCache(nil, true)
	for _, ctx := range Contexts {
		items := Select(ctx, c)
		assert.NotNil(t, items, "context %s", ctx)
	}
	assert.NotNil(t, Select(ContextEngine, nil))
}
