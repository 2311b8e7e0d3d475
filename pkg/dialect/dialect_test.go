package dialect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tentacle-scylla/chsql/internal/testutil"
)

func TestLoad(t *testing.T) {
	d, err := Load(testutil.DialectJSON())
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Functions:         7,
		Keywords:          11,
		DataTypes:         6,
		TableEngines:      3,
		Formats:           4,
		TableFunctions:    2,
		Settings:          2,
		MergeTreeSettings: 1,
	}, d.Stats())

	lcase, ok := d.Function("lcase")
	require.True(t, ok)
	require.True(t, lcase.IsAlias())
	assert.Equal(t, "lower", *lcase.AliasTo)

	lower, ok := d.Function("lower")
	require.True(t, ok)
	assert.False(t, lower.IsAlias())
	assert.Empty(t, lower.Syntax, "missing optional fields default to empty")

	f, ok := d.Format("Pretty")
	require.True(t, ok)
	assert.False(t, f.IsInput)
	assert.True(t, f.IsOutput)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "not json",
			input:   `{"functions": [`,
			wantMsg: "decoding dialect JSON",
		},
		{
			name:    "empty document",
			input:   ``,
			wantMsg: "must be a JSON object",
		},
		{
			name:    "top level array",
			input:   `[]`,
			wantMsg: "must be a JSON object",
		},
		{
			name:    "wrong field type",
			input:   `{"functions": [{"name": "f", "isAggregate": "yes"}]}`,
			wantMsg: "decoding dialect JSON",
		},
		{
			name:    "function without name",
			input:   `{"functions": [{"name": "ok"}, {"isAggregate": true}]}`,
			wantMsg: `functions[1]: missing required field "name"`,
		},
		{
			name:    "engine without name",
			input:   `{"tableEngines": [{}]}`,
			wantMsg: `tableEngines[0]: missing required field "name"`,
		},
		{
			name:    "merge tree setting without name",
			input:   `{"mergeTreeSettings": [{"type": "UInt64"}]}`,
			wantMsg: `mergeTreeSettings[0]`,
		},
		{
			name:    "blank keyword",
			input:   `{"keywords": ["SELECT", " "]}`,
			wantMsg: "keywords[1]: empty keyword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errors.Is(err, ErrParse), "error should be marked ErrParse: %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	d, err := Load([]byte(`{"keywords": ["SELECT"], "somethingNew": [1, 2, 3]}`))
	require.NoError(t, err)

	assert.Empty(t, d.Functions)
	assert.Empty(t, d.Settings)
	assert.Empty(t, d.AggregateCombinators)
	assert.True(t, d.IsKeyword("select"))
}

func TestLookupCaseFolding(t *testing.T) {
	d, err := Load(testutil.DialectJSON())
	require.NoError(t, err)

	fn, ok := d.Function("TODATE")
	require.True(t, ok)
	assert.Equal(t, "toDate", fn.Name)

	// exact match wins over folded match
	_, ok = d.Function("COUNT_ALIAS")
	assert.True(t, ok)

	_, ok = d.Setting("MAX_THREADS")
	assert.True(t, ok)
	_, ok = d.Setting("index_granularity")
	assert.False(t, ok, "merge tree settings are a separate list")
	_, ok = d.MergeTreeSetting("index_granularity")
	assert.True(t, ok)

	assert.True(t, d.IsFunction("numbers"))
	assert.True(t, d.IsType("uint64"))
	assert.False(t, d.IsKeyword("nonsense"))
}

func TestSplitCombinator(t *testing.T) {
	d, err := Load(testutil.DialectJSON())
	require.NoError(t, err)

	tests := []struct {
		name       string
		wantBase   string
		wantSuffix string
		wantOK     bool
	}{
		{"sumIf", "sum", "If", true},
		{"countArray", "count", "Array", true},
		{"sumMergeState", "sum", "MergeState", true},
		{"sumState", "sum", "State", true},
		{"toDateIf", "", "", false}, // not an aggregate
		{"If", "", "", false},
		{"sum", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, suffix, ok := d.SplitCombinator(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantBase, base.Name)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	d, err := Load(testutil.DialectJSON())
	require.NoError(t, err)

	out, err := d.ToJSONIndent()
	require.NoError(t, err)

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, d.Stats(), again.Stats())
	assert.Equal(t, d.Functions, again.Functions)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialect.json")
	require.NoError(t, os.WriteFile(path, testutil.DialectJSON(), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, d.TableEngines, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrParse), "I/O errors are not parse errors")
}

func TestNilDataLookups(t *testing.T) {
	var d *Data
	_, ok := d.Function("count")
	assert.False(t, ok)
	assert.False(t, d.IsKeyword("SELECT"))
	_, _, ok = d.SplitCombinator("sumIf")
	assert.False(t, ok)
}
