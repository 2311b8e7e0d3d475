package dialect

import (
	"sort"
	"strings"
)

// lookup resolves names exactly first, then case-insensitively. The first
// entry wins when a name appears more than once.
type lookup[T any] struct {
	exact  map[string]*T
	folded map[string]*T
}

func newLookup[T any](items []T, name func(*T) string) lookup[T] {
	l := lookup[T]{
		exact:  make(map[string]*T, len(items)),
		folded: make(map[string]*T, len(items)),
	}
	for i := range items {
		item := &items[i]
		n := name(item)
		if _, ok := l.exact[n]; !ok {
			l.exact[n] = item
		}
		folded := strings.ToLower(n)
		if _, ok := l.folded[folded]; !ok {
			l.folded[folded] = item
		}
	}
	return l
}

func (l lookup[T]) get(name string) (*T, bool) {
	if item, ok := l.exact[name]; ok {
		return item, true
	}
	item, ok := l.folded[strings.ToLower(name)]
	return item, ok
}

type index struct {
	functions         lookup[FunctionInfo]
	dataTypes         lookup[DataTypeInfo]
	tableEngines      lookup[TableEngineInfo]
	formats           lookup[FormatInfo]
	tableFunctions    lookup[TableFunctionInfo]
	settings          lookup[SettingInfo]
	mergeTreeSettings lookup[SettingInfo]
	keywords          map[string]bool
	// longest first, so "MergeState" is tried before "State"
	combinators []string
}

func buildIndex(d *Data) *index {
	idx := &index{
		functions:         newLookup(d.Functions, func(f *FunctionInfo) string { return f.Name }),
		dataTypes:         newLookup(d.DataTypes, func(t *DataTypeInfo) string { return t.Name }),
		tableEngines:      newLookup(d.TableEngines, func(e *TableEngineInfo) string { return e.Name }),
		formats:           newLookup(d.Formats, func(f *FormatInfo) string { return f.Name }),
		tableFunctions:    newLookup(d.TableFunctions, func(f *TableFunctionInfo) string { return f.Name }),
		settings:          newLookup(d.Settings, func(s *SettingInfo) string { return s.Name }),
		mergeTreeSettings: newLookup(d.MergeTreeSettings, func(s *SettingInfo) string { return s.Name }),
		keywords:          make(map[string]bool, len(d.Keywords)),
	}
	// "GROUP BY" also makes GROUP and BY keywords
	for _, kw := range d.Keywords {
		kw = strings.ToUpper(kw)
		idx.keywords[kw] = true
		for _, part := range strings.Fields(kw) {
			idx.keywords[part] = true
		}
	}
	idx.combinators = append(idx.combinators, d.AggregateCombinators...)
	sort.SliceStable(idx.combinators, func(i, j int) bool {
		return len(idx.combinators[i]) > len(idx.combinators[j])
	})
	return idx
}

// Function returns the function with the given name.
func (d *Data) Function(name string) (*FunctionInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.functions.get(name)
}

// DataType returns the data type with the given name.
func (d *Data) DataType(name string) (*DataTypeInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.dataTypes.get(name)
}

// TableEngine returns the table engine with the given name.
func (d *Data) TableEngine(name string) (*TableEngineInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.tableEngines.get(name)
}

// Format returns the format with the given name.
func (d *Data) Format(name string) (*FormatInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.formats.get(name)
}

// TableFunction returns the table function with the given name.
func (d *Data) TableFunction(name string) (*TableFunctionInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.tableFunctions.get(name)
}

// Setting returns the query-level setting with the given name.
func (d *Data) Setting(name string) (*SettingInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.settings.get(name)
}

// MergeTreeSetting returns the MergeTree setting with the given name.
func (d *Data) MergeTreeSetting(name string) (*SettingInfo, bool) {
	if d == nil || d.idx == nil {
		return nil, false
	}
	return d.idx.mergeTreeSettings.get(name)
}

// IsKeyword reports whether word is a keyword or one word of a multi-word
// keyword, ignoring case.
func (d *Data) IsKeyword(word string) bool {
	if d == nil || d.idx == nil {
		return false
	}
	return d.idx.keywords[strings.ToUpper(word)]
}

// IsFunction reports whether name is a function or a table function.
func (d *Data) IsFunction(name string) bool {
	if _, ok := d.Function(name); ok {
		return true
	}
	_, ok := d.TableFunction(name)
	return ok
}

// IsType reports whether name is a data type.
func (d *Data) IsType(name string) bool {
	_, ok := d.DataType(name)
	return ok
}

// SplitCombinator splits a combined aggregate name such as "sumIf" into its
// base aggregate function and the combinator suffix.
func (d *Data) SplitCombinator(name string) (*FunctionInfo, string, bool) {
	if d == nil || d.idx == nil {
		return nil, "", false
	}
	for _, c := range d.idx.combinators {
		if len(name) <= len(c) || !strings.HasSuffix(name, c) {
			continue
		}
		base, ok := d.idx.functions.get(strings.TrimSuffix(name, c))
		if ok && base.IsAggregate {
			return base, c, true
		}
	}
	return nil, "", false
}
