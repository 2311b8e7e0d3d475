package complete

import "github.com/tentacle-scylla/chsql/pkg/dialect"

// Cache holds ready-made completion items, one bucket per category. It is
// built once per dataset and must not be modified afterwards.
type Cache struct {
	// All holds every dataset item: functions, keywords, data types,
	// engines, formats, table functions, then settings.
	All []CompletionItem

	Functions      []CompletionItem
	Keywords       []CompletionItem
	DataTypes      []CompletionItem
	TableEngines   []CompletionItem
	Formats        []CompletionItem
	TableFunctions []CompletionItem
	// Settings holds query settings followed by MergeTree settings.
	Settings []CompletionItem

	LogicalOperators []CompletionItem
	OrderByKeywords  []CompletionItem
}

// BuildCache turns a dialect dataset into completion items. It is
// deterministic: the same dataset and useSnippets give equal caches.
func BuildCache(d *dialect.Data, useSnippets bool) *Cache {
	c := &Cache{}
	if d == nil {
		d = &dialect.Data{}
	}

	for i := range d.Functions {
		c.Functions = append(c.Functions, functionItem(&d.Functions[i], d, useSnippets))
	}
	for _, kw := range d.Keywords {
		c.Keywords = append(c.Keywords, keywordItem(kw))
	}
	for i := range d.DataTypes {
		c.DataTypes = append(c.DataTypes, dataTypeItem(&d.DataTypes[i]))
	}
	for i := range d.TableEngines {
		c.TableEngines = append(c.TableEngines, tableEngineItem(&d.TableEngines[i]))
	}
	for i := range d.Formats {
		c.Formats = append(c.Formats, formatItem(&d.Formats[i]))
	}
	for i := range d.TableFunctions {
		c.TableFunctions = append(c.TableFunctions, tableFunctionItem(&d.TableFunctions[i], useSnippets))
	}
	for i := range d.Settings {
		c.Settings = append(c.Settings, settingItem(&d.Settings[i], false))
	}
	for i := range d.MergeTreeSettings {
		c.Settings = append(c.Settings, settingItem(&d.MergeTreeSettings[i], true))
	}

	c.All = make([]CompletionItem, 0, len(c.Functions)+len(c.Keywords)+len(c.DataTypes)+
		len(c.TableEngines)+len(c.Formats)+len(c.TableFunctions)+len(c.Settings))
	for _, bucket := range [][]CompletionItem{
		c.Functions, c.Keywords, c.DataTypes, c.TableEngines, c.Formats, c.TableFunctions, c.Settings,
	} {
		c.All = append(c.All, bucket...)
	}

	for _, op := range LogicalOperators {
		c.LogicalOperators = append(c.LogicalOperators, keywordItem(op))
	}
	for _, kw := range OrderByKeywords {
		c.OrderByKeywords = append(c.OrderByKeywords, keywordItem(kw))
	}
	return c
}

// Len returns the number of items in each bucket, keyed by bucket name.
func (c *Cache) Len() map[string]int {
	return map[string]int{
		"all":               len(c.All),
		"functions":         len(c.Functions),
		"keywords":          len(c.Keywords),
		"data_types":        len(c.DataTypes),
		"table_engines":     len(c.TableEngines),
		"formats":           len(c.Formats),
		"table_functions":   len(c.TableFunctions),
		"settings":          len(c.Settings),
		"logical_operators": len(c.LogicalOperators),
		"order_by_keywords": len(c.OrderByKeywords),
	}
}
