// Package dialect holds the ClickHouse dialect dataset: functions, keywords,
// data types, table engines, formats, table functions and settings.
//
// A Data value is built once from a JSON document and is read-only afterwards,
// so it can be shared between goroutines without locking.
package dialect

// FunctionInfo describes a regular or aggregate function.
type FunctionInfo struct {
	Name          string  `json:"name"`
	IsAggregate   bool    `json:"isAggregate"`
	AliasTo       *string `json:"aliasTo,omitempty"`
	Syntax        string  `json:"syntax"`
	Description   string  `json:"description"`
	Arguments     string  `json:"arguments"`
	ReturnedValue string  `json:"returnedValue"`
	Categories    string  `json:"categories"`
}

// IsAlias reports whether the function is an alias of another function.
func (f *FunctionInfo) IsAlias() bool {
	return f.AliasTo != nil
}

// DataTypeInfo describes a data type, possibly an alias of another type.
type DataTypeInfo struct {
	Name    string  `json:"name"`
	AliasTo *string `json:"aliasTo,omitempty"`
}

// IsAlias reports whether the type is an alias of another type.
func (t *DataTypeInfo) IsAlias() bool {
	return t.AliasTo != nil
}

// TableEngineInfo describes a table engine.
type TableEngineInfo struct {
	Name string `json:"name"`
}

// FormatInfo describes an input/output format.
type FormatInfo struct {
	Name     string `json:"name"`
	IsInput  bool   `json:"isInput"`
	IsOutput bool   `json:"isOutput"`
}

// TableFunctionInfo describes a table function (usable after FROM).
type TableFunctionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SettingInfo describes a query-level or MergeTree setting.
type SettingInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Data is the complete dialect dataset for one server version.
//
// Field names and JSON casing are shared with the version detector that
// produces the document, so they must not change.
type Data struct {
	Functions            []FunctionInfo      `json:"functions"`
	Keywords             []string            `json:"keywords"`
	DataTypes            []DataTypeInfo      `json:"dataTypes"`
	TableEngines         []TableEngineInfo   `json:"tableEngines"`
	Formats              []FormatInfo        `json:"formats"`
	TableFunctions       []TableFunctionInfo `json:"tableFunctions"`
	AggregateCombinators []string            `json:"aggregateCombinators,omitempty"`
	Settings             []SettingInfo       `json:"settings"`
	MergeTreeSettings    []SettingInfo       `json:"mergeTreeSettings"`

	idx *index
}

// Stats summarizes the size of each list, mostly for logging.
type Stats struct {
	Functions         int `json:"functions"`
	Keywords          int `json:"keywords"`
	DataTypes         int `json:"dataTypes"`
	TableEngines      int `json:"tableEngines"`
	Formats           int `json:"formats"`
	TableFunctions    int `json:"tableFunctions"`
	Settings          int `json:"settings"`
	MergeTreeSettings int `json:"mergeTreeSettings"`
}

// Stats returns the number of entries in each list.
func (d *Data) Stats() Stats {
	return Stats{
		Functions:         len(d.Functions),
		Keywords:          len(d.Keywords),
		DataTypes:         len(d.DataTypes),
		TableEngines:      len(d.TableEngines),
		Formats:           len(d.Formats),
		TableFunctions:    len(d.TableFunctions),
		Settings:          len(d.Settings),
		MergeTreeSettings: len(d.MergeTreeSettings),
	}
}
