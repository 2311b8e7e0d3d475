// Package complete provides context-aware ClickHouse SQL auto-completion.
package complete

// CompletionKind identifies the type of completion item.
type CompletionKind string

const (
	KindFunction CompletionKind = "function"
	KindKeyword  CompletionKind = "keyword"
	KindType     CompletionKind = "typeParameter" // Data type
	KindEngine   CompletionKind = "class"         // Table engine
	KindFormat   CompletionKind = "constant"      // Input/output format
	KindSetting  CompletionKind = "property"      // Query or MergeTree setting
	KindMethod   CompletionKind = "method"        // Aggregate function
)

// InsertTextFormat tells the editor how to interpret InsertText.
type InsertTextFormat int

const (
	PlainText InsertTextFormat = 1
	Snippet   InsertTextFormat = 2
)

// Documentation is markdown shown next to a completion item.
type Documentation struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func markdown(value string) *Documentation {
	return &Documentation{Kind: "markdown", Value: value}
}

// CompletionItem represents a single completion suggestion.
type CompletionItem struct {
	// Label is the display text shown in the completion list
	Label string `json:"label"`

	// Kind identifies the type of completion (function, keyword, engine, etc.)
	Kind CompletionKind `json:"kind"`

	// Detail is a short description such as "(aggregate function)"
	Detail string `json:"detail,omitempty"`

	// Documentation provides extended markdown documentation
	Documentation *Documentation `json:"documentation,omitempty"`

	// InsertText is the text to insert (may differ from Label for snippets)
	InsertText string `json:"insertText,omitempty"`

	// InsertTextFormat is PlainText or Snippet
	InsertTextFormat InsertTextFormat `json:"insertTextFormat,omitempty"`

	// SortText is the rendered SortKey; editors order items by it
	SortText string `json:"sortText,omitempty"`

	// SortKey controls ordering (lower rank first, then name)
	SortKey SortKey `json:"-"`
}

// GetInsertText returns the text to insert, defaulting to Label.
func (c *CompletionItem) GetInsertText() string {
	if c.InsertText != "" {
		return c.InsertText
	}
	return c.Label
}

// ContextType identifies the clause the cursor is in.
type ContextType string

const (
	ContextEngine           ContextType = "engine"            // After ENGINE =
	ContextFormat           ContextType = "format"            // After FORMAT
	ContextWhereClause      ContextType = "where_clause"      // Inside WHERE or HAVING
	ContextOrderByClause    ContextType = "order_by_clause"   // Inside ORDER BY or GROUP BY
	ContextSelectClause     ContextType = "select_clause"     // Between SELECT and FROM
	ContextFromClause       ContextType = "from_clause"       // After FROM or JOIN
	ContextColumnDefinition ContextType = "column_definition" // Inside CREATE TABLE (...)
	ContextSettings         ContextType = "settings"          // After SETTINGS
	ContextDefault          ContextType = "default"           // Anything else
)

// Contexts lists every ContextType.
var Contexts = []ContextType{
	ContextEngine,
	ContextFormat,
	ContextWhereClause,
	ContextOrderByClause,
	ContextSelectClause,
	ContextFromClause,
	ContextColumnDefinition,
	ContextSettings,
	ContextDefault,
}
