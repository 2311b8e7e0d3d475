// Package chsql provides completion, hover and lexical validation for
// ClickHouse SQL embedded in application code.
//
// This is a convenience package that re-exports the main types and functions
// from the sub-packages. For more control, import the sub-packages directly:
//
//   - github.com/tentacle-scylla/chsql/pkg/engine   - Write-once completion engine
//   - github.com/tentacle-scylla/chsql/pkg/dialect  - ClickHouse dialect dataset
//   - github.com/tentacle-scylla/chsql/pkg/complete - Context detection and completion items
//   - github.com/tentacle-scylla/chsql/pkg/hover    - Hover documentation
//   - github.com/tentacle-scylla/chsql/pkg/lint     - Lexical validation
//   - github.com/tentacle-scylla/chsql/pkg/tokenize - Tokens and syntax highlighting
//   - github.com/tentacle-scylla/chsql/pkg/types    - Common types (Error, StatementType)
package chsql

import (
	"github.com/tentacle-scylla/chsql/pkg/complete"
	"github.com/tentacle-scylla/chsql/pkg/dialect"
	"github.com/tentacle-scylla/chsql/pkg/engine"
	"github.com/tentacle-scylla/chsql/pkg/hover"
	"github.com/tentacle-scylla/chsql/pkg/lint"
	"github.com/tentacle-scylla/chsql/pkg/tokenize"
	"github.com/tentacle-scylla/chsql/pkg/types"
)

// Re-export types
type (
	// Engine owns a completion cache behind a write-once slot
	Engine = engine.Engine

	// InitResult is the outcome of Engine.InitResult
	InitResult = engine.InitResult

	// DialectData is a loaded ClickHouse dialect dataset
	DialectData = dialect.Data

	// CompletionItem represents a single completion suggestion
	CompletionItem = complete.CompletionItem

	// CompletionKind identifies the type of completion item
	CompletionKind = complete.CompletionKind

	// Context identifies the clause the cursor is in
	Context = complete.ContextType

	// HoverInfo contains documentation for the word under the cursor
	HoverInfo = hover.HoverInfo

	// Validation is the result of Validate
	Validation = lint.Validation

	// LintResult contains detailed lint results for a statement
	LintResult = lint.Result

	// Error represents a validation error with position information
	Error = types.Error

	// Errors is a collection of Error pointers
	Errors = types.Errors

	// StatementType represents the type of ClickHouse statement
	StatementType = types.StatementType

	// Token is a single lexical token
	Token = tokenize.Token

	// Highlight is a classified span for syntax highlighting
	Highlight = tokenize.Highlight
)

// Re-export context constants
const (
	ContextEngine           = complete.ContextEngine
	ContextFormat           = complete.ContextFormat
	ContextWhereClause      = complete.ContextWhereClause
	ContextOrderByClause    = complete.ContextOrderByClause
	ContextSelectClause     = complete.ContextSelectClause
	ContextFromClause       = complete.ContextFromClause
	ContextColumnDefinition = complete.ContextColumnDefinition
	ContextSettings         = complete.ContextSettings
	ContextDefault          = complete.ContextDefault
)

// ErrAlreadyInitialized is returned by a second Engine.Init
var ErrAlreadyInitialized = engine.ErrAlreadyInitialized

// NewEngine creates an engine with no dataset loaded
func NewEngine(opts ...engine.Option) *Engine {
	return engine.New(opts...)
}

// LoadDialect parses a dialect JSON document
func LoadDialect(data []byte) (*DialectData, error) {
	return dialect.Load(data)
}

// DetectContext returns the clause the cursor is in
func DetectContext(sql string, cursorOffset int) Context {
	return complete.DetectContext(sql, cursorOffset)
}

// Validate checks SQL lexically and reports the first problem
func Validate(sql string) Validation {
	return lint.Validate(sql)
}

// Lint validates SQL and returns every error found
func Lint(input string) Errors {
	return lint.CheckMultiple(input)
}

// AnalyzeMultiple performs detailed analysis on each statement
func AnalyzeMultiple(input string) []*LintResult {
	return lint.AnalyzeMultiple(input)
}

// Tokenize returns the non-whitespace tokens of sql
func Tokenize(sql string) ([]Token, error) {
	toks, err := tokenize.Lex(sql)
	if err != nil {
		return nil, err
	}
	out := toks[:0]
	for _, tok := range toks {
		if tok.Kind != tokenize.KindWhitespace {
			out = append(out, tok)
		}
	}
	return out, nil
}

// Classify splits sql into highlight spans. data may be nil.
func Classify(sql string, data *DialectData) []Highlight {
	if data == nil {
		return tokenize.Classify(sql, nil)
	}
	return tokenize.Classify(sql, data)
}
