package hover

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tentacle-scylla/chsql/pkg/dialect"
)

// GetHoverInfo returns hover information for the token at the given position.
func GetHoverInfo(ctx *HoverContext) *HoverInfo {
	if ctx == nil || ctx.Query == "" {
		return nil
	}

	// Find the token at the cursor position
	token := FindTokenAtPosition(ctx.Query, ctx.Position, ctx.Data)
	if token == nil || token.Text == "" {
		return nil
	}

	return resolveHoverInfo(token, ctx.Data)
}

// FindTokenAtPosition finds the token at the given cursor position. data is
// only used to tell keywords from identifiers and may be nil.
func FindTokenAtPosition(query string, position int, data *dialect.Data) *Token {
	if len(query) == 0 {
		return nil
	}
	if position < 0 {
		position = 0
	}

	// Handle cursor at end or past end - clamp to last character
	if position >= len(query) {
		position = len(query) - 1
	}

	// Check if cursor is on whitespace or delimiter - no token at this position
	ch := rune(query[position])
	if unicode.IsSpace(ch) {
		return nil
	}

	// Check if we're on a delimiter character (like parenthesis)
	if ch == '(' || ch == ')' || ch == ',' || ch == ';' {
		return &Token{
			Text:  string(ch),
			Start: position,
			End:   position + 1,
			Type:  TokenPunctuation,
		}
	}

	// Check if we're on an asterisk (wildcard)
	if ch == '*' {
		return &Token{
			Text:  "*",
			Start: position,
			End:   position + 1,
			Type:  TokenOperator,
		}
	}

	// Not on a token character - no token
	if !isTokenChar(ch) {
		return nil
	}

	// Find token boundaries
	start := position
	end := position

	// Expand backwards to find token start
	for start > 0 {
		r := rune(query[start-1])
		if !isTokenChar(r) {
			break
		}
		start--
	}

	// Expand forwards to find token end
	for end < len(query) {
		r := rune(query[end])
		if !isTokenChar(r) {
			break
		}
		end++
	}

	// No token found at position
	if start == end {
		return nil
	}

	text := query[start:end]
	return &Token{
		Text:  text,
		Start: start,
		End:   end,
		Type:  classifyToken(text, query, start, data),
	}
}

// isTokenChar returns true if the character can be part of a token.
func isTokenChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// classifyToken determines the type of token based on context.
func classifyToken(text string, query string, start int, data *dialect.Data) TokenType {
	if unicode.IsDigit(rune(text[0])) {
		return TokenLiteral
	}

	// Anything followed by '(' is a call, even when it is also a keyword
	afterToken := strings.TrimSpace(query[start+len(text):])
	if len(afterToken) > 0 && afterToken[0] == '(' {
		return TokenFunction
	}

	if data.IsKeyword(text) {
		return TokenKeyword
	}

	// Otherwise an identifier: type, engine, format, setting or column name
	return TokenIdentifier
}

// resolveHoverInfo generates hover content based on the token.
func resolveHoverInfo(token *Token, data *dialect.Data) *HoverInfo {
	switch token.Type {
	case TokenFunction:
		return resolveFunctionHover(token, data)
	case TokenKeyword, TokenIdentifier:
		return resolveNameHover(token, data)
	case TokenOperator:
		return resolveOperatorHover(token)
	default:
		return nil
	}
}

func newHover(token *Token, kind HoverKind, name, content string) *HoverInfo {
	return &HoverInfo{
		Content: content,
		Range:   &Range{Start: token.Start, End: token.End},
		Kind:    kind,
		Name:    name,
	}
}

// resolveFunctionHover generates hover for a call: a function, a table
// function, or an aggregate with a combinator suffix.
func resolveFunctionHover(token *Token, data *dialect.Data) *HoverInfo {
	if fn, ok := data.Function(token.Text); ok {
		return newHover(token, HoverFunction, fn.Name, formatFunctionHover(fn, data))
	}
	if tf, ok := data.TableFunction(token.Text); ok {
		return newHover(token, HoverTableFunction, tf.Name, formatTableFunctionHover(tf))
	}
	if base, suffix, ok := data.SplitCombinator(token.Text); ok {
		return newHover(token, HoverFunction, token.Text, formatCombinatorHover(token.Text, base, suffix))
	}
	if data.IsType(token.Text) {
		// Nullable(String), Decimal(9, 2)
		return resolveNameHover(token, data)
	}

	// Unknown function - provide basic info
	return newHover(token, HoverFunction, token.Text, fmt.Sprintf("**%s**\n\nFunction", token.Text))
}

// resolveNameHover generates hover for a bare word. More specific dataset
// entries win over keywords, so "Memory" is an engine and "String" a type.
func resolveNameHover(token *Token, data *dialect.Data) *HoverInfo {
	if dt, ok := data.DataType(token.Text); ok {
		return newHover(token, HoverType, dt.Name, formatTypeHover(dt))
	}
	if e, ok := data.TableEngine(token.Text); ok {
		return newHover(token, HoverEngine, e.Name, fmt.Sprintf("**%s** _(table engine)_", e.Name))
	}
	if f, ok := data.Format(token.Text); ok {
		return newHover(token, HoverFormat, f.Name, formatFormatHover(f))
	}
	if s, ok := data.Setting(token.Text); ok {
		return newHover(token, HoverSetting, s.Name, formatSettingHover(s, "setting"))
	}
	if s, ok := data.MergeTreeSetting(token.Text); ok {
		return newHover(token, HoverSetting, s.Name, formatSettingHover(s, "MergeTree setting"))
	}
	if fn, ok := data.Function(token.Text); ok {
		return newHover(token, HoverFunction, fn.Name, formatFunctionHover(fn, data))
	}
	if base, suffix, ok := data.SplitCombinator(token.Text); ok {
		return newHover(token, HoverFunction, token.Text, formatCombinatorHover(token.Text, base, suffix))
	}
	if data.IsKeyword(token.Text) {
		name := strings.ToUpper(token.Text)
		return newHover(token, HoverKeyword, name, fmt.Sprintf("**%s** _(keyword)_", name))
	}
	return nil
}

// resolveOperatorHover generates hover for an operator (like *).
func resolveOperatorHover(token *Token) *HoverInfo {
	if token.Text == "*" {
		return newHover(token, HoverOperator, "*", "**\\***\n\nSelects all columns")
	}
	return nil
}
