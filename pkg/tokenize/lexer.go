package tokenize

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// sqlLexer is the ClickHouse lexical grammar. Rules are tried in order and the
// first match wins, so comments come before operators and parameters before
// punctuation.
//
// A block comment that is still open at the end of input is lexed as a
// comment so that typing inside it never breaks tokenization; lint reports it.
// Likewise any stray character becomes an Unknown token. Only an unterminated
// string or quoted identifier fails to lex.
//
// Heredoc strings ($$...$$, $tag$...$tag$) end at the first closing tag of
// either form; RE2 has no backreferences to pair the tags.
var sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*|#[^\n]*|/\*(?:[^*]|\*+[^*/])*(?:\*+/|\**$)`},
	{Name: "Whitespace", Pattern: `[\s\p{Zs}\x{FEFF}]+`},
	{Name: "String", Pattern: `'(?:[^'\\]|\\.|'')*'|\$(?:[A-Za-z_]\w*)?\$(?s:.)*?\$(?:[A-Za-z_]\w*)?\$`},
	{Name: "QuotedIdent", Pattern: "`(?:[^`\\\\]|\\\\.|``)*`" + `|"(?:[^"\\]|\\.|"")*"`},
	{Name: "Param", Pattern: `\{\s*[A-Za-z_][A-Za-z0-9_]*\s*:[^{}]+\}|\?|\$\w+`},
	{Name: "Number", Pattern: `0[xX][0-9A-Fa-f]+|0[bB][01]+|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`},
	{Name: "Word", Pattern: `[A-Za-z_\p{L}][A-Za-z0-9_$\p{L}]*`},
	{Name: "Operator", Pattern: `->|<=>|<=|>=|!=|<>|==|\|\||::|[-+*/%=<>!^]`},
	{Name: "Punct", Pattern: `[(),;.\[\]{}:@]`},
	{Name: "Unknown", Pattern: "[^'\"`]"},
})

var kindBySymbol = func() map[lexer.TokenType]Kind {
	names := map[string]Kind{
		"Comment":     KindComment,
		"Whitespace":  KindWhitespace,
		"String":      KindString,
		"QuotedIdent": KindQuotedIdent,
		"Param":       KindParam,
		"Number":      KindNumber,
		"Word":        KindWord,
		"Operator":    KindOperator,
		"Punct":       KindPunct,
		"Unknown":     KindUnknown,
	}
	out := make(map[lexer.TokenType]Kind, len(names))
	for name, typ := range sqlLexer.Symbols() {
		if kind, ok := names[name]; ok {
			out[typ] = kind
		}
	}
	return out
}()
