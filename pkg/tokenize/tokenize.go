// Package tokenize splits ClickHouse SQL into tokens for context detection,
// validation and syntax highlighting.
package tokenize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
)

// Kind is the lexical class of a token.
type Kind string

const (
	KindWord        Kind = "word"
	KindQuotedIdent Kind = "quoted_ident"
	KindNumber      Kind = "number"
	KindString      Kind = "string"
	KindOperator    Kind = "operator"
	KindPunct       Kind = "punct"
	KindParam       Kind = "param"
	KindComment     Kind = "comment"
	KindWhitespace  Kind = "whitespace"
	// KindUnknown is a single character no other rule accepts.
	KindUnknown     Kind = "unknown"
)

// Token is a single lexical token. Start and End are byte offsets (End is
// exclusive), Line is 1-based and Column is a 0-based rune column.
type Token struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// IsWord reports whether the token is the bare word w, ignoring case.
func (t Token) IsWord(w string) bool {
	return t.Kind == KindWord && strings.EqualFold(t.Text, w)
}

// IsSymbol reports whether the token is the operator or punctuation s.
func (t Token) IsSymbol(s string) bool {
	return (t.Kind == KindOperator || t.Kind == KindPunct) && t.Text == s
}

// Trivia reports whether the token carries no syntax (whitespace or comment).
func (t Token) Trivia() bool {
	return t.Kind == KindWhitespace || t.Kind == KindComment
}

// LexError is returned by Lex when the input contains an unterminated string
// or quoted identifier.
type LexError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Lex returns every token in sql, whitespace and comments included.
func Lex(sql string) ([]Token, error) {
	lex, err := sqlLexer.LexString("", sql)
	if err != nil {
		return nil, errors.Wrap(err, "starting lexer")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, toLexError(err)
	}

	out := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		out = append(out, Token{
			Kind:   kindBySymbol[tok.Type],
			Text:   tok.Value,
			Start:  tok.Pos.Offset,
			End:    tok.Pos.Offset + len(tok.Value),
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column - 1,
		})
	}
	return out, nil
}

func toLexError(err error) error {
	var positioned interface {
		Message() string
		Position() lexer.Position
	}
	if !errors.As(err, &positioned) {
		return errors.Wrap(err, "lexing SQL")
	}
	pos := positioned.Position()
	return &LexError{
		Message: positioned.Message(),
		Offset:  pos.Offset,
		Line:    pos.Line,
		Column:  pos.Column - 1,
	}
}

// Significant tokenizes the text before cursorOffset and drops whitespace and
// comments. The offset is clamped to the text and moved back to a rune
// boundary. Text that fails to lex yields no tokens.
func Significant(sql string, cursorOffset int) []Token {
	prefix := sql[:clampOffset(sql, cursorOffset)]
	all, err := Lex(prefix)
	if err != nil {
		return []Token{}
	}
	out := all[:0]
	for _, tok := range all {
		if !tok.Trivia() {
			out = append(out, tok)
		}
	}
	return out
}

// Remainder returns the raw text from cursorOffset to the end of sql, using the
// same clamping as Significant.
func Remainder(sql string, cursorOffset int) string {
	return sql[clampOffset(sql, cursorOffset):]
}

func clampOffset(sql string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(sql) {
		return len(sql)
	}
	for offset > 0 && !utf8.RuneStart(sql[offset]) {
		offset--
	}
	return offset
}
