package lint

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/tentacle-scylla/chsql/pkg/tokenize"
	"github.com/tentacle-scylla/chsql/pkg/types"
)

// Check validates SQL as a single statement and returns any errors found
func Check(input string) types.Errors {
	return Analyze(input).Errors
}

// CheckMultiple validates every statement in input and returns all errors
func CheckMultiple(input string) types.Errors {
	var allErrors types.Errors
	for _, r := range AnalyzeMultiple(input) {
		allErrors = append(allErrors, r.Errors...)
	}
	return allErrors
}

// IsValid returns true if the SQL input is lexically valid
func IsValid(input string) bool {
	return !CheckMultiple(input).HasErrors()
}

// Result contains detailed lint results for a statement
type Result struct {
	Input   string
	Start   int // byte offset of Input within the analyzed text
	Type    types.StatementType
	Errors  types.Errors
	IsValid bool
}

// Analyze checks input as one statement, without splitting on ';'.
func Analyze(input string) *Result {
	toks, lexErr := lexAll(input)
	return analyzeSegment(input, segment{end: len(input), tokens: toks, lexErr: lexErr})
}

// AnalyzeMultiple splits input on ';' and checks each non-empty statement.
// Positions in the returned errors are relative to the whole input.
func AnalyzeMultiple(input string) []*Result {
	toks, lexErr := lexAll(input)
	var results []*Result
	for _, seg := range split(input, toks, lexErr) {
		results = append(results, analyzeSegment(input, seg))
	}
	return results
}

// ValidationError is the first problem found by Validate.
type ValidationError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// Validation is the editor-facing summary of a lint run.
type Validation struct {
	Valid bool             `json:"valid"`
	Error *ValidationError `json:"error,omitempty"`
}

// Validate reports whether sql is lexically valid and, if not, where the
// first problem is.
func Validate(sql string) Validation {
	first := CheckMultiple(sql).First()
	if first == nil {
		return Validation{Valid: true}
	}
	return Validation{
		Error: &ValidationError{
			Message: first.DisplayMessage(),
			Line:    first.Line,
			Column:  first.Column,
		},
	}
}

type segment struct {
	start, end int
	tokens     []tokenize.Token
	lexErr     *tokenize.LexError
}

// lexAll lexes input. On failure it returns the tokens before the offending
// offset together with the error.
func lexAll(input string) ([]tokenize.Token, *tokenize.LexError) {
	toks, err := tokenize.Lex(input)
	if err == nil {
		return toks, nil
	}
	var lexErr *tokenize.LexError
	if !errors.As(err, &lexErr) {
		return nil, &tokenize.LexError{Message: err.Error(), Line: 1}
	}
	prefix, perr := tokenize.Lex(input[:lexErr.Offset])
	if perr != nil {
		prefix = nil
	}
	return prefix, lexErr
}

// split cuts the token stream at ';' separators. A lex error belongs to the
// trailing segment, which runs to the end of input.
func split(input string, toks []tokenize.Token, lexErr *tokenize.LexError) []segment {
	var segs []segment
	cur := segment{}
	for _, tok := range toks {
		if tok.Kind == tokenize.KindPunct && tok.Text == ";" {
			cur.end = tok.Start
			if hasSignificant(cur.tokens) {
				segs = append(segs, cur)
			}
			cur = segment{start: tok.End}
			continue
		}
		cur.tokens = append(cur.tokens, tok)
	}
	cur.end = len(input)
	cur.lexErr = lexErr
	if hasSignificant(cur.tokens) || lexErr != nil {
		segs = append(segs, cur)
	}
	return segs
}

func hasSignificant(toks []tokenize.Token) bool {
	for _, tok := range toks {
		if !tok.Trivia() {
			return true
		}
	}
	return false
}

func analyzeSegment(input string, seg segment) *Result {
	raw := input[seg.start:seg.end]
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	start := seg.start + len(raw) - len(trimmed)
	text := strings.TrimRightFunc(trimmed, unicode.IsSpace)
	var errs types.Errors
	if seg.lexErr != nil {
		errs = append(errs, fromLexError(input, seg.lexErr, text))
	}
	errs = append(errs, checkStrayChars(seg.tokens, text)...)
	errs = append(errs, checkComments(seg.tokens, text)...)
	errs = append(errs, checkBrackets(seg.tokens, text)...)

	typ := classify(seg.tokens)
	if typ == types.StatementUnknown {
		if e := checkLeadingKeyword(seg.tokens, text); e != nil {
			errs = append(errs, e)
		}
	}

	return &Result{
		Input:   text,
		Start:   start,
		Type:    typ,
		Errors:  errs,
		IsValid: !errs.HasErrors(),
	}
}

func classify(toks []tokenize.Token) types.StatementType {
	var words []string
	for _, tok := range toks {
		if tok.Trivia() {
			continue
		}
		if tok.Kind != tokenize.KindWord || len(words) == 6 {
			break
		}
		words = append(words, tok.Text)
	}
	return types.ClassifyStatement(words...)
}

// checkLeadingKeyword flags a statement whose first word looks like a
// misspelled statement keyword.
func checkLeadingKeyword(toks []tokenize.Token, query string) *types.Error {
	for _, tok := range toks {
		if tok.Trivia() {
			continue
		}
		if tok.Kind != tokenize.KindWord {
			return nil
		}
		suggestion := SuggestKeyword(tok.Text)
		if suggestion == "" {
			return nil
		}
		e := tokenError(tok, types.CodeUnknownKeyword, fmt.Sprintf("unknown statement keyword %q", tok.Text), query)
		e.Suggestion = fmt.Sprintf("did you mean %s?", suggestion)
		return e
	}
	return nil
}

func fromLexError(input string, le *tokenize.LexError, query string) *types.Error {
	e := &types.Error{
		Code:    types.CodeUnexpectedChar,
		Offset:  le.Offset,
		Line:    le.Line,
		Column:  le.Column,
		Message: le.Message,
		Query:   query,
	}
	if le.Offset >= len(input) {
		e.FriendlyMessage = "unexpected end of input"
		return e
	}
	switch ch := input[le.Offset]; ch {
	case '\'':
		e.Code = types.CodeUnterminatedString
		e.FriendlyMessage = "unterminated string literal"
		e.Suggestion = "close the string with '"
	case '`', '"':
		e.Code = types.CodeUnterminatedQuote
		e.FriendlyMessage = "unterminated quoted identifier"
		e.Suggestion = fmt.Sprintf("close the identifier with %c", ch)
	default:
		r := []rune(input[le.Offset:])[0]
		e.FriendlyMessage = fmt.Sprintf("unexpected character %q", r)
	}
	return e
}

func checkStrayChars(toks []tokenize.Token, query string) types.Errors {
	var errs types.Errors
	for _, tok := range toks {
		if tok.Kind == tokenize.KindUnknown {
			errs = append(errs, tokenError(tok, types.CodeUnexpectedChar, fmt.Sprintf("unexpected character %q", []rune(tok.Text)[0]), query))
		}
	}
	return errs
}

func checkComments(toks []tokenize.Token, query string) types.Errors {
	var errs types.Errors
	for _, tok := range toks {
		if tok.Kind != tokenize.KindComment || !strings.HasPrefix(tok.Text, "/*") {
			continue
		}
		if len(tok.Text) >= 4 && strings.HasSuffix(tok.Text, "*/") {
			continue
		}
		errs = append(errs, tokenError(tok, types.CodeUnterminatedComment, "unterminated block comment", query))
	}
	return errs
}

var closerFor = map[string]string{"(": ")", "[": "]"}

func checkBrackets(toks []tokenize.Token, query string) types.Errors {
	var errs types.Errors
	var open []tokenize.Token
	for _, tok := range toks {
		if tok.Kind != tokenize.KindPunct {
			continue
		}
		switch tok.Text {
		case "(", "[":
			open = append(open, tok)
		case ")", "]":
			if len(open) == 0 || closerFor[open[len(open)-1].Text] != tok.Text {
				errs = append(errs, tokenError(tok, types.CodeUnbalanced, fmt.Sprintf("unexpected '%s'", tok.Text), query))
				continue
			}
			open = open[:len(open)-1]
		}
	}
	for _, tok := range open {
		e := tokenError(tok, types.CodeUnbalanced, fmt.Sprintf("unclosed '%s'", tok.Text), query)
		e.Suggestion = fmt.Sprintf("add a closing '%s'", closerFor[tok.Text])
		errs = append(errs, e)
	}
	return errs
}

func tokenError(tok tokenize.Token, code types.ErrorCode, msg, query string) *types.Error {
	return &types.Error{
		Code:    code,
		Offset:  tok.Start,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: msg,
		Query:   query,
	}
}
