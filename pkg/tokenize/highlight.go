package tokenize

import "strings"

// HighlightType identifies the semantic type of a token for syntax highlighting.
type HighlightType string

const (
	HighlightKeyword     HighlightType = "keyword"
	HighlightFunction    HighlightType = "function"
	HighlightType_       HighlightType = "type"
	HighlightString      HighlightType = "string"
	HighlightNumber      HighlightType = "number"
	HighlightComment     HighlightType = "comment"
	HighlightIdentifier  HighlightType = "identifier"
	HighlightOperator    HighlightType = "operator"
	HighlightPunctuation HighlightType = "punctuation"
	HighlightPlaceholder HighlightType = "placeholder"
)

// Highlight is a single token with its semantic classification.
type Highlight struct {
	Start int           `json:"start"`
	End   int           `json:"end"`
	Text  string        `json:"text"`
	Type  HighlightType `json:"type"`
}

// Vocabulary answers which words are keywords and types.
// *dialect.Data implements it.
type Vocabulary interface {
	IsKeyword(word string) bool
	IsType(name string) bool
}

// Classify returns the non-whitespace tokens of sql with semantic types. A nil
// vocab classifies every word as an identifier unless it is followed by "(".
// Text that fails to lex yields nil.
func Classify(sql string, vocab Vocabulary) []Highlight {
	if sql == "" {
		return nil
	}
	toks, err := Lex(sql)
	if err != nil {
		return nil
	}

	result := make([]Highlight, 0, len(toks))
	for i, tok := range toks {
		if tok.Kind == KindWhitespace {
			continue
		}
		result = append(result, Highlight{
			Start: tok.Start,
			End:   tok.End,
			Text:  tok.Text,
			Type:  classifyToken(toks, i, vocab),
		})
	}
	return result
}

func classifyToken(toks []Token, i int, vocab Vocabulary) HighlightType {
	tok := toks[i]
	switch tok.Kind {
	case KindComment:
		return HighlightComment
	case KindString:
		return HighlightString
	case KindNumber:
		return HighlightNumber
	case KindParam:
		return HighlightPlaceholder
	case KindOperator, KindUnknown:
		return HighlightOperator
	case KindPunct:
		return HighlightPunctuation
	case KindQuotedIdent:
		return HighlightIdentifier
	}

	// Anything directly followed by "(" is a call, known or not.
	if next, ok := nextSignificant(toks, i); ok && next.IsSymbol("(") {
		return HighlightFunction
	}
	// Column access such as t.count is never a keyword.
	if i > 0 && toks[i-1].IsSymbol(".") {
		return HighlightIdentifier
	}
	if vocab == nil {
		return HighlightIdentifier
	}
	if vocab.IsType(tok.Text) {
		return HighlightType_
	}
	if vocab.IsKeyword(strings.ToUpper(tok.Text)) {
		return HighlightKeyword
	}
	return HighlightIdentifier
}

func nextSignificant(toks []Token, i int) (Token, bool) {
	for j := i + 1; j < len(toks); j++ {
		if !toks[j].Trivia() {
			return toks[j], true
		}
	}
	return Token{}, false
}
