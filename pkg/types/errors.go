package types

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the class of a lexical problem.
type ErrorCode string

const (
	CodeUnterminatedString  ErrorCode = "unterminated_string"
	CodeUnterminatedQuote   ErrorCode = "unterminated_identifier"
	CodeUnterminatedComment ErrorCode = "unterminated_comment"
	CodeUnexpectedChar      ErrorCode = "unexpected_character"
	CodeUnbalanced          ErrorCode = "unbalanced_brackets"
	CodeUnknownKeyword      ErrorCode = "unknown_keyword"
)

// Error is a validation error with position information
type Error struct {
	Code            ErrorCode
	Offset          int    // byte offset into Query
	Line            int    // 1-based line number
	Column          int    // 0-based column number, in runes
	Message         string // Lexer or checker message
	FriendlyMessage string // Message shown in editors
	Query           string // The statement that caused the error
	Suggestion      string
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.DisplayMessage()
	if e.Suggestion != "" {
		return fmt.Sprintf("line %d:%d: %s (suggestion: %s)", e.Line, e.Column, msg, e.Suggestion)
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, msg)
}

// DisplayMessage returns FriendlyMessage if set, otherwise Message.
func (e *Error) DisplayMessage() string {
	if e.FriendlyMessage != "" {
		return e.FriendlyMessage
	}
	return e.Message
}

// Position returns a string representation of the error position
func (e *Error) Position() string {
	return fmt.Sprintf("%d:%d", e.Line, e.Column)
}

// Errors is a collection of Error pointers
type Errors []*Error

// Error implements the error interface for the collection
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d errors:\n", len(e)))
	for i, err := range e {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// HasErrors returns true if there are any errors
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// First returns the first error or nil if empty
func (e Errors) First() *Error {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// ByLine returns all errors at a specific line
func (e Errors) ByLine(line int) Errors {
	var result Errors
	for _, err := range e {
		if err.Line == line {
			result = append(result, err)
		}
	}
	return result
}

// ByCode returns all errors of the given class
func (e Errors) ByCode(code ErrorCode) Errors {
	var result Errors
	for _, err := range e {
		if err.Code == code {
			result = append(result, err)
		}
	}
	return result
}
