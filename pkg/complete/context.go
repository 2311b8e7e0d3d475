package complete

import (
	"strings"

	"github.com/tentacle-scylla/chsql/pkg/tokenize"
)

// Clause keywords that end the clause opened by an earlier keyword. A clause
// keyword only sets the context if none of its superseding keywords appears
// between it and the cursor.
var (
	afterWhere   = []string{"ORDER", "GROUP", "LIMIT", "FORMAT", "SETTINGS"}
	afterOrderBy = []string{"LIMIT", "FORMAT", "SETTINGS", "HAVING", "WHERE"}
	afterFrom    = []string{"WHERE", "GROUP", "ORDER", "LIMIT", "FORMAT", "SETTINGS"}
	afterSelect  = []string{"FROM"}
)

// DetectContext classifies the cursor position in sql. Only text before
// cursorOffset is tokenized, except for one look at the raw text right after
// the cursor to recognize "ENGINE|=". Text that does not tokenize yields
// ContextDefault.
func DetectContext(sql string, cursorOffset int) ContextType {
	toks := tokenize.Significant(sql, cursorOffset)
	return detectFromTokens(toks, tokenize.Remainder(sql, cursorOffset))
}

func detectFromTokens(toks []tokenize.Token, remainder string) ContextType {
	n := len(toks)
	if n == 0 {
		return ContextDefault
	}
	last := toks[n-1]

	// ENGINE =
	if n >= 2 && last.IsSymbol("=") && toks[n-2].IsWord("ENGINE") {
		return ContextEngine
	}
	// ENGINE = Merge (engine name being typed)
	if n >= 3 && toks[n-2].IsSymbol("=") && toks[n-3].IsWord("ENGINE") {
		return ContextEngine
	}
	// ENGINE|= with the cursor before the "="
	if last.IsWord("ENGINE") && strings.HasPrefix(strings.TrimLeft(remainder, " \t\r\n"), "=") {
		return ContextEngine
	}
	if last.IsWord("FORMAT") {
		return ContextFormat
	}
	if last.IsWord("SETTINGS") {
		return ContextSettings
	}

	// Walk back from the cursor; the nearest open clause wins.
	for i := n - 1; i >= 0; i-- {
		tok := toks[i]
		rest := toks[i+1:]

		if (tok.IsWord("WHERE") || tok.IsWord("HAVING")) && !containsWord(rest, afterWhere) {
			return ContextWhereClause
		}
		if tok.IsWord("BY") && i > 0 &&
			(toks[i-1].IsWord("ORDER") || toks[i-1].IsWord("GROUP")) &&
			!containsWord(rest, afterOrderBy) {
			return ContextOrderByClause
		}
		if (tok.IsWord("FROM") || tok.IsWord("JOIN")) && !containsWord(rest, afterFrom) {
			return ContextFromClause
		}
		if tok.IsWord("SELECT") && !containsWord(rest, afterSelect) {
			return ContextSelectClause
		}
		if tok.IsSymbol("(") && opensColumnList(toks, i) && stillOpen(rest) {
			return ContextColumnDefinition
		}
	}

	return ContextDefault
}

func containsWord(toks []tokenize.Token, words []string) bool {
	for _, tok := range toks {
		for _, w := range words {
			if tok.IsWord(w) {
				return true
			}
		}
	}
	return false
}

// opensColumnList reports whether the "(" at toks[paren] starts the column
// list of a CREATE TABLE: walking back it must reach TABLE across at most a
// table name (possibly db.table), an IF NOT EXISTS and an ON CLUSTER clause.
//
//	CREATE TABLE (
//	CREATE TABLE t (
//	CREATE TABLE IF NOT EXISTS db.t ON CLUSTER c (
//	CREATE TABLE t ON CLUSTER '{cluster}' (
//
// Any word counts as a name, keywords included, so a half-typed
// "CREATE TABLE IF (" also opens a column list.
func opensColumnList(toks []tokenize.Token, paren int) bool {
	j := paren - 1

	// ON CLUSTER name, where the cluster may be a string such as '{cluster}'
	if j >= 2 && (isName(toks[j]) || toks[j].Kind == tokenize.KindString) &&
		toks[j-1].IsWord("CLUSTER") && toks[j-2].IsWord("ON") {
		j -= 3
	}
	// name or db.name
	if j >= 0 && isName(toks[j]) && !toks[j].IsWord("TABLE") {
		j--
		if j >= 1 && toks[j].IsSymbol(".") && isName(toks[j-1]) {
			j -= 2
		}
	}
	// IF NOT EXISTS
	if j >= 2 && toks[j].IsWord("EXISTS") && toks[j-1].IsWord("NOT") && toks[j-2].IsWord("IF") {
		j -= 3
	}
	return j >= 0 && toks[j].IsWord("TABLE")
}

func isName(tok tokenize.Token) bool {
	return tok.Kind == tokenize.KindWord || tok.Kind == tokenize.KindQuotedIdent
}

// stillOpen reports whether the parenthesis just before toks has not been
// closed. Nested parentheses, as in a DEFAULT expression, are tracked.
func stillOpen(toks []tokenize.Token) bool {
	depth := 1
	for _, tok := range toks {
		switch {
		case tok.IsSymbol("("):
			depth++
		case tok.IsSymbol(")"):
			depth--
			if depth == 0 {
				return false
			}
		}
	}
	return true
}
