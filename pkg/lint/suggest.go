package lint

import (
	"strings"
)

// statementKeywords are the words a ClickHouse statement can start with.
var statementKeywords = []string{
	// Queries
	"SELECT", "WITH", "FROM", "INSERT", "DELETE", "UPDATE", "VALUES", "EXPLAIN",
	"DESCRIBE", "SHOW", "EXISTS", "CHECK", "WATCH",

	// DDL
	"CREATE", "ATTACH", "DETACH", "ALTER", "DROP", "UNDROP", "TRUNCATE", "RENAME",
	"EXCHANGE", "REPLACE", "OPTIMIZE", "MOVE",

	// Access control
	"GRANT", "REVOKE",

	// Session and server
	"SET", "USE", "SYSTEM", "KILL", "BACKUP", "RESTORE", "BEGIN", "COMMIT", "ROLLBACK",
}

// SuggestKeyword returns the statement keyword input is most likely a typo
// of, or "" when input is a keyword or not close to one.
func SuggestKeyword(input string) string {
	input = strings.ToUpper(strings.TrimSpace(input))

	// Skip very short inputs (likely not keyword typos)
	if len(input) < 4 {
		return ""
	}

	for _, kw := range statementKeywords {
		if input == kw {
			return ""
		}
	}

	const maxDistance = 2

	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, kw := range statementKeywords {
		if len(kw) < 4 {
			continue
		}

		lenDiff := len(kw) - len(input)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > maxDistance {
			continue
		}

		dist := levenshteinDistance(input, kw)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = kw
		}
	}

	return bestMatch
}

// levenshteinDistance is the minimum number of single-character edits
// turning s1 into s2.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
