package complete

import "strconv"

// Rank is the category priority of a completion item. Lower ranks sort first.
type Rank int

const (
	RankKeyword       Rank = 0
	RankFunction      Rank = 1
	RankDataType      Rank = 2
	RankTableEngine   Rank = 3
	RankFormat        Rank = 4
	RankTableFunction Rank = 5
	RankSetting       Rank = 6
	RankAlias         Rank = 9 // Aliased functions and data types
)

// SortKey orders completion items by category and then by name.
type SortKey struct {
	Rank Rank
	Name string
}

// Less reports whether k sorts before other.
func (k SortKey) Less(other SortKey) bool {
	if k.Rank != other.Rank {
		return k.Rank < other.Rank
	}
	return k.Name < other.Name
}

// String renders the key as editors expect it in sortText, e.g. "1_count".
// Ranks are single digits, so string order matches Less.
func (k SortKey) String() string {
	return strconv.Itoa(int(k.Rank)) + "_" + k.Name
}
