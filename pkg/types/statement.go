package types

import "strings"

// StatementType represents the type of ClickHouse statement
type StatementType int

const (
	StatementUnknown StatementType = iota
	StatementSelect
	StatementInsert
	StatementDelete
	StatementCreateDatabase
	StatementCreateTable
	StatementCreateView
	StatementCreateMaterializedView
	StatementCreateDictionary
	StatementCreateFunction
	StatementCreateUser
	StatementCreateRole
	StatementAlter
	StatementDrop
	StatementTruncate
	StatementRename
	StatementOptimize
	StatementShow
	StatementDescribe
	StatementExplain
	StatementSet
	StatementUse
	StatementSystem
	StatementGrant
	StatementRevoke
)

var statementNames = map[StatementType]string{
	StatementSelect:                 "SELECT",
	StatementInsert:                 "INSERT",
	StatementDelete:                 "DELETE",
	StatementCreateDatabase:         "CREATE DATABASE",
	StatementCreateTable:            "CREATE TABLE",
	StatementCreateView:             "CREATE VIEW",
	StatementCreateMaterializedView: "CREATE MATERIALIZED VIEW",
	StatementCreateDictionary:       "CREATE DICTIONARY",
	StatementCreateFunction:         "CREATE FUNCTION",
	StatementCreateUser:             "CREATE USER",
	StatementCreateRole:             "CREATE ROLE",
	StatementAlter:                  "ALTER",
	StatementDrop:                   "DROP",
	StatementTruncate:               "TRUNCATE",
	StatementRename:                 "RENAME",
	StatementOptimize:               "OPTIMIZE",
	StatementShow:                   "SHOW",
	StatementDescribe:               "DESCRIBE",
	StatementExplain:                "EXPLAIN",
	StatementSet:                    "SET",
	StatementUse:                    "USE",
	StatementSystem:                 "SYSTEM",
	StatementGrant:                  "GRANT",
	StatementRevoke:                 "REVOKE",
}

// String returns the string representation of the statement type
func (s StatementType) String() string {
	if name, ok := statementNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the type by name, so JSON output reads "SELECT" not 1.
func (s StatementType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsDML returns true if the statement reads or writes rows
func (s StatementType) IsDML() bool {
	switch s {
	case StatementSelect, StatementInsert, StatementDelete:
		return true
	default:
		return false
	}
}

// IsDDL returns true if the statement changes the schema
func (s StatementType) IsDDL() bool {
	switch s {
	case StatementCreateDatabase, StatementCreateTable, StatementCreateView,
		StatementCreateMaterializedView, StatementCreateDictionary, StatementCreateFunction,
		StatementAlter, StatementDrop, StatementTruncate, StatementRename:
		return true
	default:
		return false
	}
}

// IsDCL returns true if the statement manages access control
func (s StatementType) IsDCL() bool {
	switch s {
	case StatementCreateUser, StatementCreateRole, StatementGrant, StatementRevoke:
		return true
	default:
		return false
	}
}

// creatable maps the object word after CREATE to its statement type.
var creatable = map[string]StatementType{
	"DATABASE":     StatementCreateDatabase,
	"TABLE":        StatementCreateTable,
	"VIEW":         StatementCreateView,
	"LIVE":         StatementCreateView,
	"WINDOW":       StatementCreateView,
	"MATERIALIZED": StatementCreateMaterializedView,
	"DICTIONARY":   StatementCreateDictionary,
	"FUNCTION":     StatementCreateFunction,
	"USER":         StatementCreateUser,
	"ROLE":         StatementCreateRole,
}

// ClassifyStatement determines the statement type from its leading words.
// Modifiers such as OR REPLACE, TEMPORARY and IF NOT EXISTS are skipped.
func ClassifyStatement(words ...string) StatementType {
	if len(words) == 0 {
		return StatementUnknown
	}
	switch strings.ToUpper(words[0]) {
	case "SELECT", "WITH":
		return StatementSelect
	case "INSERT":
		return StatementInsert
	case "DELETE":
		return StatementDelete
	case "CREATE", "ATTACH", "REPLACE":
		for _, w := range words[1:] {
			w = strings.ToUpper(w)
			if t, ok := creatable[w]; ok {
				return t
			}
			if w != "OR" && w != "REPLACE" && w != "TEMPORARY" {
				break
			}
		}
		return StatementUnknown
	case "ALTER":
		return StatementAlter
	case "DROP", "DETACH":
		return StatementDrop
	case "TRUNCATE":
		return StatementTruncate
	case "RENAME", "EXCHANGE":
		return StatementRename
	case "OPTIMIZE":
		return StatementOptimize
	case "SHOW":
		return StatementShow
	case "DESCRIBE", "DESC":
		return StatementDescribe
	case "EXPLAIN":
		return StatementExplain
	case "SET":
		return StatementSet
	case "USE":
		return StatementUse
	case "SYSTEM":
		return StatementSystem
	case "GRANT":
		return StatementGrant
	case "REVOKE":
		return StatementRevoke
	default:
		return StatementUnknown
	}
}
