package bridge

import "encoding/json"

// Error codes follow JSON-RPC where one applies.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeNotInitialized = -32002
)

// Method names accepted by the bridge.
const (
	MethodInit        = "init"
	MethodCompletions = "completions"
	MethodContext     = "context"
	MethodHover       = "hover"
	MethodValidate    = "validate"
	MethodStats       = "stats"
)

// Request is one line of input.
type Request struct {
	ID     *json.RawMessage `json:"id,omitempty"`
	Method string           `json:"method"`
	Params json.RawMessage  `json:"params,omitempty"`
}

// Response is one line of output. Exactly one of Result and Error is set.
type Response struct {
	ID     *json.RawMessage `json:"id"`
	Result any              `json:"result,omitempty"`
	Error  *Error           `json:"error,omitempty"`
}

// Error describes a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InitParams carries the dialect document. Data may be the document itself
// or a JSON string containing it. UseSnippets defaults to true.
type InitParams struct {
	Data        json.RawMessage `json:"data"`
	UseSnippets *bool           `json:"useSnippets,omitempty"`
}

// PositionParams addresses a cursor offset in a SQL string.
type PositionParams struct {
	SQL    string `json:"sql"`
	Offset int    `json:"offset"`
}

// ValidateParams carries the SQL to check.
type ValidateParams struct {
	SQL string `json:"sql"`
}

// ContextResult is the result of a context request.
type ContextResult struct {
	Context string `json:"context"`
}
