package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tentacle-scylla/chsql/internal/testutil"
	"github.com/tentacle-scylla/chsql/pkg/engine"
)

type rawResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

func request(t *testing.T, id int, method string, params any) string {
	t.Helper()
	msg := map[string]any{"id": id, "method": method}
	if params != nil {
		msg["params"] = params
	}
	out, err := json.Marshal(msg)
	require.NoError(t, err)
	return string(out) + "\n"
}

func initParams(snippets bool) map[string]any {
	return map[string]any{"data": json.RawMessage(testutil.DialectJSON()), "useSnippets": snippets}
}

func run(t *testing.T, input string) []rawResponse {
	t.Helper()
	var out bytes.Buffer
	srv := NewServer(engine.New(), strings.NewReader(input), &out, testutil.NewTestLogger(t))
	require.NoError(t, srv.Run(context.Background()))

	var responses []rawResponse
	sc := bufio.NewScanner(&out)
	sc.Buffer(make([]byte, 1<<20), 1<<24)
	for sc.Scan() {
		var r rawResponse
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), "line: %s", sc.Text())
		responses = append(responses, r)
	}
	return responses
}

func TestInitAndCompletions(t *testing.T) {
	input := request(t, 1, MethodInit, initParams(true)) +
		request(t, 2, MethodCompletions, PositionParams{SQL: "CREATE TABLE t ENGINE = ", Offset: 24}) +
		request(t, 3, MethodInit, initParams(true))

	responses := run(t, input)
	require.Len(t, responses, 3)

	assert.JSONEq(t, `1`, string(responses[0].ID))
	assert.JSONEq(t, `{"success":true}`, string(responses[0].Result))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(responses[1].Result, &items))
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, "class", it["kind"])
	}
	assert.Equal(t, "MergeTree", items[0]["label"])

	assert.JSONEq(t, `{"success":false,"error":"Completion data already initialized"}`, string(responses[2].Result))
}

func TestInitWithStringData(t *testing.T) {
	params := map[string]any{"data": string(testutil.DialectJSON())}
	responses := run(t, request(t, 1, MethodInit, params)+request(t, 2, MethodStats, nil))
	require.Len(t, responses, 2)
	assert.JSONEq(t, `{"success":true}`, string(responses[0].Result))

	var stats map[string]int
	require.NoError(t, json.Unmarshal(responses[1].Result, &stats))
	assert.Equal(t, 3, stats["tableEngines"])
}

func TestInitFailure(t *testing.T) {
	params := map[string]any{"data": "not json"}
	responses := run(t, request(t, 1, MethodInit, params))
	require.Len(t, responses, 1)

	var res engine.InitResult
	require.NoError(t, json.Unmarshal(responses[0].Result, &res))
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "Failed to parse ClickHouse data: "), res.Error)
}

func TestCompletionsBeforeInit(t *testing.T) {
	responses := run(t, request(t, 1, MethodCompletions, PositionParams{SQL: "SELECT ", Offset: 7}))
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
	assert.JSONEq(t, `[]`, string(responses[0].Result))
}

func TestStatsBeforeInit(t *testing.T) {
	responses := run(t, request(t, 1, MethodStats, nil))
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeNotInitialized, responses[0].Error.Code)
}

func TestContextHoverValidate(t *testing.T) {
	input := request(t, 1, MethodInit, initParams(false)) +
		request(t, 2, MethodContext, PositionParams{SQL: "SELECT * FROM ", Offset: 14}) +
		request(t, 3, MethodHover, PositionParams{SQL: "SELECT 1 FORMAT JSONEachRow", Offset: 20}) +
		request(t, 4, MethodHover, PositionParams{SQL: "SELECT x", Offset: 7}) +
		request(t, 5, MethodValidate, ValidateParams{SQL: "SELECT 'x"})

	responses := run(t, input)
	require.Len(t, responses, 5)

	assert.JSONEq(t, `{"context":"from_clause"}`, string(responses[1].Result))

	var info map[string]any
	require.NoError(t, json.Unmarshal(responses[2].Result, &info))
	assert.Equal(t, "format", info["kind"])
	assert.Equal(t, "JSONEachRow", info["name"])

	assert.Contains(t, []string{"", "null"}, string(responses[3].Result))

	assert.JSONEq(t, `{"valid":false,"error":{"message":"unterminated string literal","line":1,"column":7}}`, string(responses[4].Result))
}

func TestMalformedLinesContinue(t *testing.T) {
	input := "{not json\n" +
		"\n" +
		`{"id": 2}` + "\n" +
		request(t, 3, "nope", nil) +
		request(t, 4, MethodCompletions, "wrong") +
		request(t, 5, MethodContext, nil) +
		request(t, 6, MethodValidate, ValidateParams{SQL: "SELECT 1"})

	responses := run(t, input)
	require.Len(t, responses, 6)

	assert.Equal(t, CodeParseError, responses[0].Error.Code)
	assert.Contains(t, []string{"", "null"}, string(responses[0].ID))
	assert.Equal(t, CodeInvalidRequest, responses[1].Error.Code)
	assert.Equal(t, CodeMethodNotFound, responses[2].Error.Code)
	assert.Equal(t, CodeInvalidParams, responses[3].Error.Code)
	assert.Equal(t, CodeInvalidParams, responses[4].Error.Code)
	assert.Nil(t, responses[5].Error)
	assert.JSONEq(t, `{"valid":true}`, string(responses[5].Result))
}

func TestLastLineWithoutNewline(t *testing.T) {
	input := strings.TrimSuffix(request(t, 1, MethodValidate, ValidateParams{SQL: "SELECT 1"}), "\n")
	responses := run(t, input)
	require.Len(t, responses, 1)
	assert.JSONEq(t, `{"valid":true}`, string(responses[0].Result))
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(engine.New(), pr, io.Discard, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHandle(t *testing.T) {
	srv := NewServer(engine.New(), strings.NewReader(""), io.Discard, nil)
	id := json.RawMessage(`"abc"`)
	resp := srv.Handle(&Request{ID: &id, Method: MethodContext, Params: json.RawMessage(`{"sql":"SELECT ","offset":7}`)})
	require.Nil(t, resp.Error)
	assert.Equal(t, ContextResult{Context: "select_clause"}, resp.Result)
	assert.Equal(t, &id, resp.ID)
}
