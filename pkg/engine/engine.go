// Package engine owns a ClickHouse completion cache behind a write-once slot
// and serves completion, hover and validation requests against it.
package engine

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/tentacle-scylla/chsql/pkg/complete"
	"github.com/tentacle-scylla/chsql/pkg/dialect"
	"github.com/tentacle-scylla/chsql/pkg/hover"
	"github.com/tentacle-scylla/chsql/pkg/lint"
)

// The capitalized messages are the ones editor clients already receive in
// InitResult and match on, so they stay as they are.
var (
	// ErrAlreadyInitialized is returned by Init once a dataset is loaded.
	// The loaded dataset stays in place.
	ErrAlreadyInitialized = errors.New("Completion data already initialized")

	// ErrNotInitialized is returned by operations that need a dataset
	// before Init has succeeded.
	ErrNotInitialized = errors.New("Completion data not initialized")
)

// loaded is the immutable state published by a successful Init.
type loaded struct {
	data  *dialect.Data
	cache *complete.Cache
}

// Engine answers editor requests for embedded ClickHouse SQL. The zero value
// is not usable; construct with New.
type Engine struct {
	slot   atomic.Pointer[loaded]
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Nil keeps the silent default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine with no dataset loaded.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init parses dialectJSON and builds the completion cache. It succeeds at
// most once per Engine; later calls return ErrAlreadyInitialized without
// parsing and without touching the loaded cache.
func (e *Engine) Init(dialectJSON []byte, useSnippets bool) error {
	if e.slot.Load() != nil {
		e.logger.Warn("rejected second init")
		return ErrAlreadyInitialized
	}

	data, err := dialect.Load(dialectJSON)
	if err != nil {
		e.logger.Warn("failed to load dialect data", "error", err)
		return errors.Wrap(err, "Failed to parse ClickHouse data")
	}

	st := &loaded{data: data, cache: complete.BuildCache(data, useSnippets)}
	if !e.slot.CompareAndSwap(nil, st) {
		e.logger.Warn("rejected concurrent init")
		return ErrAlreadyInitialized
	}

	e.logger.Debug("completion cache built",
		"snippets", useSnippets,
		"buckets", st.cache.Len(),
	)
	return nil
}

// InitResult is the boundary shape of an Init call.
type InitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// InitResult runs Init and reports the outcome as a value.
func (e *Engine) InitResult(dialectJSON string, useSnippets bool) InitResult {
	if err := e.Init([]byte(dialectJSON), useSnippets); err != nil {
		return InitResult{Error: err.Error()}
	}
	return InitResult{Success: true}
}

// Initialized reports whether Init has succeeded.
func (e *Engine) Initialized() bool {
	return e.slot.Load() != nil
}

// Data returns the loaded dialect dataset, or nil before Init.
func (e *Engine) Data() *dialect.Data {
	if st := e.slot.Load(); st != nil {
		return st.data
	}
	return nil
}

// Stats returns the size of each list in the loaded dataset.
func (e *Engine) Stats() (dialect.Stats, error) {
	st := e.slot.Load()
	if st == nil {
		return dialect.Stats{}, ErrNotInitialized
	}
	return st.data.Stats(), nil
}

// Completions returns the candidates for the context at cursorOffset in
// cache order. It is empty before Init.
func (e *Engine) Completions(sql string, cursorOffset int) []complete.CompletionItem {
	st := e.slot.Load()
	if st == nil {
		return []complete.CompletionItem{}
	}
	return complete.GetCompletions(sql, cursorOffset, st.cache)
}

// CompletionsJSON is Completions serialized as a JSON array. It is "[]"
// before Init.
func (e *Engine) CompletionsJSON(sql string, cursorOffset int) string {
	out, err := json.Marshal(e.Completions(sql, cursorOffset))
	if err != nil {
		e.logger.Error("failed to encode completions", "error", err)
		return "[]"
	}
	return string(out)
}

// Context returns the syntactic context at cursorOffset. It does not need a
// dataset.
func (e *Engine) Context(sql string, cursorOffset int) complete.ContextType {
	return complete.DetectContext(sql, cursorOffset)
}

// Hover returns documentation for the word at offset, or nil. Before Init
// only generic function hovers are available.
func (e *Engine) Hover(sql string, offset int) *hover.HoverInfo {
	return hover.GetHoverInfo(&hover.HoverContext{
		Query:    sql,
		Position: offset,
		Data:     e.Data(),
	})
}

// Validate checks sql lexically. It does not need a dataset.
func (e *Engine) Validate(sql string) lint.Validation {
	return lint.Validate(sql)
}
