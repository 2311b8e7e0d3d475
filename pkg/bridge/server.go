// Package bridge serves the completion engine over newline-delimited JSON,
// one request per line, for editor extensions that spawn chsql as a
// subprocess.
package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/tentacle-scylla/chsql/pkg/engine"
)

// Server reads requests from a reader and writes responses to a writer.
// Requests are handled one at a time, in order.
type Server struct {
	engine *engine.Engine
	reader *bufio.Reader
	writer io.Writer
	logger *slog.Logger

	writeMu sync.Mutex
}

// NewServer creates a bridge over eng. A nil logger discards logs.
func NewServer(eng *engine.Engine, reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		engine: eng,
		reader: bufio.NewReaderSize(reader, 64<<10),
		writer: writer,
		logger: logger,
	}
}

type line struct {
	data []byte
	err  error
}

// Run serves until the input ends or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("bridge starting")

	lines := make(chan line)
	go s.readLines(ctx, lines)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("bridge stopped", "reason", ctx.Err())
			return nil
		case l, ok := <-lines:
			if !ok {
				s.logger.Info("input closed")
				return nil
			}
			if l.err != nil {
				s.logger.Error("error reading request", "error", l.err)
				return errors.Wrap(l.err, "reading request")
			}
			s.handleLine(l.data)
		}
	}
}

func (s *Server) readLines(ctx context.Context, out chan<- line) {
	defer close(out)
	for {
		data, err := s.reader.ReadBytes('\n')
		if len(data) > 0 {
			select {
			case out <- line{data: data}:
			case <-ctx.Done():
				return
			}
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			select {
			case out <- line{err: err}:
			case <-ctx.Done():
			}
		}
		return
	}
}

func (s *Server) handleLine(data []byte) {
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("malformed request", "error", err)
		s.send(Response{Error: &Error{Code: CodeParseError, Message: "malformed request: " + err.Error()}})
		return
	}
	if req.Method == "" {
		s.send(Response{ID: req.ID, Error: &Error{Code: CodeInvalidRequest, Message: "missing method"}})
		return
	}

	s.logger.Debug("dispatching request", "method", req.Method)
	result, rerr := s.dispatch(&req)
	s.send(Response{ID: req.ID, Result: result, Error: rerr})
}

// Handle processes a single request. It is exposed for in-process callers.
func (s *Server) Handle(req *Request) Response {
	result, rerr := s.dispatch(req)
	return Response{ID: req.ID, Result: result, Error: rerr}
}

func (s *Server) dispatch(req *Request) (any, *Error) {
	switch req.Method {
	case MethodInit:
		return s.handleInit(req.Params)
	case MethodCompletions:
		var p PositionParams
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return json.RawMessage(s.engine.CompletionsJSON(p.SQL, p.Offset)), nil
	case MethodContext:
		var p PositionParams
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return ContextResult{Context: string(s.engine.Context(p.SQL, p.Offset))}, nil
	case MethodHover:
		var p PositionParams
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		if info := s.engine.Hover(p.SQL, p.Offset); info != nil {
			return info, nil
		}
		return json.RawMessage("null"), nil
	case MethodValidate:
		var p ValidateParams
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return s.engine.Validate(p.SQL), nil
	case MethodStats:
		stats, err := s.engine.Stats()
		if err != nil {
			return nil, &Error{Code: CodeNotInitialized, Message: err.Error()}
		}
		return stats, nil
	default:
		return nil, &Error{Code: CodeMethodNotFound, Message: "unknown method: " + req.Method}
	}
}

func (s *Server) handleInit(raw json.RawMessage) (any, *Error) {
	var p InitParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	doc := []byte(p.Data)
	var text string
	if err := json.Unmarshal(p.Data, &text); err == nil {
		doc = []byte(text)
	}
	useSnippets := p.UseSnippets == nil || *p.UseSnippets

	res := s.engine.InitResult(string(doc), useSnippets)
	if !res.Success {
		s.logger.Warn("init failed", "error", res.Error)
	}
	return res, nil
}

func decodeParams(raw json.RawMessage, v any) *Error {
	if len(raw) == 0 {
		return &Error{Code: CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Code: CodeInvalidParams, Message: "invalid params: " + err.Error()}
	}
	return nil
}

func (s *Server) send(resp Response) {
	out, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		out, _ = json.Marshal(Response{ID: resp.ID, Error: &Error{Code: CodeInvalidRequest, Message: "unencodable response"}})
	}
	out = append(out, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.writer.Write(out); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
