package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tentacle-scylla/chsql/pkg/complete"
	"github.com/tentacle-scylla/chsql/pkg/tokenize"
)

func renderCompletions(w io.Writer, ctx complete.ContextType, items []complete.CompletionItem) {
	_, _ = fmt.Fprintf(w, "context: %s\n", ctx)
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "(no completions)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Label", "Kind", "Detail", "Insert", "Sort"})
	for _, it := range items {
		t.AppendRow(table.Row{it.Label, it.Kind, it.Detail, it.GetInsertText(), it.SortText})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d items)\n", len(items))
}

func renderTokens(w io.Writer, toks []tokenize.Token, highlights []tokenize.Highlight) {
	classes := make(map[int]tokenize.HighlightType, len(highlights))
	for _, h := range highlights {
		classes[h.Start] = h.Type
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pos", "Kind", "Text", "Highlight"})
	for _, tok := range toks {
		if tok.Kind == tokenize.KindWhitespace {
			continue
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%d:%d", tok.Line, tok.Column),
			tok.Kind,
			fmt.Sprintf("%q", tok.Text),
			classes[tok.Start],
		})
	}
	t.Render()
}
