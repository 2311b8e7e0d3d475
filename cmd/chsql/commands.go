package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/tentacle-scylla/chsql/pkg/bridge"
	"github.com/tentacle-scylla/chsql/pkg/complete"
	"github.com/tentacle-scylla/chsql/pkg/lint"
	"github.com/tentacle-scylla/chsql/pkg/tokenize"
)

func completeCmd() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Aliases:   []string{"c"},
		Usage:     "List completions at a cursor offset",
		ArgsUsage: "[sql]",
		Flags: []cli.Flag{
			fileFlag(),
			offsetFlag(),
			&cli.BoolFlag{
				Name:  "context",
				Usage: "Only print the detected context",
			},
			&cli.BoolFlag{
				Name:    "table",
				Aliases: []string{"t"},
				Usage:   "Render a table instead of JSON",
			},
		},
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}
			offset := cursorOffset(c, input)

			if c.Bool("context") {
				fmt.Println(complete.DetectContext(input, offset))
				return nil
			}

			eng, err := newEngine(c, true)
			if err != nil {
				return err
			}
			if c.Bool("table") {
				renderCompletions(os.Stdout, eng.Context(input, offset), eng.Completions(input, offset))
				return nil
			}
			fmt.Println(eng.CompletionsJSON(input, offset))
			return nil
		},
	}
}

func hoverCmd() *cli.Command {
	return &cli.Command{
		Name:      "hover",
		Usage:     "Show documentation for the word at a cursor offset",
		ArgsUsage: "[sql]",
		Flags: []cli.Flag{
			fileFlag(),
			offsetFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}
			eng, err := newEngine(c, false)
			if err != nil {
				return err
			}

			info := eng.Hover(input, cursorOffset(c, input))
			if c.Bool("json") {
				return printJSON(info)
			}
			if info == nil {
				return cli.Exit("no hover information", 1)
			}
			fmt.Println(info.Content)
			return nil
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"lint", "validate"},
		Usage:     "Check SQL for lexical errors and unbalanced brackets",
		ArgsUsage: "[sql]",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only output errors, no success message",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the first error as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				v := lint.Validate(input)
				if err := printJSON(v); err != nil {
					return err
				}
				if !v.Valid {
					return cli.Exit("", 1)
				}
				return nil
			}

			results := lint.AnalyzeMultiple(input)
			hasErrors := false
			validStatements := 0

			for _, r := range results {
				if r.IsValid {
					validStatements++
					continue
				}
				hasErrors = true
				for _, e := range r.Errors {
					fmt.Fprintf(os.Stderr, "%s\n", e.Error())
				}
			}

			if !c.Bool("quiet") {
				if hasErrors {
					fmt.Fprintf(os.Stderr, "\n%d/%d statements valid\n", validStatements, len(results))
				} else {
					fmt.Printf("OK: %d statements valid\n", len(results))
				}
			}

			if hasErrors {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Show the token stream with highlight classes",
		ArgsUsage: "[sql]",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output highlights as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			input, err := getInput(c)
			if err != nil {
				return err
			}
			eng, err := newEngine(c, false)
			if err != nil {
				return err
			}

			var vocab tokenize.Vocabulary
			if data := eng.Data(); data != nil {
				vocab = data
			}

			if c.Bool("json") {
				return printJSON(tokenize.Classify(input, vocab))
			}

			toks, err := tokenize.Lex(input)
			if err != nil {
				return err
			}
			renderTokens(os.Stdout, toks, tokenize.Classify(input, vocab))
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve newline-delimited JSON requests on stdin/stdout",
		Action: func(c *cli.Context) error {
			eng, err := newEngine(c, false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return bridge.NewServer(eng, os.Stdin, os.Stdout, getLogger(c)).Run(ctx)
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
