// Command chsql is editor tooling for ClickHouse SQL: completions, hover
// documentation, lexical checks and a JSON bridge for editor extensions.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "chsql",
		Usage:   "ClickHouse SQL completion, hover and validation",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: chsql.yaml found from the working directory up)",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "ClickHouse dialect JSON document",
				EnvVars: []string{"CHSQL_DATA"},
			},
			&cli.BoolFlag{
				Name:  "no-snippets",
				Usage: "Insert plain name() instead of snippet placeholders",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			completeCmd(),
			hoverCmd(),
			checkCmd(),
			tokensCmd(),
			serveCmd(),
		},
	}
}
