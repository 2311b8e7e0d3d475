package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/tentacle-scylla/chsql/pkg/config"
	"github.com/tentacle-scylla/chsql/pkg/engine"
)

const (
	configKey = "config"
	loggerKey = "logger"
)

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read SQL from file",
	}
}

func offsetFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "offset",
		Aliases: []string{"o"},
		Value:   -1,
		Usage:   "Cursor byte offset (default: end of input)",
	}
}

// setup resolves configuration, applies global flags over it and stores the
// result and a logger in the app metadata.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("data") {
		cfg.Data = c.String("data")
	}
	if c.Bool("no-snippets") {
		cfg.Snippets = false
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	c.App.Metadata[loggerKey] = logger
	return nil
}

func getConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return &config.Config{Snippets: true}
}

func getLogger(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// newEngine creates an engine and loads the configured dataset. With
// required unset a missing data path leaves the engine uninitialized.
func newEngine(c *cli.Context, required bool) (*engine.Engine, error) {
	cfg := getConfig(c)
	logger := getLogger(c)
	eng := engine.New(engine.WithLogger(logger))

	if cfg.Data == "" {
		if required {
			return nil, errors.New("no dialect data: pass --data, set data in chsql.yaml or CHSQL_DATA")
		}
		return eng, nil
	}

	doc, err := os.ReadFile(cfg.Data)
	if err != nil {
		return nil, errors.Wrap(err, "reading dialect data")
	}
	if err := eng.Init(doc, cfg.Snippets); err != nil {
		return nil, err
	}
	logger.Debug("dialect data loaded", "path", cfg.Data)
	return eng, nil
}

// cursorOffset returns the --offset flag, or the end of input when unset.
func cursorOffset(c *cli.Context, input string) int {
	off := c.Int("offset")
	if off < 0 || off > len(input) {
		return len(input)
	}
	return off
}

func getInput(c *cli.Context) (string, error) {
	// Check for file flag
	if file := c.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "reading file")
		}
		return string(data), nil
	}

	// Check for positional argument
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	// Check for stdin
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}

	// Interactive mode - read until empty line or EOF
	_, _ = io.WriteString(os.Stderr, "Enter SQL (empty line or Ctrl+D to finish):\n")
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "reading input")
	}

	return strings.Join(lines, "\n"), nil
}
