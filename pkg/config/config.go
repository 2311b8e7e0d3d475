// Package config loads chsql settings from defaults, an optional chsql.yaml
// and CHSQL_ environment variables, in increasing order of precedence.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// FileName is the config file searched for from the working directory up.
	FileName = "chsql.yaml"
	// EnvPrefix prefixes environment overrides, e.g. CHSQL_LOG_LEVEL.
	EnvPrefix = "CHSQL_"

	maxUpwardSearchLevels = 10
)

// ErrInvalid marks configuration values that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// LogConfig controls the CLI's structured logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config is the resolved chsql configuration.
type Config struct {
	// Data is the path to the dialect JSON document. A relative path in a
	// config file is resolved against that file's directory.
	Data     string    `koanf:"data"`
	Snippets bool      `koanf:"snippets"`
	Log      LogConfig `koanf:"log"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data":       "",
		"snippets":   true,
		"log.level":  "warn",
		"log.format": "text",
	}
}

// FindFile searches startDir and its parents for FileName. It returns "" when
// none is found.
func FindFile(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load resolves configuration for the current working directory. explicit,
// when set, names the config file to use instead of searching.
func Load(explicit string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return LoadFrom(cwd, explicit)
}

// LoadFrom is Load with the search starting at dir.
func LoadFrom(dir, explicit string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	path := explicit
	if path == "" {
		path = FindFile(dir)
	}
	fromFile := koanf.New(".")
	if path != "" {
		if err := fromFile.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := k.Merge(fromFile); err != nil {
			return nil, errors.Wrap(err, "merging config file")
		}
	}

	// CHSQL_LOG_LEVEL -> log.level
	fromEnv := koanf.New(".")
	if err := fromEnv.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, "loading environment")
	}
	if err := k.Merge(fromEnv); err != nil {
		return nil, errors.Wrap(err, "merging environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	cfg.File = path

	// Only a data path taken from the file is relative to the file.
	if fromFile.Exists("data") && !fromEnv.Exists("data") && cfg.Data != "" && !filepath.IsAbs(cfg.Data) {
		cfg.Data = filepath.Join(filepath.Dir(path), cfg.Data)
	}
	return &cfg, nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.Wrapf(ErrInvalid, "log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

// SlogLevel returns the configured level, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelWarn
}

// NewLogger builds a logger writing to w in the configured format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
