// Package config loads the TOML file that drives batch schema generation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrInvalidConfig         = errors.New("invalid config")
)

// CurrentVersion is the config file version this build understands.
const CurrentVersion = 1

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is a batch of documents generated with shared settings.
type Config struct {
	// Version of the config file.
	Version int `koanf:"version"`
	// Inline referenceable schemas instead of emitting definitions.
	InlineSubschemas bool `koanf:"inline_subschemas"`
	// Suffix colliding definition names instead of replacing them.
	UniqueNames bool `koanf:"unique_names"`
	// Output format, json or yaml.
	Format string `koanf:"format"`
	// Indentation width in spaces. Zero renders compact JSON.
	Indent int `koanf:"indent"`
	// Documents generated at once.
	Workers   int        `koanf:"workers"`
	Documents []Document `koanf:"documents"`

	// Dir is the directory of the loaded file. Relative outputs resolve
	// against it.
	Dir string `koanf:"-"`
}

// Document is one root schema to generate.
type Document struct {
	Name string `koanf:"name"`
	// Adapter expression, e.g. "Slice<BoolFromInt<Strict>>".
	Expr string `koanf:"expr"`
	// Output path. Defaults to the name plus the format extension.
	Output string `koanf:"output"`
}

// OutputPath returns where d is written.
func (c *Config) OutputPath(d Document) string {
	out := d.Output
	if out == "" {
		out = d.Name + "." + c.Format
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.Dir, out)
}

// Load reads, defaults and validates the config file at path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Dir = filepath.Dir(path)

	if err := checkConfigVersion(cfg.Version, CurrentVersion); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Validate reports the first problem in c.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: format %q (want json or yaml)", ErrInvalidConfig, c.Format)
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: negative indent %d", ErrInvalidConfig, c.Indent)
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("%w: no documents", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		if d.Name == "" || d.Expr == "" {
			return fmt.Errorf("%w: documents[%d] needs a name and an expr", ErrInvalidConfig, i)
		}
		out := c.OutputPath(d)
		if seen[out] {
			return fmt.Errorf("%w: documents[%d] writes %s twice", ErrInvalidConfig, i, out)
		}
		seen[out] = true
	}
	return nil
}

func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return ErrConfigVersionMissing
	}
	if current != expected {
		return fmt.Errorf("%w (got: %d, expected: %d)", ErrConfigVersionMismatch, current, expected)
	}
	return nil
}
