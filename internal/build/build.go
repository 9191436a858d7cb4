// Package build generates and writes every document of a config file.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/catalog"
	"github.com/reoring/wireschema/internal/config"
	js "github.com/reoring/wireschema/jsonschema"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Result describes one written document.
type Result struct {
	Name        string
	Path        string
	Bytes       int
	Definitions int
}

// Builder runs a config. Each document gets its own Generator, so
// documents are generated concurrently.
type Builder struct {
	cfg *config.Config
	reg *catalog.Registry
	log *zap.Logger
}

// New returns a Builder resolving expressions with reg, or with
// catalog.Default when reg is nil.
func New(cfg *config.Config, reg *catalog.Registry, log *zap.Logger) *Builder {
	if reg == nil {
		reg = catalog.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{cfg: cfg, reg: reg, log: log}
}

// Run writes every document. It stops at the first failure; results are
// in config order.
func (b *Builder) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(b.cfg.Documents))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(b.cfg.Workers, 1))

	for i, d := range b.cfg.Documents {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := b.write(d)
			if err != nil {
				return fmt.Errorf("document %s: %w", d.Name, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Builder) write(d config.Document) (Result, error) {
	log := b.log.With(zap.String("document", d.Name))

	root, err := Generate(b.reg, d.Expr,
		wireschema.WithInlineSubschemas(b.cfg.InlineSubschemas),
		wireschema.WithUniqueNames(b.cfg.UniqueNames),
		wireschema.WithLogger(log),
	)
	if err != nil {
		return Result{}, err
	}
	out, err := Render(root, b.cfg.Format, b.cfg.Indent)
	if err != nil {
		return Result{}, err
	}

	path := b.cfg.OutputPath(d)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{}, fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}

	log.Info("Wrote schema",
		zap.String("path", path),
		zap.Int("bytes", len(out)),
		zap.Int("definitions", len(root.Definitions)))

	return Result{Name: d.Name, Path: path, Bytes: len(out), Definitions: len(root.Definitions)}, nil
}

// Generate resolves expr with reg and returns its root document.
func Generate(reg *catalog.Registry, expr string, opts ...wireschema.Option) (*js.Schema, error) {
	t, err := reg.Parse(expr)
	if err != nil {
		return nil, err
	}
	return wireschema.NewGenerator(opts...).RootSchemaFor(t), nil
}

// Render encodes s in format. JSON output ends with a newline.
func Render(s *js.Schema, format string, indent int) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		out, err := js.MarshalIndent(s, indent)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case config.FormatYAML:
		return js.MarshalYAML(s, indent)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
