package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/wireschema"
	"github.com/reoring/wireschema/catalog"
	"github.com/reoring/wireschema/internal/build"
	"github.com/reoring/wireschema/internal/config"
)

var ErrExprRequired = errors.New("exactly one adapter expression is required")

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "wireschema",
		Usage: "Generate JSON Schema documents for serialization adapters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			genCommand(w),
			buildCommand(w),
			listCommand(w),
		},
	}
}

func genCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "Print the root schema of one adapter expression",
		ArgsUsage: "EXPR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   config.FormatJSON,
				Usage:   "Output format (json or yaml)",
			},
			&cli.IntFlag{
				Name:  "indent",
				Value: 2,
				Usage: "Indentation width, 0 for compact JSON",
			},
			&cli.BoolFlag{
				Name:  "inline",
				Usage: "Inline referenceable schemas instead of emitting definitions",
			},
			&cli.BoolFlag{
				Name:  "unique-names",
				Usage: "Suffix colliding definition names instead of replacing them",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return ErrExprRequired
			}

			logger, err := newLogger(c.String("log-level"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			root, err := build.Generate(catalog.Default(), c.Args().First(),
				wireschema.WithInlineSubschemas(c.Bool("inline")),
				wireschema.WithUniqueNames(c.Bool("unique-names")),
				wireschema.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			out, err := build.Render(root, c.String("format"), int(c.Int("indent")))
			if err != nil {
				return err
			}
			_, err = w.Write(out)
			return err
		},
	}
}

func buildCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Generate every document listed in a config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "wireschema.toml",
				Usage:   "Path to the TOML config file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger, err := newLogger(c.String("log-level"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			results, err := build.New(cfg, nil, logger).Run(ctx)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%d bytes\n", r.Name, r.Path, r.Bytes)
			}
			return nil
		},
	}
}

func listCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the adapters and types an expression may use",
		Action: func(_ context.Context, _ *cli.Command) error {
			for _, e := range catalog.Default().Entries() {
				usage := e.Usage
				if usage == "" {
					usage = e.Name
				}
				fmt.Fprintln(w, usage)
			}
			return nil
		},
	}
}

// newLogger creates a development logger writing to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
