package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/fin-atlas/pkg/runtime/app"
	"github.com/de-tools/fin-atlas/pkg/runtime/terminal"
	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger()
	ctx := logger.WithContext(context.Background())

	var built *app.App
	cli := terminal.NewCLI(terminal.Options{
		Setup: func(ctx context.Context, cfgPath string) (*commands.Dependencies, error) {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
			a, err := app.Build(ctx, cfg)
			if err != nil {
				return nil, err
			}
			built = a

			deps := &commands.Dependencies{
				Analyzer:   a.Analyzer,
				Benchmarks: a.Benchmarks,
				Extractors: a.Extractors,
				Policy:     a.Policy,
			}
			if a.BenchmarkStore != nil {
				deps.Seeder = a.BenchmarkStore
			}
			return deps, nil
		},
		Output: os.Stdout,
	})

	err := cli.Execute(ctx)
	if built != nil {
		built.Close(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
