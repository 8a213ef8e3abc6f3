package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/de-tools/fin-atlas/pkg/services/comparison"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
	"github.com/de-tools/fin-atlas/pkg/services/normalize"
	"github.com/de-tools/fin-atlas/pkg/services/ratio"
	"github.com/de-tools/fin-atlas/pkg/store/postgres"
	sqlstore "github.com/de-tools/fin-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
)

// App holds the components shared by the web server and the CLI.
type App struct {
	Config     *config.Config
	Policy     domain.MissingValuePolicy
	Benchmarks benchmark.Repository
	Comparator comparison.Comparator
	Analyzer   analysis.Service
	Extractors extraction.Registry
	// The stores below are nil unless database.dsn is configured.
	Extracts       sqlstore.ExtractStore
	BenchmarkStore sqlstore.BenchmarkStore

	db *sql.DB
}

// OpenDB is swapped in tests.
var OpenDB = postgres.NewDB

// Build wires everything from cfg. Failing to load benchmark data is fatal.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	a := &App{
		Config:     cfg,
		Policy:     policy,
		Extractors: extraction.NewDefaultRegistry(nil),
	}

	if cfg.Database.DSN != "" {
		db, err := OpenDB(ctx, postgres.Settings{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		if a.Extracts, err = sqlstore.NewExtractStore(db); err != nil {
			a.Close(ctx)
			return nil, err
		}
		if a.BenchmarkStore, err = sqlstore.NewBenchmarkStore(db); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	loader, err := a.loader(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Benchmarks, err = benchmark.Load(ctx, withDefaultCode(loader, cfg.Benchmarks.DefaultCode))
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	settings := comparison.DefaultSettings()
	settings.DefaultFallback = cfg.Benchmarks.DefaultFallback
	if a.Comparator, err = comparison.NewComparator(a.Benchmarks, settings); err != nil {
		a.Close(ctx)
		return nil, err
	}

	var store analysis.ExtractStore
	if a.Extracts != nil {
		store = a.Extracts
	}
	if a.Analyzer, err = analysis.NewService(normalize.NewNormalizer(), ratio.NewEngine(), a.Comparator, store); err != nil {
		a.Close(ctx)
		return nil, err
	}

	logger.Info().
		Str("benchmark_source", string(cfg.Benchmarks.Source)).
		Bool("database", a.db != nil).
		Str("missing_value_policy", policy.String()).
		Msg("application wired")
	return a, nil
}

func (a *App) loader(ctx context.Context) (benchmark.Loader, error) {
	b := a.Config.Benchmarks
	switch b.Source {
	case config.SourceEmbedded:
		return benchmark.NewEmbeddedLoader(), nil
	case config.SourceFile:
		return benchmark.NewFileLoader(b.Path), nil
	case config.SourceS3:
		return benchmark.NewS3LoaderFromEnv(ctx, benchmark.S3Settings{
			Bucket: b.S3.Bucket,
			Key:    b.S3.Key,
			Region: b.S3.Region,
		})
	case config.SourceSQL:
		if a.BenchmarkStore == nil {
			return nil, fmt.Errorf("benchmarks.source sql needs database.dsn")
		}
		return a.BenchmarkStore, nil
	default:
		return nil, fmt.Errorf("unknown benchmarks.source %q", b.Source)
	}
}

// Close releases the database pool, if any.
func (a *App) Close(ctx context.Context) {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close database")
	}
	a.db = nil
}

type defaultCodeLoader struct {
	benchmark.Loader
	code string
}

// withDefaultCode fills in the default category code for datasets that do not name one.
func withDefaultCode(l benchmark.Loader, code string) benchmark.Loader {
	if code == "" {
		return l
	}
	return &defaultCodeLoader{Loader: l, code: code}
}

func (l *defaultCodeLoader) Load(ctx context.Context) (domain.BenchmarkDataset, error) {
	ds, err := l.Loader.Load(ctx)
	if err != nil {
		return ds, err
	}
	if ds.DefaultCode == "" {
		ds.DefaultCode = l.code
	}
	return ds, nil
}
