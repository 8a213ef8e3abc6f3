package commands

import (
	"context"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
)

// Dependencies are resolved once the root command has parsed --config.
type Dependencies struct {
	Analyzer   analysis.Service
	Benchmarks benchmark.Repository
	Extractors extraction.Registry
	// Seeder is nil when no database is configured.
	Seeder BenchmarkSaver
	Policy domain.MissingValuePolicy
}

type BenchmarkSaver interface {
	Save(ctx context.Context, ds domain.BenchmarkDataset) error
}

// Provider returns the resolved dependencies.
type Provider func() (*Dependencies, error)

// ReportHandler renders a report in one output format.
type ReportHandler interface {
	Handle(report *domain.Report) error
}
