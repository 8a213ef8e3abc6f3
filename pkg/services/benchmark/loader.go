package benchmark

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/adapters"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed data/benchmarks.yaml
var embeddedDataset []byte

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Loader reads benchmark reference data from some source.
type Loader interface {
	Load(ctx context.Context) (domain.BenchmarkDataset, error)
}

// FormatFromPath picks the dataset format by file extension; YAML is the default.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseDataset decodes a dataset document. Unknown fields are rejected.
func ParseDataset(data []byte, format Format) (domain.BenchmarkDataset, error) {
	var ds store.BenchmarkDataset
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return domain.BenchmarkDataset{}, fmt.Errorf("decode json dataset: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&ds); err != nil {
			return domain.BenchmarkDataset{}, fmt.Errorf("decode yaml dataset: %w", err)
		}
	default:
		return domain.BenchmarkDataset{}, fmt.Errorf("unsupported dataset format %q", format)
	}
	return adapters.MapBenchmarkDatasetStoreToDomain(ds)
}

type embeddedLoader struct{}

// NewEmbeddedLoader serves the reference dataset compiled into the binary.
func NewEmbeddedLoader() Loader {
	return embeddedLoader{}
}

func (embeddedLoader) Load(_ context.Context) (domain.BenchmarkDataset, error) {
	return ParseDataset(embeddedDataset, FormatYAML)
}

type fileLoader struct {
	path string
}

func NewFileLoader(path string) Loader {
	return &fileLoader{path: path}
}

func (l *fileLoader) Load(ctx context.Context) (domain.BenchmarkDataset, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.BenchmarkDataset{}, fmt.Errorf("read benchmark dataset: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", l.path).Msg("loading benchmark dataset from file")
	return ParseDataset(data, FormatFromPath(l.path))
}

// Load builds a repository from a loader. Any error here is fatal at startup.
func Load(ctx context.Context, loader Loader) (Repository, error) {
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load benchmark dataset: %w", err)
	}
	repo, err := New(ds)
	if err != nil {
		return nil, fmt.Errorf("build benchmark repository: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Int("categories", len(ds.Categories)).
		Int("benchmarks", len(ds.Benchmarks)).
		Str("default", repo.Default().Code).
		Msg("benchmark repository loaded")
	return repo, nil
}
