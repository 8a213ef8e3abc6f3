package app

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/store/postgres"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestBuild_Embedded(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	a, err := Build(testContext(t), cfg)

	require.NoError(t, err)
	defer a.Close(context.Background())
	assert.Equal(t, "T", a.Benchmarks.Default().Code)
	assert.Equal(t, domain.NullPropagate, a.Policy)
	assert.Nil(t, a.Extracts)
	assert.Nil(t, a.BenchmarkStore)
	assert.NotNil(t, a.Analyzer)
	assert.Contains(t, a.Extractors.ListExtensions(), ".csv")
}

func TestBuild_MissingFile(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Benchmarks.Source = config.SourceFile
	cfg.Benchmarks.Path = filepath.Join(t.TempDir(), "absent.yaml")

	_, err = Build(testContext(t), cfg)

	assert.Error(t, err)
}

func TestBuild_SQLSource(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	original := OpenDB
	OpenDB = func(context.Context, postgres.Settings) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { OpenDB = original })

	mock.ExpectQuery("FROM business_categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "level", "parent_id"}).
			AddRow(8, "T", "その他", "major", nil))
	mock.ExpectQuery("FROM industry_benchmarks").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "metric", "value", "sample_size", "data_year", "last_updated"}).
			AddRow(8, "returnOnAssets", 3.5, 900, 2023, nil))
	mock.ExpectClose()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Benchmarks.Source = config.SourceSQL
	cfg.Database.DSN = "postgres://localhost/finatlas"

	a, err := Build(testContext(t), cfg)
	require.NoError(t, err)

	assert.NotNil(t, a.Extracts)
	assert.Equal(t, "T", a.Benchmarks.Default().Code)
	b, ok := a.Benchmarks.GetBenchmark(8)
	require.True(t, ok)
	assert.Equal(t, 3.5, b.Values[domain.BenchmarkReturnOnAssets])

	a.Close(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithDefaultCode(t *testing.T) {
	ds, err := withDefaultCode(staticLoader{}, "X").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", ds.DefaultCode)

	ds, err = withDefaultCode(staticLoader{code: "T"}, "X").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T", ds.DefaultCode)
}

type staticLoader struct {
	code string
}

func (s staticLoader) Load(context.Context) (domain.BenchmarkDataset, error) {
	return domain.BenchmarkDataset{DefaultCode: s.code}, nil
}
