package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func testDataset() domain.BenchmarkDataset {
	return domain.BenchmarkDataset{
		DefaultCode: "T",
		Categories: []domain.Category{
			{ID: 2, Code: "E", Name: "製造業", Level: domain.LevelMajor},
			{ID: 8, Code: "T", Name: "その他", Level: domain.LevelMajor},
			{ID: 21, Code: "E09", Name: "食料品製造業", Level: domain.LevelMiddle, ParentID: intPtr(2)},
			{ID: 22, Code: "E10", Name: "飲料・たばこ・飼料製造業", Level: domain.LevelMiddle, ParentID: intPtr(2)},
			{ID: 211, Code: "E091", Name: "畜産食料品製造業", Level: domain.LevelMinor, ParentID: intPtr(21)},
		},
		Benchmarks: []domain.IndustryBenchmarkData{
			{Category: domain.Category{ID: 2}, Values: map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 4.8}},
			{Category: domain.Category{ID: 21}, Values: map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 4.2}},
			{Category: domain.Category{ID: 8}, Values: map[domain.BenchmarkMetric]float64{domain.BenchmarkReturnOnAssets: 3.5}},
		},
	}
}

func TestRepository_GetBenchmark(t *testing.T) {
	repo, err := New(testDataset())
	require.NoError(t, err)

	t.Run("known category", func(t *testing.T) {
		b, ok := repo.GetBenchmark(2)

		require.True(t, ok)
		assert.Equal(t, "E", b.Category.Code)
		assert.Equal(t, 4.8, b.Values[domain.BenchmarkReturnOnAssets])
	})

	t.Run("category without its own row", func(t *testing.T) {
		b, ok := repo.GetBenchmark(22)

		assert.False(t, ok)
		assert.Nil(t, b)
	})

	t.Run("returned rows do not alias storage", func(t *testing.T) {
		b, ok := repo.GetBenchmark(2)
		require.True(t, ok)
		b.Values[domain.BenchmarkReturnOnAssets] = 99

		again, _ := repo.GetBenchmark(2)
		assert.Equal(t, 4.8, again.Values[domain.BenchmarkReturnOnAssets])
	})
}

func TestRepository_Resolve(t *testing.T) {
	repo, err := New(testDataset())
	require.NoError(t, err)

	tests := []struct {
		name        string
		id          int
		expected    string
		fallback    bool
		fromDefault bool
	}{
		{"exact match", 21, "E09", false, false},
		{"minor falls back to middle", 211, "E09", true, false},
		{"middle without data falls back to major", 22, "E", true, false},
		{"unknown id falls back to default", 999, "T", true, true},
		{"default itself", 8, "T", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := repo.Resolve(tc.id)

			assert.Equal(t, tc.id, res.RequestedID)
			assert.Equal(t, tc.expected, res.Benchmark.Category.Code)
			assert.Equal(t, tc.fallback, res.Fallback)
			assert.Equal(t, tc.fromDefault, res.FromDefault)
		})
	}
}

func TestRepository_Tree(t *testing.T) {
	repo, err := New(testDataset())
	require.NoError(t, err)

	children := repo.Children(2)
	require.Len(t, children, 2)
	assert.Equal(t, "E09", children[0].Code)
	assert.Equal(t, "E10", children[1].Code)

	assert.Empty(t, repo.Children(211))
	assert.Nil(t, repo.Children(404))

	majors := repo.ByLevel(domain.LevelMajor, nil)
	assert.Len(t, majors, 2)

	middles := repo.ByLevel(domain.LevelMiddle, intPtr(2))
	assert.Len(t, middles, 2)
	assert.Empty(t, repo.ByLevel(domain.LevelMinor, intPtr(2)))

	ancestors := repo.Ancestors(211)
	require.Len(t, ancestors, 2)
	assert.Equal(t, 21, ancestors[0].ID)
	assert.Equal(t, 2, ancestors[1].ID)

	assert.Equal(t, "T", repo.Default().Code)
}

func TestNew_InvalidDatasets(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ds *domain.BenchmarkDataset)
		target error
	}{
		{
			name: "default category missing",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.DefaultCode = "Z"
			},
			target: ErrDefaultMissing,
		},
		{
			name: "default category has no benchmark",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.Benchmarks = ds.Benchmarks[:2]
			},
			target: ErrDefaultMissing,
		},
		{
			name: "benchmark for unknown category",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.Benchmarks = append(ds.Benchmarks, domain.IndustryBenchmarkData{Category: domain.Category{ID: 77}})
			},
			target: ErrUnknownCategory,
		},
		{
			name: "dangling parent",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.Categories[2].ParentID = intPtr(404)
			},
		},
		{
			name: "duplicate id",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.Categories = append(ds.Categories, domain.Category{ID: 2, Code: "X", Level: domain.LevelMajor})
			},
		},
		{
			name: "cycle",
			mutate: func(ds *domain.BenchmarkDataset) {
				ds.Categories[0].ParentID = intPtr(211)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds := testDataset()
			tc.mutate(&ds)

			repo, err := New(ds)

			assert.Nil(t, repo)
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target), "unexpected error: %v", err)
			}
		})
	}
}

func TestEmbeddedDataset(t *testing.T) {
	repo, err := Load(context.Background(), NewEmbeddedLoader())
	require.NoError(t, err)

	manufacturing, ok := repo.GetBenchmark(2)
	require.True(t, ok)
	assert.Equal(t, 4.8, manufacturing.Values[domain.BenchmarkReturnOnAssets])
	assert.Equal(t, 36.0, manufacturing.Values[domain.BenchmarkEquityRatio])
	assert.Equal(t, 2023, manufacturing.DataYear)
	assert.Equal(t, "2024-03-01", manufacturing.LastUpdated.Format("2006-01-02"))

	software := repo.Resolve(331)
	assert.Equal(t, "G39", software.Benchmark.Category.Code)
	assert.True(t, software.Fallback)

	assert.Equal(t, "T", repo.Default().Code)
	assert.Len(t, repo.ByLevel(domain.LevelMajor, nil), 20)
}
