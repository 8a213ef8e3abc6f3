package adapters

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/models/store"
)

const dateLayout = "2006-01-02"

func MapCategoryStoreToDomain(r store.CategoryRecord) (domain.Category, error) {
	level := domain.CategoryLevel(r.Level)
	if !level.Valid() {
		return domain.Category{}, fmt.Errorf("category %d: invalid level %q", r.ID, r.Level)
	}
	c := domain.Category{
		ID:    r.ID,
		Code:  r.Code,
		Name:  r.Name,
		Level: level,
	}
	if r.ParentID != nil {
		parent := *r.ParentID
		c.ParentID = &parent
	}
	return c, nil
}

func MapCategoryDomainToStore(c domain.Category) store.CategoryRecord {
	r := store.CategoryRecord{
		ID:    c.ID,
		Code:  c.Code,
		Name:  c.Name,
		Level: string(c.Level),
	}
	if c.ParentID != nil {
		parent := *c.ParentID
		r.ParentID = &parent
	}
	return r
}

func MapBenchmarkStoreToDomain(r store.BenchmarkRecord) (domain.IndustryBenchmarkData, error) {
	b := domain.IndustryBenchmarkData{
		Category:   domain.Category{ID: r.CategoryID},
		Values:     make(map[domain.BenchmarkMetric]float64, len(r.Values)),
		SampleSize: r.SampleSize,
		DataYear:   r.DataYear,
	}
	for k, v := range r.Values {
		b.Values[domain.BenchmarkMetric(k)] = v
	}
	if r.LastUpdated != "" {
		t, err := time.Parse(dateLayout, r.LastUpdated)
		if err != nil {
			return domain.IndustryBenchmarkData{}, fmt.Errorf("benchmark %d: invalid last_updated: %w", r.CategoryID, err)
		}
		b.LastUpdated = t
	}
	return b, nil
}

func MapBenchmarkDatasetStoreToDomain(ds store.BenchmarkDataset) (domain.BenchmarkDataset, error) {
	out := domain.BenchmarkDataset{
		DefaultCode: ds.DefaultCode,
		Categories:  make([]domain.Category, 0, len(ds.Categories)),
		Benchmarks:  make([]domain.IndustryBenchmarkData, 0, len(ds.Benchmarks)),
	}
	for _, r := range ds.Categories {
		c, err := MapCategoryStoreToDomain(r)
		if err != nil {
			return domain.BenchmarkDataset{}, err
		}
		out.Categories = append(out.Categories, c)
	}
	for _, r := range ds.Benchmarks {
		b, err := MapBenchmarkStoreToDomain(r)
		if err != nil {
			return domain.BenchmarkDataset{}, err
		}
		out.Benchmarks = append(out.Benchmarks, b)
	}
	return out, nil
}

// MapBenchmarkRowsStoreToDomain folds metric-per-row records into one benchmark per category,
// keeping the order in which categories first appear.
func MapBenchmarkRowsStoreToDomain(rows []store.BenchmarkRow) []domain.IndustryBenchmarkData {
	var (
		out   []domain.IndustryBenchmarkData
		index = map[int]int{}
	)
	for _, r := range rows {
		i, ok := index[r.CategoryID]
		if !ok {
			i = len(out)
			index[r.CategoryID] = i
			out = append(out, domain.IndustryBenchmarkData{
				Category:    domain.Category{ID: r.CategoryID},
				Values:      map[domain.BenchmarkMetric]float64{},
				SampleSize:  r.SampleSize,
				DataYear:    r.DataYear,
				LastUpdated: r.LastUpdated,
			})
		}
		out[i].Values[domain.BenchmarkMetric(r.Metric)] = r.Value
	}
	return out
}

func MapBenchmarkDomainToStoreRows(b domain.IndustryBenchmarkData) []store.BenchmarkRow {
	rows := make([]store.BenchmarkRow, 0, len(b.Values))
	for _, k := range slices.Sorted(maps.Keys(b.Values)) {
		rows = append(rows, store.BenchmarkRow{
			CategoryID:  b.Category.ID,
			Metric:      string(k),
			Value:       b.Values[k],
			SampleSize:  b.SampleSize,
			DataYear:    b.DataYear,
			LastUpdated: b.LastUpdated,
		})
	}
	return rows
}
