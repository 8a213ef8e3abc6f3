package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/adapters"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/models/store"
	"github.com/de-tools/fin-atlas/pkg/store/postgres"
	"github.com/rs/zerolog"
)

const (
	selectCategoriesQuery = `
		SELECT id, code, name, level, parent_id
		FROM business_categories
		ORDER BY id`

	selectBenchmarksQuery = `
		SELECT category_id, metric, value, sample_size, data_year, last_updated
		FROM industry_benchmarks
		ORDER BY category_id, metric`

	upsertCategoryQuery = `
		INSERT INTO business_categories (id, code, name, level, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			level = EXCLUDED.level,
			parent_id = EXCLUDED.parent_id`

	upsertBenchmarkQuery = `
		INSERT INTO industry_benchmarks (category_id, metric, value, sample_size, data_year, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category_id, metric) DO UPDATE SET
			value = EXCLUDED.value,
			sample_size = EXCLUDED.sample_size,
			data_year = EXCLUDED.data_year,
			last_updated = EXCLUDED.last_updated`
)

// BenchmarkStore keeps benchmark reference data in the business_categories and
// industry_benchmarks tables. Load makes it usable as a benchmark.Loader.
type BenchmarkStore interface {
	Load(ctx context.Context) (domain.BenchmarkDataset, error)
	Save(ctx context.Context, ds domain.BenchmarkDataset) error
}

type benchmarkStore struct {
	db *sql.DB
}

func NewBenchmarkStore(db *sql.DB) (BenchmarkStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &benchmarkStore{db: db}, nil
}

func (s *benchmarkStore) Load(ctx context.Context) (domain.BenchmarkDataset, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return domain.BenchmarkDataset{}, err
	}
	rows, err := s.benchmarkRows(ctx)
	if err != nil {
		return domain.BenchmarkDataset{}, err
	}
	return domain.BenchmarkDataset{
		Categories: categories,
		Benchmarks: adapters.MapBenchmarkRowsStoreToDomain(rows),
	}, nil
}

func (s *benchmarkStore) categories(ctx context.Context) ([]domain.Category, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, selectCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close category rows")
		}
	}(rows)

	var out []domain.Category
	for rows.Next() {
		var (
			rec    store.CategoryRecord
			parent sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Name, &rec.Level, &parent); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parent.Valid {
			p := int(parent.Int64)
			rec.ParentID = &p
		}
		c, err := adapters.MapCategoryStoreToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (s *benchmarkStore) benchmarkRows(ctx context.Context) ([]store.BenchmarkRow, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, selectBenchmarksQuery)
	if err != nil {
		return nil, fmt.Errorf("query benchmarks: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close benchmark rows")
		}
	}(rows)

	var out []store.BenchmarkRow
	for rows.Next() {
		var (
			r       store.BenchmarkRow
			updated sql.NullTime
		)
		if err := rows.Scan(&r.CategoryID, &r.Metric, &r.Value, &r.SampleSize, &r.DataYear, &updated); err != nil {
			return nil, fmt.Errorf("scan benchmark: %w", err)
		}
		if updated.Valid {
			r.LastUpdated = updated.Time
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate benchmarks: %w", err)
	}
	return out, nil
}

// Save upserts a whole dataset in one transaction, unless ctx already carries one.
func (s *benchmarkStore) Save(ctx context.Context, ds domain.BenchmarkDataset) (err error) {
	if postgres.GetTransaction(ctx) == nil {
		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("begin transaction: %w", txErr)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
				return
			}
			err = tx.Commit()
		}()
		ctx = postgres.WithTransaction(ctx, tx)
	}

	if err := s.saveCategories(ctx, ds.Categories); err != nil {
		return err
	}
	for _, b := range ds.Benchmarks {
		if err := s.saveBenchmark(ctx, b); err != nil {
			return err
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("categories", len(ds.Categories)).
		Int("benchmarks", len(ds.Benchmarks)).
		Msg("benchmark dataset saved")
	return nil
}

func (s *benchmarkStore) saveCategories(ctx context.Context, categories []domain.Category) error {
	stmt, err := postgres.Prepare(ctx, s.db, upsertCategoryQuery)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	// parents first so the foreign key holds
	for _, level := range []domain.CategoryLevel{domain.LevelMajor, domain.LevelMiddle, domain.LevelMinor} {
		for _, c := range categories {
			if c.Level != level {
				continue
			}
			rec := adapters.MapCategoryDomainToStore(c)
			if _, err := stmt.ExecContext(ctx, rec.ID, rec.Code, rec.Name, rec.Level, rec.ParentID); err != nil {
				return fmt.Errorf("upsert category %d: %w", rec.ID, err)
			}
		}
	}
	return nil
}

func (s *benchmarkStore) saveBenchmark(ctx context.Context, b domain.IndustryBenchmarkData) error {
	stmt, err := postgres.Prepare(ctx, s.db, upsertBenchmarkQuery)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range adapters.MapBenchmarkDomainToStoreRows(b) {
		var updated any
		if !r.LastUpdated.IsZero() {
			updated = r.LastUpdated
		}
		if _, err := stmt.ExecContext(ctx, r.CategoryID, r.Metric, r.Value, r.SampleSize, r.DataYear, updated); err != nil {
			return fmt.Errorf("upsert benchmark %d/%s: %w", r.CategoryID, r.Metric, err)
		}
	}
	return nil
}
