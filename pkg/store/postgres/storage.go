package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const BusinessCategoriesSchema = `
	CREATE TABLE IF NOT EXISTS business_categories (
		id INTEGER PRIMARY KEY,
		code VARCHAR(16) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		level VARCHAR(16) NOT NULL,
		parent_id INTEGER NULL REFERENCES business_categories (id)
	);
`

const IndustryBenchmarksSchema = `
	CREATE TABLE IF NOT EXISTS industry_benchmarks (
		category_id INTEGER NOT NULL REFERENCES business_categories (id),
		metric VARCHAR(64) NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		sample_size INTEGER NOT NULL DEFAULT 0,
		data_year INTEGER NOT NULL DEFAULT 0,
		last_updated DATE NULL,
		PRIMARY KEY (category_id, metric)
	);
`

const FinancialExtractsSchema = `
	CREATE TABLE IF NOT EXISTS financial_extracts (
		id VARCHAR(64) PRIMARY KEY,
		company_id VARCHAR(64) NOT NULL,
		period VARCHAR(32) NOT NULL,
		source VARCHAR(16) NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		document_type VARCHAR(32) NOT NULL,
		file_name VARCHAR(255) NOT NULL DEFAULT '',
		extracted_values JSONB NOT NULL,
		extracted_at TIMESTAMPTZ NOT NULL
	);
`

const FinancialExtractsIndex = `
	CREATE INDEX IF NOT EXISTS financial_extracts_company_period
		ON financial_extracts (company_id, period);
`

var bootQueries = []string{
	BusinessCategoriesSchema,
	IndustryBenchmarksSchema,
	FinancialExtractsSchema,
	FinancialExtractsIndex,
}

type Settings struct {
	DSN string
}

// NewDB opens a pgx-backed connection pool and creates missing tables.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}
	db, err := sql.Open("pgx", settings.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := Boot(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Boot runs the schema statements. They are idempotent.
func Boot(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("boot schema: %w", err)
		}
	}
	return nil
}
