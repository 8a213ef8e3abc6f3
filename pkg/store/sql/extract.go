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
	insertExtractQuery = `
		INSERT INTO financial_extracts (
			id, company_id, period, source, confidence,
			document_type, file_name, extracted_values, extracted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (id) DO NOTHING`

	selectExtractsQuery = `
		SELECT id, company_id, period, source, confidence,
			document_type, file_name, extracted_values, extracted_at
		FROM financial_extracts
		WHERE company_id = $1 AND period = $2
		ORDER BY extracted_at DESC, id`
)

// ExtractStore persists raw extracts so an analysis can be rerun without re-uploading.
type ExtractStore interface {
	Add(ctx context.Context, extracts []domain.RawFinancialExtract) error
	List(ctx context.Context, companyID, period string) ([]domain.RawFinancialExtract, error)
}

type extractStore struct {
	db *sql.DB
}

func NewExtractStore(db *sql.DB) (ExtractStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &extractStore{db: db}, nil
}

func (s *extractStore) Add(ctx context.Context, extracts []domain.RawFinancialExtract) error {
	if len(extracts) == 0 {
		return nil
	}

	stmt, err := postgres.Prepare(ctx, s.db, insertExtractQuery)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ex := range extracts {
		rec, err := adapters.MapExtractDomainToStore(ex)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID,
			rec.CompanyID,
			rec.Period,
			rec.Source,
			rec.Confidence,
			rec.DocumentType,
			rec.FileName,
			rec.Values,
			rec.ExtractedAt,
		)
		if err != nil {
			return fmt.Errorf("insert extract %s: %w", rec.ID, err)
		}
	}
	return nil
}

func (s *extractStore) List(ctx context.Context, companyID, period string) ([]domain.RawFinancialExtract, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, selectExtractsQuery, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("query extracts: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close extract rows")
		}
	}(rows)

	var out []domain.RawFinancialExtract
	for rows.Next() {
		var rec store.ExtractRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CompanyID,
			&rec.Period,
			&rec.Source,
			&rec.Confidence,
			&rec.DocumentType,
			&rec.FileName,
			&rec.Values,
			&rec.ExtractedAt,
		); err != nil {
			return nil, fmt.Errorf("scan extract: %w", err)
		}
		ex, err := adapters.MapExtractStoreToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extracts: %w", err)
	}
	return out, nil
}
