package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/comparison"
	"github.com/de-tools/fin-atlas/pkg/services/normalize"
	"github.com/de-tools/fin-atlas/pkg/services/ratio"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoExtracts = errors.New("no financial data for the requested period")

// ExtractStore persists raw extracts between uploads and analysis runs.
type ExtractStore interface {
	Add(ctx context.Context, extracts []domain.RawFinancialExtract) error
	List(ctx context.Context, companyID, period string) ([]domain.RawFinancialExtract, error)
}

// Request describes one analysis run. Extracts left empty are loaded from the store.
type Request struct {
	CompanyID        string
	Period           string
	PreviousPeriod   string
	CategoryID       *int
	EmployeeCount    *float64
	Extracts         []domain.RawFinancialExtract
	PreviousExtracts []domain.RawFinancialExtract
	// Persist saves inline extracts to the store before analysis.
	Persist bool
}

// Service runs normalize, compute and compare for one company period.
type Service interface {
	Analyze(ctx context.Context, req Request) (*domain.Analysis, error)
}

type service struct {
	normalizer normalize.Normalizer
	engine     ratio.Engine
	comparator comparison.Comparator
	store      ExtractStore
	now        func() time.Time
}

// NewService wires the pipeline. comparator and store are optional.
func NewService(
	normalizer normalize.Normalizer,
	engine ratio.Engine,
	comparator comparison.Comparator,
	store ExtractStore,
) (Service, error) {
	if normalizer == nil {
		return nil, fmt.Errorf("normalizer is nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("ratio engine is nil")
	}
	return &service{
		normalizer: normalizer,
		engine:     engine,
		comparator: comparator,
		store:      store,
		now:        time.Now,
	}, nil
}

func (s *service) Analyze(ctx context.Context, req Request) (*domain.Analysis, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("company_id", req.CompanyID).
		Str("period", req.Period).
		Logger()

	if req.Persist && s.store != nil {
		inline := append(append([]domain.RawFinancialExtract{}, req.Extracts...), req.PreviousExtracts...)
		if len(inline) > 0 {
			if err := s.store.Add(ctx, inline); err != nil {
				return nil, fmt.Errorf("failed to store extracts: %w", err)
			}
		}
	}

	current, err := s.extracts(ctx, req.CompanyID, req.Period, req.Extracts)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, ErrNoExtracts
	}

	out := &domain.Analysis{
		ID:             uuid.NewString(),
		CompanyID:      req.CompanyID,
		Period:         req.Period,
		PreviousPeriod: req.PreviousPeriod,
		CreatedAt:      s.now().UTC(),
		Statements:     s.normalizer.Normalize(ctx, req.CompanyID, req.Period, current),
	}

	in := ratio.Input{Current: out.Statements, EmployeeCount: req.EmployeeCount}
	if req.PreviousPeriod != "" || len(req.PreviousExtracts) > 0 {
		previous, err := s.extracts(ctx, req.CompanyID, req.PreviousPeriod, req.PreviousExtracts)
		if err != nil {
			return nil, err
		}
		if len(previous) > 0 {
			prev := s.normalizer.Normalize(ctx, req.CompanyID, req.PreviousPeriod, previous)
			out.Previous = &prev
			in.PreviousPL = &prev.IncomeStatement
			in.PreviousBS = &prev.BalanceSheet
			out.Changes = ratio.YearOverYear(out.Statements, prev)
		} else {
			logger.Debug().Str("previous_period", req.PreviousPeriod).Msg("no previous period data, growth ratios default to zero")
		}
	}

	out.Ratios = s.engine.Compute(in)

	switch {
	case req.CategoryID == nil:
		out.ComparisonUnavailable = "no industry category given"
	case s.comparator == nil:
		out.ComparisonUnavailable = comparison.ErrNoBenchmark.Error()
	default:
		cmp, err := s.comparator.Compare(ctx, comparison.RatiosToBenchmarkMetrics(out.Ratios), *req.CategoryID)
		if errors.Is(err, comparison.ErrNoBenchmark) {
			out.ComparisonUnavailable = err.Error()
		} else if err != nil {
			return nil, fmt.Errorf("failed to compare against industry: %w", err)
		} else {
			out.Comparison = cmp
		}
	}

	logger.Info().
		Str("analysis_id", out.ID).
		Int("extracts", len(current)).
		Int("defaulted_ratios", len(out.Ratios.Defaulted)).
		Bool("compared", out.Comparison != nil).
		Msg("analysis complete")

	return out, nil
}

func (s *service) extracts(
	ctx context.Context,
	companyID, period string,
	inline []domain.RawFinancialExtract,
) ([]domain.RawFinancialExtract, error) {
	if len(inline) > 0 || s.store == nil {
		return inline, nil
	}
	stored, err := s.store.List(ctx, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load extracts for %s/%s: %w", companyID, period, err)
	}
	return stored, nil
}
