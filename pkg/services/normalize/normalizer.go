package normalize

import (
	"cmp"
	"context"
	"slices"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Normalizer merges raw extracts for one (company, period) into canonical statements.
type Normalizer interface {
	Normalize(ctx context.Context, companyID, period string, extracts []domain.RawFinancialExtract) domain.Statements
}

type normalizer struct{}

func NewNormalizer() Normalizer {
	return &normalizer{}
}

// Normalize never fails. For each canonical field the value comes from the
// highest-priority source that supplies a usable number; fields no source
// supplies stay nil.
func (n *normalizer) Normalize(
	ctx context.Context,
	companyID, period string,
	extracts []domain.RawFinancialExtract,
) domain.Statements {
	logger := zerolog.Ctx(ctx)

	out := domain.Statements{
		CompanyID:  companyID,
		Period:     period,
		Provenance: map[string]domain.SourceKind{},
	}

	sources := make([]domain.RawFinancialExtract, 0, len(extracts))
	for _, ex := range extracts {
		if !matches(ex.CompanyID, companyID) || !matches(ex.Period, period) {
			logger.Warn().
				Str("extract_id", ex.ID).
				Str("company_id", ex.CompanyID).
				Str("period", ex.Period).
				Msg("skipping extract for a different company or period")
			continue
		}
		sources = append(sources, ex)
	}
	SortByPriority(sources)

	for _, f := range fields {
		for _, src := range sources {
			raw, key, ok := f.lookup(src.Values)
			if !ok {
				continue
			}
			v, ok := toNumber(raw)
			if !ok {
				logger.Debug().
					Str("field", f.key).
					Str("key", key).
					Str("source", string(src.Source)).
					Str("extract_id", src.ID).
					Interface("value", raw).
					Msg("non-numeric value ignored")
				continue
			}
			*f.ref(&out) = &v
			out.Provenance[f.key] = src.Source
			break
		}
	}

	for _, src := range sources {
		for key := range src.Values {
			if !IsKnownKey(key) {
				logger.Debug().
					Str("key", key).
					Str("extract_id", src.ID).
					Msg("unknown extract key ignored")
			}
		}
	}

	return out
}

// SortByPriority orders sources MANUAL first, then by confidence and recency.
// Remaining ties keep their input order.
func SortByPriority(sources []domain.RawFinancialExtract) {
	slices.SortStableFunc(sources, func(a, b domain.RawFinancialExtract) int {
		if c := cmp.Compare(sourceRank(a.Source), sourceRank(b.Source)); c != 0 {
			return c
		}
		if c := cmp.Compare(clampConfidence(b.Confidence), clampConfidence(a.Confidence)); c != 0 {
			return c
		}
		return b.ExtractedAt.Compare(a.ExtractedAt)
	})
}

func sourceRank(s domain.SourceKind) int {
	if s == domain.SourceManual {
		return 0
	}
	return 1
}

func clampConfidence(c float64) float64 {
	return min(max(c, 0), 1)
}

func matches(actual, expected string) bool {
	return actual == "" || expected == "" || actual == expected
}
