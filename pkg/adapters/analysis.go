package adapters

import (
	"fmt"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

// MapExtractApiToDomain fills in an id and extraction time when the caller left them out.
func MapExtractApiToDomain(e api.Extract, companyID, period string, now time.Time) (domain.RawFinancialExtract, error) {
	source := domain.SourceKind(e.Source)
	if !source.Valid() {
		return domain.RawFinancialExtract{}, fmt.Errorf("invalid extract source %q", e.Source)
	}
	out := domain.RawFinancialExtract{
		ID:           e.Id,
		CompanyID:    companyID,
		Period:       period,
		Source:       source,
		Confidence:   e.Confidence,
		ExtractedAt:  now,
		DocumentType: domain.DocumentType(e.DocumentType),
		FileName:     e.FileName,
		Values:       e.Values,
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if e.ExtractedAt != nil {
		out.ExtractedAt = *e.ExtractedAt
	}
	if out.DocumentType == "" {
		out.DocumentType = domain.DocumentOther
	}
	if out.Values == nil {
		out.Values = map[string]any{}
	}
	return out, nil
}

func MapExtractsApiToDomain(es []api.Extract, companyID, period string, now time.Time) ([]domain.RawFinancialExtract, error) {
	out := make([]domain.RawFinancialExtract, 0, len(es))
	for i, e := range es {
		ex, err := MapExtractApiToDomain(e, companyID, period, now)
		if err != nil {
			return nil, fmt.Errorf("extract %d: %w", i, err)
		}
		out = append(out, ex)
	}
	return out, nil
}

// MapRatiosDomainToApi lists ratios in catalog order. Productivity ratios are
// left out when no employee count was known.
func MapRatiosDomainToApi(r domain.FinancialRatios, policy domain.MissingValuePolicy) []api.Ratio {
	var out []api.Ratio
	for _, mi := range domain.Metrics() {
		v, ok := mi.Value(r)
		if !ok {
			continue
		}
		out = append(out, api.Ratio{
			Metric:   string(mi.Metric),
			Label:    mi.Label,
			Category: string(mi.Category),
			Unit:     string(mi.Unit),
			Value:    policy.Apply(v, r.IsDefaulted(mi.Metric)),
		})
	}
	return out
}

func MapAnalysisDomainToApi(a *domain.Analysis, policy domain.MissingValuePolicy) api.Analysis {
	out := api.Analysis{
		Id:                    a.ID,
		CompanyId:             a.CompanyID,
		Period:                a.Period,
		PreviousPeriod:        a.PreviousPeriod,
		CreatedAt:             a.CreatedAt,
		Ratios:                MapRatiosDomainToApi(a.Ratios, policy),
		Provenance:            make(map[string]string, len(a.Statements.Provenance)),
		Comparison:            MapComparisonDomainToApi(a.Comparison),
		BenchmarkInfo:         MapBenchmarkInfoDomainToApi(a.Comparison),
		ComparisonUnavailable: a.ComparisonUnavailable,
	}
	for k, v := range a.Statements.Provenance {
		out.Provenance[k] = string(v)
	}
	for _, c := range a.Changes {
		out.Changes = append(out.Changes, api.Change{
			Field:    c.Field,
			Current:  c.Current,
			Previous: c.Previous,
			Change:   c.Formatted,
		})
	}
	return out
}

func MapExtractDomainToApi(ex domain.RawFinancialExtract) api.Extract {
	at := ex.ExtractedAt
	return api.Extract{
		Id:           ex.ID,
		Source:       string(ex.Source),
		Confidence:   ex.Confidence,
		ExtractedAt:  &at,
		DocumentType: string(ex.DocumentType),
		FileName:     ex.FileName,
		Values:       ex.Values,
	}
}
