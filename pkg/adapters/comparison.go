package adapters

import (
	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

func MapCategoryDomainToApi(c domain.Category) api.Category {
	out := api.Category{
		Id:    c.ID,
		Code:  c.Code,
		Name:  c.Name,
		Level: string(c.Level),
	}
	if c.ParentID != nil {
		parent := *c.ParentID
		out.ParentId = &parent
	}
	return out
}

func MapCategoriesDomainToApi(cs []domain.Category) []api.Category {
	out := make([]api.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, MapCategoryDomainToApi(c))
	}
	return out
}

func formatDate(b domain.IndustryBenchmarkData) string {
	if b.LastUpdated.IsZero() {
		return ""
	}
	return b.LastUpdated.Format(dateLayout)
}

func MapBenchmarkDomainToApi(b domain.IndustryBenchmarkData) api.Benchmark {
	out := api.Benchmark{
		Category:    MapCategoryDomainToApi(b.Category),
		Values:      make(map[string]float64, len(b.Values)),
		SampleSize:  b.SampleSize,
		DataYear:    b.DataYear,
		LastUpdated: formatDate(b),
	}
	for k, v := range b.Values {
		out.Values[string(k)] = v
	}
	return out
}

func MapBenchmarkInfoDomainToApi(c *domain.IndustryComparison) *api.BenchmarkInfo {
	if c == nil {
		return nil
	}
	return &api.BenchmarkInfo{
		RequestedCategoryId: c.RequestedCategoryID,
		Category:            MapCategoryDomainToApi(c.Benchmark.Category),
		Fallback:            c.Fallback,
		SampleSize:          c.Benchmark.SampleSize,
		DataYear:            c.Benchmark.DataYear,
		LastUpdated:         formatDate(c.Benchmark),
	}
}

func MapComparisonDomainToApi(c *domain.IndustryComparison) *api.IndustryComparison {
	if c == nil {
		return nil
	}
	out := &api.IndustryComparison{
		Metrics:         make(map[string]api.ComparisonResult, len(c.Metrics)),
		Order:           make([]string, 0, len(c.Order)),
		OverallScore:    c.OverallScore,
		Recommendations: append([]string{}, c.Recommendations...),
		Findings:        make([]api.Finding, 0, len(c.Findings)),
	}
	for _, m := range c.Order {
		out.Order = append(out.Order, string(m))
	}
	for m, r := range c.Metrics {
		out.Metrics[string(m)] = api.ComparisonResult{
			CompanyValue:         r.CompanyValue,
			IndustryAverage:      r.IndustryAverage,
			Difference:           r.Difference,
			PercentageDifference: r.PercentageDifference,
			Ranking:              string(r.Ranking),
			Comment:              r.Comment,
		}
	}
	for _, f := range c.Findings {
		out.Findings = append(out.Findings, MapFindingDomainToApi(f))
	}
	return out
}

// MapFinancialDataApiToDomain keys raw request values by benchmark metric. Unknown
// names are kept; the comparator only reads metrics the benchmark row carries.
func MapFinancialDataApiToDomain(data map[string]float64) map[domain.BenchmarkMetric]float64 {
	out := make(map[domain.BenchmarkMetric]float64, len(data))
	for k, v := range data {
		out[domain.BenchmarkMetric(k)] = v
	}
	return out
}
