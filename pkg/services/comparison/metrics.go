package comparison

import "github.com/de-tools/fin-atlas/pkg/models/domain"

// yenPerManYen converts per-employee JPY into the benchmark's 10,000 JPY unit.
const yenPerManYen = 10000

var benchmarkNames = map[domain.Metric]domain.BenchmarkMetric{
	domain.MetricROA:                 domain.BenchmarkReturnOnAssets,
	domain.MetricROE:                 domain.BenchmarkReturnOnEquity,
	domain.MetricOperatingMargin:     domain.BenchmarkOperatingMargin,
	domain.MetricOrdinaryMargin:      domain.BenchmarkOrdinaryProfitMargin,
	domain.MetricGrossMargin:         domain.BenchmarkGrossProfitMargin,
	domain.MetricNetMargin:           domain.BenchmarkNetProfitMargin,
	domain.MetricCurrentRatio:        domain.BenchmarkCurrentRatio,
	domain.MetricQuickRatio:          domain.BenchmarkQuickRatio,
	domain.MetricEquityRatio:         domain.BenchmarkEquityRatio,
	domain.MetricDebtRatio:           domain.BenchmarkDebtToAssetRatio,
	domain.MetricFixedRatio:          domain.BenchmarkFixedRatio,
	domain.MetricFixedLongTermRatio:  domain.BenchmarkFixedLongTermRatio,
	domain.MetricDebtToEquityRatio:   domain.BenchmarkDebtToEquityRatio,
	domain.MetricAssetTurnover:       domain.BenchmarkTotalAssetTurnover,
	domain.MetricInventoryTurnover:   domain.BenchmarkInventoryTurnover,
	domain.MetricReceivablesTurnover: domain.BenchmarkReceivablesTurnover,
	domain.MetricPayablesTurnover:    domain.BenchmarkPayablesTurnover,
	domain.MetricInterestCoverage:    domain.BenchmarkInterestCoverageRatio,
	domain.MetricSalesPerEmployee:    domain.BenchmarkSalesPerEmployee,
	domain.MetricProfitPerEmployee:   domain.BenchmarkProfitPerEmployee,
	domain.MetricLaborProductivity:   domain.BenchmarkLaborProductivity,
}

// BenchmarkName returns the benchmark metric an engine ratio is compared against.
func BenchmarkName(m domain.Metric) (domain.BenchmarkMetric, bool) {
	b, ok := benchmarkNames[m]
	return b, ok
}

// RatiosToBenchmarkMetrics converts engine output into comparator input.
// Ratios that were defaulted because an operand was missing are left out.
func RatiosToBenchmarkMetrics(r domain.FinancialRatios) map[domain.BenchmarkMetric]float64 {
	out := make(map[domain.BenchmarkMetric]float64, len(benchmarkNames))
	for _, info := range domain.Metrics() {
		name, ok := benchmarkNames[info.Metric]
		if !ok || r.IsDefaulted(info.Metric) {
			continue
		}
		v, ok := info.Value(r)
		if !ok {
			continue
		}
		if info.Unit == domain.UnitYen {
			v /= yenPerManYen
		}
		out[name] = v
	}
	return out
}
