package adapters

import (
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

const notAvailable = "N/A"

var categoryTitles = map[domain.MetricCategory]string{
	domain.CategoryProfitability: "収益性",
	domain.CategorySafety:        "安全性",
	domain.CategoryEfficiency:    "効率性",
	domain.CategoryGrowth:        "成長性",
	domain.CategoryCredit:        "信用力",
	domain.CategoryProductivity:  "生産性",
}

var categoryOrder = []domain.MetricCategory{
	domain.CategoryProfitability,
	domain.CategorySafety,
	domain.CategoryEfficiency,
	domain.CategoryGrowth,
	domain.CategoryCredit,
	domain.CategoryProductivity,
}

// MapAnalysisDomainToReport lays an analysis out as report sections for the terminal reporters.
func MapAnalysisDomainToReport(a *domain.Analysis, policy domain.MissingValuePolicy) *domain.Report {
	report := &domain.Report{
		Title:       fmt.Sprintf("財務分析レポート: %s", a.CompanyID),
		CompanyID:   a.CompanyID,
		Period:      a.Period,
		GeneratedAt: a.CreatedAt,
	}

	byCategory := map[domain.MetricCategory][]domain.ReportDetail{}
	for _, mi := range domain.Metrics() {
		v, ok := mi.Value(a.Ratios)
		if !ok {
			continue
		}
		var value any = notAvailable
		if p := policy.Apply(v, a.Ratios.IsDefaulted(mi.Metric)); p != nil {
			value = fmt.Sprintf("%.2f", *p)
		}
		byCategory[mi.Category] = append(byCategory[mi.Category], domain.ReportDetail{
			Name:  mi.Label,
			Value: value,
			Unit:  string(mi.Unit),
		})
	}
	for _, c := range categoryOrder {
		details := byCategory[c]
		if len(details) == 0 {
			continue
		}
		report.Sections = append(report.Sections, domain.ReportSection{
			Title:   categoryTitles[c],
			Summary: map[string]interface{}{"指標数": len(details)},
			Details: details,
		})
	}

	if len(a.Changes) > 0 {
		section := domain.ReportSection{
			Title:   "前期比",
			Summary: map[string]interface{}{"前期": a.PreviousPeriod},
		}
		for _, c := range a.Changes {
			desc := fmt.Sprintf("前期 %.0f → 当期 %.0f", c.Previous, c.Current)
			if !c.Comparable {
				desc = "前期値が0のため比較不可"
			}
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        c.Label,
				Value:       c.Formatted,
				Description: desc,
			})
		}
		report.Sections = append(report.Sections, section)
	}

	report.Sections = append(report.Sections, comparisonSection(a))
	return report
}

func comparisonSection(a *domain.Analysis) domain.ReportSection {
	c := a.Comparison
	if c == nil {
		return domain.ReportSection{
			Title:   "業界比較",
			Summary: map[string]interface{}{"状態": a.ComparisonUnavailable},
		}
	}

	section := domain.ReportSection{
		Title: "業界比較",
		Summary: map[string]interface{}{
			"総合スコア": c.OverallScore,
			"比較業種":  fmt.Sprintf("%s (%s)", c.Benchmark.Category.Name, c.Benchmark.Category.Code),
			"サンプル数": c.Benchmark.SampleSize,
		},
	}
	if c.Fallback {
		section.Summary["代替データ"] = "上位業種の平均値を使用"
	}
	for _, m := range c.Order {
		r := c.Metrics[m]
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        string(m),
			Value:       fmt.Sprintf("%.2f / %.2f", r.CompanyValue, r.IndustryAverage),
			Unit:        string(r.Ranking),
			Description: r.Comment,
		})
	}
	for i, rec := range c.Recommendations {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("改善提案 %d", i+1),
			Value:       "",
			Description: rec,
		})
	}
	return section
}
