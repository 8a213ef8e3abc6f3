package comparison

import (
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

// Banding selects which value a metric is classified on.
type Banding int

const (
	// RatioBanding classifies companyValue / industryAverage.
	RatioBanding Banding = iota
	// PercentBanding classifies the percentage difference from the industry average.
	PercentBanding
)

// Thresholds are the lower bounds of excellent, good, average and below_average
// for higher-is-better metrics, and the upper bounds for lower-is-better ones.
type Thresholds struct {
	Excellent    float64
	Good         float64
	Average      float64
	BelowAverage float64
}

// Bands holds one threshold set per direction.
type Bands struct {
	HigherIsBetter Thresholds
	LowerIsBetter  Thresholds
}

// Classify maps a banded value onto a ranking.
func (b Bands) Classify(v float64, dir domain.Direction) domain.Ranking {
	if dir == domain.LowerIsBetter {
		t := b.LowerIsBetter
		switch {
		case v <= t.Excellent:
			return domain.RankingExcellent
		case v <= t.Good:
			return domain.RankingGood
		case v <= t.Average:
			return domain.RankingAverage
		case v <= t.BelowAverage:
			return domain.RankingBelowAverage
		default:
			return domain.RankingPoor
		}
	}

	t := b.HigherIsBetter
	switch {
	case v >= t.Excellent:
		return domain.RankingExcellent
	case v >= t.Good:
		return domain.RankingGood
	case v >= t.Average:
		return domain.RankingAverage
	case v >= t.BelowAverage:
		return domain.RankingBelowAverage
	default:
		return domain.RankingPoor
	}
}

// Settings configures the comparator.
type Settings struct {
	// Directions lists metrics that are not higher-is-better.
	Directions map[domain.BenchmarkMetric]domain.Direction

	// RatioBands applies to companyValue / industryAverage.
	RatioBands Bands

	// PercentBands applies to the percentage difference, in percent points.
	PercentBands Bands

	// Banding overrides the banding rule per metric. Unlisted metrics use RatioBanding.
	Banding map[domain.BenchmarkMetric]Banding

	// Scores maps a ranking onto its score before scaling.
	Scores map[domain.Ranking]int

	// ScoreScale turns the average score into a 0-100 overall score.
	ScoreScale float64

	// MaxRecommendations caps the recommendation list.
	MaxRecommendations int

	// Order is the metric iteration order. Benchmark metrics missing from it
	// are evaluated afterwards in name order.
	Order []domain.BenchmarkMetric

	// Labels are the display names used in comments and recommendations.
	Labels map[domain.BenchmarkMetric]string

	// Recommendations is the per-metric improvement message table.
	Recommendations map[domain.BenchmarkMetric]string

	// Comments holds one format string per ranking; %s is the metric label.
	Comments map[domain.Ranking]string

	// DefaultFallback allows the default category's row to stand in when
	// neither the requested category nor any ancestor has data.
	DefaultFallback bool
}

func DefaultSettings() Settings {
	return Settings{
		Directions: map[domain.BenchmarkMetric]domain.Direction{
			domain.BenchmarkDebtToEquityRatio:  domain.LowerIsBetter,
			domain.BenchmarkDebtToAssetRatio:   domain.LowerIsBetter,
			domain.BenchmarkFixedRatio:         domain.LowerIsBetter,
			domain.BenchmarkFixedLongTermRatio: domain.LowerIsBetter,
		},
		RatioBands: Bands{
			HigherIsBetter: Thresholds{Excellent: 1.2, Good: 1.1, Average: 0.9, BelowAverage: 0.8},
			LowerIsBetter:  Thresholds{Excellent: 0.8, Good: 0.9, Average: 1.1, BelowAverage: 1.2},
		},
		PercentBands: Bands{
			HigherIsBetter: Thresholds{Excellent: 20, Good: 10, Average: -5, BelowAverage: -15},
			LowerIsBetter:  Thresholds{Excellent: -20, Good: -10, Average: 5, BelowAverage: 15},
		},
		Banding: map[domain.BenchmarkMetric]Banding{},
		Scores: map[domain.Ranking]int{
			domain.RankingExcellent:    5,
			domain.RankingGood:         4,
			domain.RankingAverage:      3,
			domain.RankingBelowAverage: 2,
			domain.RankingPoor:         1,
		},
		ScoreScale:         20,
		MaxRecommendations: 5,
		Order: []domain.BenchmarkMetric{
			domain.BenchmarkTotalAssetTurnover,
			domain.BenchmarkCurrentRatio,
			domain.BenchmarkEquityRatio,
			domain.BenchmarkReturnOnAssets,
			domain.BenchmarkReturnOnEquity,
			domain.BenchmarkNetProfitMargin,
			domain.BenchmarkGrossProfitMargin,
			domain.BenchmarkOperatingMargin,
			domain.BenchmarkQuickRatio,
			domain.BenchmarkInterestCoverageRatio,
			domain.BenchmarkInventoryTurnover,
			domain.BenchmarkReceivablesTurnover,
			domain.BenchmarkPayablesTurnover,
			domain.BenchmarkLaborProductivity,
			domain.BenchmarkSalesPerEmployee,
			domain.BenchmarkProfitPerEmployee,
			domain.BenchmarkDebtToEquityRatio,
			domain.BenchmarkDebtToAssetRatio,
		},
		Labels: map[domain.BenchmarkMetric]string{
			domain.BenchmarkTotalAssetTurnover:    "総資産回転率",
			domain.BenchmarkCurrentRatio:          "流動比率",
			domain.BenchmarkDebtToEquityRatio:     "負債資本倍率",
			domain.BenchmarkEquityRatio:           "自己資本比率",
			domain.BenchmarkReturnOnAssets:        "総資産利益率",
			domain.BenchmarkReturnOnEquity:        "自己資本利益率",
			domain.BenchmarkNetProfitMargin:       "純利益率",
			domain.BenchmarkGrossProfitMargin:     "売上総利益率",
			domain.BenchmarkOperatingMargin:       "営業利益率",
			domain.BenchmarkOrdinaryProfitMargin:  "経常利益率",
			domain.BenchmarkQuickRatio:            "当座比率",
			domain.BenchmarkInterestCoverageRatio: "インタレスト・カバレッジ・レシオ",
			domain.BenchmarkDebtToAssetRatio:      "負債比率",
			domain.BenchmarkFixedRatio:            "固定比率",
			domain.BenchmarkFixedLongTermRatio:    "固定長期適合率",
			domain.BenchmarkInventoryTurnover:     "棚卸資産回転率",
			domain.BenchmarkReceivablesTurnover:   "売上債権回転率",
			domain.BenchmarkPayablesTurnover:      "仕入債務回転率",
			domain.BenchmarkLaborProductivity:     "労働生産性",
			domain.BenchmarkSalesPerEmployee:      "一人当たり売上高",
			domain.BenchmarkProfitPerEmployee:     "一人当たり営業利益",
		},
		Recommendations: map[domain.BenchmarkMetric]string{
			domain.BenchmarkCurrentRatio:      "流動資産の増加または流動負債の減少により、短期支払能力の改善を図る",
			domain.BenchmarkDebtToEquityRatio: "自己資本の増強や有利子負債の削減により、財務安全性の向上を図る",
			domain.BenchmarkReturnOnAssets:    "資産効率の改善や収益性の向上により、ROAの改善を図る",
			domain.BenchmarkInventoryTurnover: "在庫管理の効率化により、棚卸資産回転率の改善を図る",
			domain.BenchmarkLaborProductivity: "業務効率化や従業員スキル向上により、労働生産性の改善を図る",
		},
		Comments: map[domain.Ranking]string{
			domain.RankingExcellent:    "%sは業界平均を大幅に上回っており、優秀な水準です。",
			domain.RankingGood:         "%sは業界平均を上回っており、良好な水準です。",
			domain.RankingAverage:      "%sは業界平均程度であり、標準的な水準です。",
			domain.RankingBelowAverage: "%sは業界平均を下回っており、改善の余地があります。",
			domain.RankingPoor:         "%sは業界平均を大幅に下回っており、重点的な改善が必要です。",
		},
		DefaultFallback: true,
	}
}

func (s Settings) direction(m domain.BenchmarkMetric) domain.Direction {
	if d, ok := s.Directions[m]; ok {
		return d
	}
	return domain.HigherIsBetter
}

func (s Settings) label(m domain.BenchmarkMetric) string {
	if l, ok := s.Labels[m]; ok {
		return l
	}
	return string(m)
}

func (s Settings) recommendation(m domain.BenchmarkMetric) string {
	if msg, ok := s.Recommendations[m]; ok {
		return msg
	}
	return s.label(m) + "の改善に注力する"
}

func (s Settings) comment(r domain.Ranking, m domain.BenchmarkMetric) string {
	tmpl, ok := s.Comments[r]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, s.label(m))
}

func (s Settings) classify(m domain.BenchmarkMetric, company, industry, percentDiff float64) domain.Ranking {
	if s.Banding[m] == PercentBanding {
		return s.PercentBands.Classify(percentDiff, s.direction(m))
	}
	return s.RatioBands.Classify(company/industry, s.direction(m))
}
