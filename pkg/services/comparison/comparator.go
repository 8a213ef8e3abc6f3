package comparison

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/rs/zerolog"
)

var ErrNoBenchmark = errors.New("no benchmark data available")

// Comparator ranks a company's ratios against its industry benchmark.
type Comparator interface {
	Compare(
		ctx context.Context,
		companyRatios map[domain.BenchmarkMetric]float64,
		categoryID int,
	) (*domain.IndustryComparison, error)
}

type comparator struct {
	repo     benchmark.Repository
	settings Settings
}

func NewComparator(repo benchmark.Repository, settings Settings) (Comparator, error) {
	if repo == nil {
		return nil, fmt.Errorf("benchmark repository is nil")
	}
	return &comparator{repo: repo, settings: settings}, nil
}

func (c *comparator) Compare(
	ctx context.Context,
	companyRatios map[domain.BenchmarkMetric]float64,
	categoryID int,
) (*domain.IndustryComparison, error) {
	logger := zerolog.Ctx(ctx)

	res := c.repo.Resolve(categoryID)
	if res.FromDefault && !c.settings.DefaultFallback {
		return nil, fmt.Errorf("%w for category %d", ErrNoBenchmark, categoryID)
	}
	if res.Fallback {
		logger.Debug().
			Int("requested_category", categoryID).
			Str("resolved_code", res.Benchmark.Category.Code).
			Msg("using fallback benchmark")
	}

	out := &domain.IndustryComparison{
		RequestedCategoryID: categoryID,
		Fallback:            res.Fallback,
		Benchmark:           res.Benchmark,
		Metrics:             make(map[domain.BenchmarkMetric]domain.ComparisonResult),
	}

	total := 0
	for _, m := range c.order(res.Benchmark) {
		company, ok := companyRatios[m]
		if !ok || math.IsNaN(company) || math.IsInf(company, 0) {
			continue
		}
		industry, ok := res.Benchmark.Values[m]
		if !ok {
			continue
		}
		if industry == 0 {
			logger.Debug().Str("metric", string(m)).Msg("skipping metric with zero industry average")
			continue
		}

		diff := company - industry
		pct := diff / industry * 100
		ranking := c.settings.classify(m, company, industry, pct)

		out.Metrics[m] = domain.ComparisonResult{
			CompanyValue:         company,
			IndustryAverage:      industry,
			Difference:           diff,
			PercentageDifference: pct,
			Ranking:              ranking,
			Comment:              c.settings.comment(ranking, m),
		}
		out.Order = append(out.Order, m)
		total += c.settings.Scores[ranking]

		if !ranking.Weak() {
			continue
		}
		msg := c.settings.recommendation(m)
		if len(out.Recommendations) < c.settings.MaxRecommendations {
			out.Recommendations = append(out.Recommendations, msg)
		}
		out.Findings = append(out.Findings, c.finding(m, ranking, msg))
	}

	if n := len(out.Order); n > 0 {
		out.OverallScore = int(math.Round(float64(total) / float64(n) * c.settings.ScoreScale))
	}

	logger.Debug().
		Int("category", categoryID).
		Int("evaluated", len(out.Order)).
		Int("score", out.OverallScore).
		Msg("industry comparison complete")

	return out, nil
}

// order yields the configured metric order followed by any remaining
// benchmark metrics sorted by name.
func (c *comparator) order(b domain.IndustryBenchmarkData) []domain.BenchmarkMetric {
	seen := make(map[domain.BenchmarkMetric]bool, len(c.settings.Order))
	out := make([]domain.BenchmarkMetric, 0, len(b.Values))
	for _, m := range c.settings.Order {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	for _, m := range slices.Sorted(maps.Keys(b.Values)) {
		if !seen[m] {
			out = append(out, m)
		}
	}
	return out
}

func (c *comparator) finding(m domain.BenchmarkMetric, r domain.Ranking, recommendation string) domain.Finding {
	severity := domain.SeverityMedium
	if r == domain.RankingPoor {
		severity = domain.SeverityHigh
	}
	return domain.Finding{
		ID:             fmt.Sprintf("%s_%s", m, r),
		Title:          c.settings.label(m) + "が業界平均を下回っています",
		Severity:       severity,
		Metric:         m,
		Ranking:        r,
		Issue:          c.settings.comment(r, m),
		Recommendation: recommendation,
	}
}
