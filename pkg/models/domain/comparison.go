package domain

type Ranking string

const (
	RankingExcellent    Ranking = "excellent"
	RankingGood         Ranking = "good"
	RankingAverage      Ranking = "average"
	RankingBelowAverage Ranking = "below_average"
	RankingPoor         Ranking = "poor"
)

// Weak reports whether the ranking calls for a recommendation.
func (r Ranking) Weak() bool {
	return r == RankingPoor || r == RankingBelowAverage
}

type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower_is_better"
	}
	return "higher_is_better"
}

// ComparisonResult is the verdict for one metric in one comparison run.
type ComparisonResult struct {
	CompanyValue         float64
	IndustryAverage      float64
	Difference           float64
	PercentageDifference float64
	Ranking              Ranking
	Comment              string
}

// IndustryComparison is the outcome of comparing one company against one benchmark row.
type IndustryComparison struct {
	RequestedCategoryID int
	// Fallback is set when the benchmark came from an ancestor or the default category.
	Fallback  bool
	Benchmark IndustryBenchmarkData
	Metrics   map[BenchmarkMetric]ComparisonResult
	// Order lists the evaluated metrics in iteration order.
	Order           []BenchmarkMetric
	OverallScore    int
	Recommendations []string
	Findings        []Finding
}
