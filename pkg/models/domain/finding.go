package domain

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// Finding flags one metric that trails its industry benchmark.
type Finding struct {
	ID             string
	Title          string
	Severity       Severity // medium for below_average, high for poor
	Metric         BenchmarkMetric
	Ranking        Ranking
	Issue          string
	Recommendation string
}
