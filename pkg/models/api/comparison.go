package api

type ComparisonResult struct {
	CompanyValue         float64 `json:"companyValue"`
	IndustryAverage      float64 `json:"industryAverage"`
	Difference           float64 `json:"difference"`
	PercentageDifference float64 `json:"percentageDifference"`
	Ranking              string  `json:"ranking"`
	Comment              string  `json:"comment"`
}

type IndustryComparison struct {
	Metrics         map[string]ComparisonResult `json:"metrics"`
	Order           []string                    `json:"order"`
	OverallScore    int                         `json:"overallScore"`
	Recommendations []string                    `json:"recommendations"`
	Findings        []Finding                   `json:"findings"`
}

// IndustryComparisonRequest carries company values keyed by benchmark metric name.
type IndustryComparisonRequest struct {
	FinancialData map[string]float64 `json:"financialData"`
	CategoryId    *int               `json:"categoryId"`
}

type IndustryComparisonResponse struct {
	Success       bool                `json:"success"`
	Comparison    *IndustryComparison `json:"comparison"`
	BenchmarkInfo *BenchmarkInfo      `json:"benchmarkInfo"`
}
