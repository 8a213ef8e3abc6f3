package api

import "time"

type Extract struct {
	Id           string         `json:"id,omitempty"`
	Source       string         `json:"source"`
	Confidence   float64        `json:"confidence"`
	ExtractedAt  *time.Time     `json:"extractedAt,omitempty"`
	DocumentType string         `json:"documentType,omitempty"`
	FileName     string         `json:"fileName,omitempty"`
	Values       map[string]any `json:"values"`
}

type AnalysisRequest struct {
	CompanyId        string    `json:"companyId"`
	Period           string    `json:"period"`
	PreviousPeriod   string    `json:"previousPeriod,omitempty"`
	CategoryId       *int      `json:"categoryId,omitempty"`
	EmployeeCount    *float64  `json:"employeeCount,omitempty"`
	Extracts         []Extract `json:"extracts,omitempty"`
	PreviousExtracts []Extract `json:"previousExtracts,omitempty"`
	Persist          bool      `json:"persist,omitempty"`
}

// Ratio is one computed metric. Value is null when the metric could not be
// computed and the response renders missing values as null.
type Ratio struct {
	Metric   string   `json:"metric"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Unit     string   `json:"unit"`
	Value    *float64 `json:"value"`
}

// Change is the year-over-year movement of one statement line.
type Change struct {
	Field    string  `json:"field"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   string  `json:"change"`
}

type Analysis struct {
	Id                    string              `json:"id"`
	CompanyId             string              `json:"companyId"`
	Period                string              `json:"period"`
	PreviousPeriod        string              `json:"previousPeriod,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	Ratios                []Ratio             `json:"ratios"`
	Changes               []Change            `json:"changes,omitempty"`
	Provenance            map[string]string   `json:"provenance"`
	Comparison            *IndustryComparison `json:"comparison,omitempty"`
	BenchmarkInfo         *BenchmarkInfo      `json:"benchmarkInfo,omitempty"`
	ComparisonUnavailable string              `json:"comparisonUnavailable,omitempty"`
}
