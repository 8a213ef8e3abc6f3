package domain

import "time"

// Analysis is the result of one normalize, compute, compare run.
type Analysis struct {
	ID             string
	CompanyID      string
	Period         string
	PreviousPeriod string
	CreatedAt      time.Time
	Statements     Statements
	Previous       *Statements
	Ratios         FinancialRatios
	// Changes lists year-over-year movements of headline lines; empty without a previous period.
	Changes    []LineChange
	Comparison *IndustryComparison
	// ComparisonUnavailable explains why Comparison is nil.
	ComparisonUnavailable string
}

// LineChange is the year-over-year movement of one statement line.
type LineChange struct {
	Field    string
	Label    string
	Current  float64
	Previous float64
	// Formatted is the signed percentage, e.g. "+12.5%".
	Formatted string
	// Comparable is false when the previous value was 0.
	Comparable bool
}

// Report represents a complete analysis report
type Report struct {
	Title       string
	CompanyID   string
	Period      string
	GeneratedAt time.Time
	Sections    []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
