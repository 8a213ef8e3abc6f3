package store

import "time"

// ExtractRecord is one row of the financial_extracts table. Values holds the raw
// labeled values as a JSON object.
type ExtractRecord struct {
	ID           string
	CompanyID    string
	Period       string
	Source       string
	Confidence   float64
	DocumentType string
	FileName     string
	Values       []byte
	ExtractedAt  time.Time
}
