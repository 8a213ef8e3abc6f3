package domain

import "time"

type DocumentType string

const (
	DocumentBalanceSheet    DocumentType = "bs"
	DocumentIncomeStatement DocumentType = "pl"
	DocumentTrialBalance    DocumentType = "trial_balance"
	DocumentPayroll         DocumentType = "payroll"
	DocumentSettlement      DocumentType = "settlement"
	DocumentOther           DocumentType = "other"
)

// RawFinancialExtract is a bag of labeled values produced by one upstream source.
// Values are kept untyped; the normalizer decides what is numeric.
type RawFinancialExtract struct {
	ID           string
	CompanyID    string
	Period       string
	Source       SourceKind
	Confidence   float64 // [0,1]
	ExtractedAt  time.Time
	DocumentType DocumentType
	FileName     string
	Values       map[string]any
}
