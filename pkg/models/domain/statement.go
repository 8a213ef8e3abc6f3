package domain

// SourceKind identifies where a raw extract came from.
type SourceKind string

const (
	SourceManual SourceKind = "MANUAL"
	SourceOCR    SourceKind = "OCR"
	SourceAPI    SourceKind = "API"
)

func (s SourceKind) Valid() bool {
	switch s {
	case SourceManual, SourceOCR, SourceAPI:
		return true
	default:
		return false
	}
}

// Every leaf below is nil when no source supplied it.

type CurrentAssets struct {
	Cash               *float64
	AccountsReceivable *float64
	Inventory          *float64
	OtherCurrentAssets *float64
	TotalCurrentAssets *float64
}

type FixedAssets struct {
	Tangible         *float64
	Intangible       *float64
	Investments      *float64
	TotalFixedAssets *float64
}

type Assets struct {
	Current     CurrentAssets
	Fixed       FixedAssets
	TotalAssets *float64
}

type CurrentLiabilities struct {
	AccountsPayable         *float64
	ShortTermLoans          *float64
	OtherCurrentLiabilities *float64
	TotalCurrentLiabilities *float64
}

type FixedLiabilities struct {
	LongTermLoans         *float64
	OtherFixedLiabilities *float64
	TotalFixedLiabilities *float64
}

type Liabilities struct {
	Current          CurrentLiabilities
	Fixed            FixedLiabilities
	TotalLiabilities *float64
}

type Equity struct {
	Capital          *float64
	RetainedEarnings *float64
	OtherEquity      *float64
	TotalEquity      *float64
}

// BalanceSheet is the canonical balance sheet of one company for one period.
// totalAssets ≈ totalLiabilities + totalEquity is assumed by the ratio formulas but never enforced.
type BalanceSheet struct {
	Assets      Assets
	Liabilities Liabilities
	Equity      Equity
}

type Revenue struct {
	Sales        *float64
	OtherRevenue *float64
}

type Costs struct {
	CostOfSales    *float64
	Selling        *float64
	Administrative *float64
	Depreciation   *float64
}

type Profit struct {
	GrossProfit     *float64
	OperatingProfit *float64
	OrdinaryProfit  *float64 // operating profit adjusted for recurring non-operating items
	NetIncome       *float64
}

type OtherIncome struct {
	NonOperatingIncome   *float64
	NonOperatingExpenses *float64
	InterestExpense      *float64
	ExtraordinaryGain    *float64
	ExtraordinaryLoss    *float64
	TaxExpense           *float64
}

// IncomeStatement is the canonical income statement of one company for one period.
type IncomeStatement struct {
	Revenue     Revenue
	Costs       Costs
	Profit      Profit
	OtherIncome OtherIncome
}

type Supplementary struct {
	EmployeeCount *float64
	AverageSalary *float64
}

// Statements is the normalized statement pair for a (company, period).
type Statements struct {
	CompanyID       string
	Period          string
	BalanceSheet    BalanceSheet
	IncomeStatement IncomeStatement
	Supplementary   Supplementary
	// Provenance maps a canonical field key to the source kind that supplied it.
	Provenance map[string]SourceKind
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
