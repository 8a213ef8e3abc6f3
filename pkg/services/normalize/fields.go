package normalize

import "github.com/de-tools/fin-atlas/pkg/models/domain"

// field binds a canonical key (and the aliases upstream sources use for it)
// to a leaf of domain.Statements.
type field struct {
	key     string
	aliases []string
	ref     func(s *domain.Statements) **float64
}

var fields = []field{
	// balance sheet: assets
	{"cash", []string{"cash_and_deposits", "cashAndDeposits"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Current.Cash }},
	{"accountsReceivable", []string{"accounts_receivable", "notes_and_accounts_receivable"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Current.AccountsReceivable }},
	{"inventory", []string{"inventories"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Current.Inventory }},
	{"otherCurrentAssets", []string{"other_current_assets"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Current.OtherCurrentAssets }},
	{"totalCurrentAssets", []string{"currentAssets", "current_assets", "total_current_assets"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Current.TotalCurrentAssets }},
	{"tangibleAssets", []string{"tangible_assets", "tangible"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Fixed.Tangible }},
	{"intangibleAssets", []string{"intangible_assets", "intangible"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Fixed.Intangible }},
	{"investmentAssets", []string{"investment_assets", "investments"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Fixed.Investments }},
	{"totalFixedAssets", []string{"fixedAssets", "fixed_assets", "total_fixed_assets", "non_current_assets"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.Fixed.TotalFixedAssets }},
	{"totalAssets", []string{"total_assets"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Assets.TotalAssets }},

	// balance sheet: liabilities
	{"accountsPayable", []string{"accounts_payable", "notes_and_accounts_payable"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.Current.AccountsPayable }},
	{"shortTermLoans", []string{"short_term_loans", "short_term_borrowings"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.Current.ShortTermLoans }},
	{"otherCurrentLiabilities", []string{"other_current_liabilities"}, func(s *domain.Statements) **float64 {
		return &s.BalanceSheet.Liabilities.Current.OtherCurrentLiabilities
	}},
	{"totalCurrentLiabilities", []string{"currentLiabilities", "current_liabilities", "total_current_liabilities"}, func(s *domain.Statements) **float64 {
		return &s.BalanceSheet.Liabilities.Current.TotalCurrentLiabilities
	}},
	{"longTermLoans", []string{"long_term_loans", "long_term_borrowings"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.Fixed.LongTermLoans }},
	{"otherFixedLiabilities", []string{"other_fixed_liabilities"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.Fixed.OtherFixedLiabilities }},
	{"totalFixedLiabilities", []string{"fixedLiabilities", "fixed_liabilities", "total_fixed_liabilities", "non_current_liabilities"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.Fixed.TotalFixedLiabilities }},
	{"totalLiabilities", []string{"total_liabilities"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Liabilities.TotalLiabilities }},

	// balance sheet: equity
	{"capital", []string{"capital_stock"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Equity.Capital }},
	{"retainedEarnings", []string{"retained_earnings"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Equity.RetainedEarnings }},
	{"otherEquity", []string{"other_equity"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Equity.OtherEquity }},
	{"totalEquity", []string{"total_equity", "net_assets", "netAssets"}, func(s *domain.Statements) **float64 { return &s.BalanceSheet.Equity.TotalEquity }},

	// income statement
	{"sales", []string{"revenue", "net_sales", "netSales"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Revenue.Sales }},
	{"otherRevenue", []string{"other_revenue"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Revenue.OtherRevenue }},
	{"costOfSales", []string{"cost_of_sales", "cogs"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Costs.CostOfSales }},
	{"sellingExpenses", []string{"selling_expenses", "selling"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Costs.Selling }},
	{"administrativeExpenses", []string{"administrative_expenses", "administrative", "sga"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Costs.Administrative }},
	{"depreciation", []string{"depreciation_expense"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Costs.Depreciation }},
	{"grossProfit", []string{"gross_profit"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Profit.GrossProfit }},
	{"operatingProfit", []string{"operating_profit", "operating_income", "operatingIncome"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Profit.OperatingProfit }},
	{"ordinaryProfit", []string{"ordinary_profit", "ordinary_income", "ordinaryIncome"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Profit.OrdinaryProfit }},
	{"netIncome", []string{"net_income", "net_profit"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.Profit.NetIncome }},
	{"nonOperatingIncome", []string{"non_operating_income"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.NonOperatingIncome }},
	{"nonOperatingExpenses", []string{"non_operating_expenses"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.NonOperatingExpenses }},
	{"interestExpense", []string{"interest_expense", "interest_expenses"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.InterestExpense }},
	{"extraordinaryGain", []string{"extraordinary_gain", "extraordinaryIncome", "extraordinary_income"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.ExtraordinaryGain }},
	{"extraordinaryLoss", []string{"extraordinary_loss"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.ExtraordinaryLoss }},
	{"taxExpense", []string{"taxExpenses", "tax_expense", "income_taxes"}, func(s *domain.Statements) **float64 { return &s.IncomeStatement.OtherIncome.TaxExpense }},

	// supplementary
	{"employeeCount", []string{"employee_count", "employees"}, func(s *domain.Statements) **float64 { return &s.Supplementary.EmployeeCount }},
	{"averageSalary", []string{"average_salary"}, func(s *domain.Statements) **float64 { return &s.Supplementary.AverageSalary }},
}

var knownKeys = indexKeys(fields)

func indexKeys(fs []field) map[string]struct{} {
	idx := make(map[string]struct{}, len(fs)*3)
	for _, f := range fs {
		idx[f.key] = struct{}{}
		for _, a := range f.aliases {
			idx[a] = struct{}{}
		}
	}
	return idx
}

// Keys returns the canonical field keys in statement order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

// IsKnownKey reports whether key is a canonical key or an accepted alias.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// lookup returns the raw value supplied for f, preferring the canonical key.
func (f field) lookup(values map[string]any) (any, string, bool) {
	if v, ok := values[f.key]; ok && v != nil {
		return v, f.key, true
	}
	for _, a := range f.aliases {
		if v, ok := values[a]; ok && v != nil {
			return v, a, true
		}
	}
	return nil, "", false
}
