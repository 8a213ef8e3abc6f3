package ratio

import "github.com/de-tools/fin-atlas/pkg/models/domain"

// Input is everything one ratio computation needs.
type Input struct {
	Current    domain.Statements
	PreviousPL *domain.IncomeStatement
	PreviousBS *domain.BalanceSheet
	// EmployeeCount overrides Current.Supplementary.EmployeeCount when set.
	EmployeeCount *float64
}

// Engine computes the full ratio set. It is pure and safe for concurrent use.
type Engine interface {
	Compute(in Input) domain.FinancialRatios
}

type engine struct{}

func NewEngine() Engine {
	return &engine{}
}

// calc evaluates formulas under the safe-zero convention and remembers
// which metrics fell back to zero.
type calc struct {
	defaulted []domain.Metric
}

func (c *calc) ratio(m domain.Metric, num, den *float64, scale float64) float64 {
	v, ok := safeDiv(num, den, scale)
	if !ok {
		c.defaulted = append(c.defaulted, m)
		return 0
	}
	return v
}

// growth is (cur - prev) / prev * 100, defined only for prev > 0.
func (c *calc) growth(m domain.Metric, cur, prev *float64) float64 {
	return c.ratio(m, diff(cur, prev), prev, percent)
}

func (e *engine) Compute(in Input) domain.FinancialRatios {
	var (
		c  calc
		bs = in.Current.BalanceSheet
		pl = in.Current.IncomeStatement
	)

	totalAssets := bs.Assets.TotalAssets
	totalEquity := bs.Equity.TotalEquity
	totalLiabilities := bs.Liabilities.TotalLiabilities
	currentAssets := bs.Assets.Current.TotalCurrentAssets
	currentLiabilities := bs.Liabilities.Current.TotalCurrentLiabilities
	fixedAssets := bs.Assets.Fixed.TotalFixedAssets
	sales := pl.Revenue.Sales
	operatingProfit := pl.Profit.OperatingProfit
	netIncome := pl.Profit.NetIncome
	workingCapital := diff(currentAssets, currentLiabilities)

	out := domain.FinancialRatios{}

	out.Profitability = domain.Profitability{
		ROA:             c.ratio(domain.MetricROA, netIncome, totalAssets, percent),
		ROE:             c.ratio(domain.MetricROE, netIncome, totalEquity, percent),
		OperatingMargin: c.ratio(domain.MetricOperatingMargin, operatingProfit, sales, percent),
		OrdinaryMargin:  c.ratio(domain.MetricOrdinaryMargin, pl.Profit.OrdinaryProfit, sales, percent),
		GrossMargin:     c.ratio(domain.MetricGrossMargin, pl.Profit.GrossProfit, sales, percent),
		NetMargin:       c.ratio(domain.MetricNetMargin, netIncome, sales, percent),
	}

	out.Safety = domain.Safety{
		CurrentRatio: c.ratio(domain.MetricCurrentRatio, currentAssets, currentLiabilities, percent),
		QuickRatio: c.ratio(domain.MetricQuickRatio,
			sumPartial(bs.Assets.Current.Cash, bs.Assets.Current.AccountsReceivable), currentLiabilities, percent),
		EquityRatio: c.ratio(domain.MetricEquityRatio, totalEquity, totalAssets, percent),
		DebtRatio:   c.ratio(domain.MetricDebtRatio, totalLiabilities, totalAssets, percent),
		FixedRatio:  c.ratio(domain.MetricFixedRatio, fixedAssets, totalEquity, percent),
		FixedLongTermRatio: c.ratio(domain.MetricFixedLongTermRatio,
			fixedAssets, sum(totalEquity, bs.Liabilities.Fixed.TotalFixedLiabilities), percent),
		DebtToEquityRatio: c.ratio(domain.MetricDebtToEquityRatio, totalLiabilities, totalEquity, 1),
	}

	out.Efficiency = domain.Efficiency{
		AssetTurnover:       c.ratio(domain.MetricAssetTurnover, sales, totalAssets, 1),
		InventoryTurnover:   c.ratio(domain.MetricInventoryTurnover, pl.Costs.CostOfSales, bs.Assets.Current.Inventory, 1),
		ReceivablesTurnover: c.ratio(domain.MetricReceivablesTurnover, sales, bs.Assets.Current.AccountsReceivable, 1),
		PayablesTurnover: c.ratio(domain.MetricPayablesTurnover,
			pl.Costs.CostOfSales, bs.Liabilities.Current.AccountsPayable, 1),
		WorkingCapitalTurnover: c.ratio(domain.MetricWorkingCapitalTurnover, sales, workingCapital, 1),
	}

	out.Credit = domain.Credit{
		InterestCoverage: c.ratio(domain.MetricInterestCoverage, operatingProfit, pl.OtherIncome.InterestExpense, 1),
		CashRatio:        c.ratio(domain.MetricCashRatio, bs.Assets.Current.Cash, currentLiabilities, percent),
		TangibleEquityRatio: c.ratio(domain.MetricTangibleEquityRatio,
			diff(totalEquity, orZero(bs.Assets.Fixed.Intangible)), totalAssets, percent),
		WorkingCapitalRatio: c.ratio(domain.MetricWorkingCapitalRatio, workingCapital, totalAssets, percent),
	}

	var prevSales, prevNetIncome, prevAssets, prevEquity *float64
	if in.PreviousPL != nil {
		prevSales = in.PreviousPL.Revenue.Sales
		prevNetIncome = in.PreviousPL.Profit.NetIncome
	}
	if in.PreviousBS != nil {
		prevAssets = in.PreviousBS.Assets.TotalAssets
		prevEquity = in.PreviousBS.Equity.TotalEquity
	}
	out.Growth = domain.Growth{
		SalesGrowth:  c.growth(domain.MetricSalesGrowth, sales, prevSales),
		ProfitGrowth: c.growth(domain.MetricProfitGrowth, netIncome, prevNetIncome),
		AssetsGrowth: c.growth(domain.MetricAssetsGrowth, totalAssets, prevAssets),
		EquityGrowth: c.growth(domain.MetricEquityGrowth, totalEquity, prevEquity),
	}

	employees := in.EmployeeCount
	if employees == nil {
		employees = in.Current.Supplementary.EmployeeCount
	}
	if employees != nil && *employees > 0 {
		out.Productivity = &domain.Productivity{
			SalesPerEmployee:  c.ratio(domain.MetricSalesPerEmployee, sales, employees, 1),
			ProfitPerEmployee: c.ratio(domain.MetricProfitPerEmployee, operatingProfit, employees, 1),
			// gross profit + depreciation is a simplified value-added proxy
			LaborProductivity: c.ratio(domain.MetricLaborProductivity,
				sum(pl.Profit.GrossProfit, orZero(pl.Costs.Depreciation)), employees, 1),
		}
	}

	out.Defaulted = c.defaulted
	return out
}
