package domain

import "slices"

// Metric names a ratio produced by the ratio engine.
type Metric string

const (
	MetricROA             Metric = "roa"
	MetricROE             Metric = "roe"
	MetricOperatingMargin Metric = "operatingMargin"
	MetricOrdinaryMargin  Metric = "ordinaryMargin"
	MetricGrossMargin     Metric = "grossMargin"
	MetricNetMargin       Metric = "netMargin"

	MetricCurrentRatio       Metric = "currentRatio"
	MetricQuickRatio         Metric = "quickRatio"
	MetricEquityRatio        Metric = "equityRatio"
	MetricDebtRatio          Metric = "debtRatio"
	MetricFixedRatio         Metric = "fixedRatio"
	MetricFixedLongTermRatio Metric = "fixedLongTermRatio"
	MetricDebtToEquityRatio  Metric = "debtToEquityRatio"

	MetricAssetTurnover          Metric = "assetTurnover"
	MetricInventoryTurnover      Metric = "inventoryTurnover"
	MetricReceivablesTurnover    Metric = "receivablesTurnover"
	MetricPayablesTurnover       Metric = "payablesTurnover"
	MetricWorkingCapitalTurnover Metric = "workingCapitalTurnover"

	MetricSalesGrowth  Metric = "salesGrowth"
	MetricProfitGrowth Metric = "profitGrowth"
	MetricAssetsGrowth Metric = "assetsGrowth"
	MetricEquityGrowth Metric = "equityGrowth"

	MetricInterestCoverage    Metric = "interestCoverage"
	MetricCashRatio           Metric = "cashRatio"
	MetricTangibleEquityRatio Metric = "tangibleEquityRatio"
	MetricWorkingCapitalRatio Metric = "workingCapitalRatio"

	MetricSalesPerEmployee  Metric = "salesPerEmployee"
	MetricProfitPerEmployee Metric = "profitPerEmployee"
	MetricLaborProductivity Metric = "laborProductivity"
)

type MetricCategory string

const (
	CategoryProfitability MetricCategory = "profitability"
	CategorySafety        MetricCategory = "safety"
	CategoryEfficiency    MetricCategory = "efficiency"
	CategoryGrowth        MetricCategory = "growth"
	CategoryCredit        MetricCategory = "credit"
	CategoryProductivity  MetricCategory = "productivity"
)

type Unit string

const (
	UnitPercent Unit = "%"
	UnitTimes   Unit = "times"
	UnitYen     Unit = "JPY"
)

type Profitability struct {
	ROA             float64
	ROE             float64
	OperatingMargin float64
	OrdinaryMargin  float64
	GrossMargin     float64
	NetMargin       float64
}

type Safety struct {
	CurrentRatio       float64
	QuickRatio         float64
	EquityRatio        float64
	DebtRatio          float64
	FixedRatio         float64
	FixedLongTermRatio float64
	DebtToEquityRatio  float64
}

type Efficiency struct {
	AssetTurnover          float64
	InventoryTurnover      float64
	ReceivablesTurnover    float64
	PayablesTurnover       float64
	WorkingCapitalTurnover float64
}

type Growth struct {
	SalesGrowth  float64
	ProfitGrowth float64
	AssetsGrowth float64
	EquityGrowth float64
}

type Credit struct {
	InterestCoverage    float64
	CashRatio           float64
	TangibleEquityRatio float64
	WorkingCapitalRatio float64
}

type Productivity struct {
	SalesPerEmployee  float64
	ProfitPerEmployee float64
	LaborProductivity float64
}

// FinancialRatios holds every computed ratio. Values are never NaN or Inf.
// A ratio whose precondition failed is 0 and listed in Defaulted.
type FinancialRatios struct {
	Profitability Profitability
	Safety        Safety
	Efficiency    Efficiency
	Growth        Growth
	Credit        Credit
	// Productivity is nil unless an employee count > 0 was available.
	Productivity *Productivity
	Defaulted    []Metric
}

func (r FinancialRatios) IsDefaulted(m Metric) bool {
	return slices.Contains(r.Defaulted, m)
}

// MetricInfo describes a ratio for presentation.
type MetricInfo struct {
	Metric   Metric
	Label    string
	Category MetricCategory
	Unit     Unit
	value    func(r FinancialRatios) (float64, bool)
}

// Value reads the metric from r. ok is false only for productivity ratios when
// productivity was not computed.
func (mi MetricInfo) Value(r FinancialRatios) (float64, bool) {
	return mi.value(r)
}

func always(f func(r FinancialRatios) float64) func(FinancialRatios) (float64, bool) {
	return func(r FinancialRatios) (float64, bool) { return f(r), true }
}

func productivity(f func(p *Productivity) float64) func(FinancialRatios) (float64, bool) {
	return func(r FinancialRatios) (float64, bool) {
		if r.Productivity == nil {
			return 0, false
		}
		return f(r.Productivity), true
	}
}

var metricCatalog = []MetricInfo{
	{MetricROA, "ROA（総資産利益率）", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.ROA })},
	{MetricROE, "ROE（自己資本利益率）", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.ROE })},
	{MetricOperatingMargin, "営業利益率", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.OperatingMargin })},
	{MetricOrdinaryMargin, "経常利益率", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.OrdinaryMargin })},
	{MetricGrossMargin, "売上総利益率", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.GrossMargin })},
	{MetricNetMargin, "純利益率", CategoryProfitability, UnitPercent, always(func(r FinancialRatios) float64 { return r.Profitability.NetMargin })},

	{MetricCurrentRatio, "流動比率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.CurrentRatio })},
	{MetricQuickRatio, "当座比率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.QuickRatio })},
	{MetricEquityRatio, "自己資本比率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.EquityRatio })},
	{MetricDebtRatio, "負債比率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.DebtRatio })},
	{MetricFixedRatio, "固定比率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.FixedRatio })},
	{MetricFixedLongTermRatio, "固定長期適合率", CategorySafety, UnitPercent, always(func(r FinancialRatios) float64 { return r.Safety.FixedLongTermRatio })},
	{MetricDebtToEquityRatio, "負債資本倍率", CategorySafety, UnitTimes, always(func(r FinancialRatios) float64 { return r.Safety.DebtToEquityRatio })},

	{MetricAssetTurnover, "総資産回転率", CategoryEfficiency, UnitTimes, always(func(r FinancialRatios) float64 { return r.Efficiency.AssetTurnover })},
	{MetricInventoryTurnover, "棚卸資産回転率", CategoryEfficiency, UnitTimes, always(func(r FinancialRatios) float64 { return r.Efficiency.InventoryTurnover })},
	{MetricReceivablesTurnover, "売上債権回転率", CategoryEfficiency, UnitTimes, always(func(r FinancialRatios) float64 { return r.Efficiency.ReceivablesTurnover })},
	{MetricPayablesTurnover, "仕入債務回転率", CategoryEfficiency, UnitTimes, always(func(r FinancialRatios) float64 { return r.Efficiency.PayablesTurnover })},
	{MetricWorkingCapitalTurnover, "運転資本回転率", CategoryEfficiency, UnitTimes, always(func(r FinancialRatios) float64 { return r.Efficiency.WorkingCapitalTurnover })},

	{MetricSalesGrowth, "売上高成長率", CategoryGrowth, UnitPercent, always(func(r FinancialRatios) float64 { return r.Growth.SalesGrowth })},
	{MetricProfitGrowth, "利益成長率", CategoryGrowth, UnitPercent, always(func(r FinancialRatios) float64 { return r.Growth.ProfitGrowth })},
	{MetricAssetsGrowth, "総資産成長率", CategoryGrowth, UnitPercent, always(func(r FinancialRatios) float64 { return r.Growth.AssetsGrowth })},
	{MetricEquityGrowth, "自己資本成長率", CategoryGrowth, UnitPercent, always(func(r FinancialRatios) float64 { return r.Growth.EquityGrowth })},

	{MetricInterestCoverage, "インタレスト・カバレッジ・レシオ", CategoryCredit, UnitTimes, always(func(r FinancialRatios) float64 { return r.Credit.InterestCoverage })},
	{MetricCashRatio, "現金比率", CategoryCredit, UnitPercent, always(func(r FinancialRatios) float64 { return r.Credit.CashRatio })},
	{MetricTangibleEquityRatio, "有形自己資本比率", CategoryCredit, UnitPercent, always(func(r FinancialRatios) float64 { return r.Credit.TangibleEquityRatio })},
	{MetricWorkingCapitalRatio, "運転資本比率", CategoryCredit, UnitPercent, always(func(r FinancialRatios) float64 { return r.Credit.WorkingCapitalRatio })},

	{MetricSalesPerEmployee, "一人当たり売上高", CategoryProductivity, UnitYen, productivity(func(p *Productivity) float64 { return p.SalesPerEmployee })},
	{MetricProfitPerEmployee, "一人当たり営業利益", CategoryProductivity, UnitYen, productivity(func(p *Productivity) float64 { return p.ProfitPerEmployee })},
	{MetricLaborProductivity, "労働生産性", CategoryProductivity, UnitYen, productivity(func(p *Productivity) float64 { return p.LaborProductivity })},
}

// Metrics returns the ratio catalog in display order.
func Metrics() []MetricInfo {
	return slices.Clone(metricCatalog)
}

func LookupMetric(m Metric) (MetricInfo, bool) {
	for _, mi := range metricCatalog {
		if mi.Metric == m {
			return mi, true
		}
	}
	return MetricInfo{}, false
}
