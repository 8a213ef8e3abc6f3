package domain

import (
	"maps"
	"time"
)

type CategoryLevel string

const (
	LevelMajor  CategoryLevel = "major"
	LevelMiddle CategoryLevel = "middle"
	LevelMinor  CategoryLevel = "minor"
)

func (l CategoryLevel) Valid() bool {
	switch l {
	case LevelMajor, LevelMiddle, LevelMinor:
		return true
	default:
		return false
	}
}

// Category is a node of the industry classification tree.
type Category struct {
	ID       int
	Code     string
	Name     string
	Level    CategoryLevel
	ParentID *int
}

// Clone returns a copy that does not share the parent pointer.
func (c Category) Clone() Category {
	if c.ParentID != nil {
		parent := *c.ParentID
		c.ParentID = &parent
	}
	return c
}

// BenchmarkMetric names a value stored in an industry benchmark row.
type BenchmarkMetric string

const (
	BenchmarkTotalAssetTurnover    BenchmarkMetric = "totalAssetTurnover"
	BenchmarkCurrentRatio          BenchmarkMetric = "currentRatio"
	BenchmarkDebtToEquityRatio     BenchmarkMetric = "debtToEquityRatio"
	BenchmarkEquityRatio           BenchmarkMetric = "equityRatio"
	BenchmarkReturnOnAssets        BenchmarkMetric = "returnOnAssets"
	BenchmarkReturnOnEquity        BenchmarkMetric = "returnOnEquity"
	BenchmarkNetProfitMargin       BenchmarkMetric = "netProfitMargin"
	BenchmarkGrossProfitMargin     BenchmarkMetric = "grossProfitMargin"
	BenchmarkOperatingMargin       BenchmarkMetric = "operatingMargin"
	BenchmarkOrdinaryProfitMargin  BenchmarkMetric = "ordinaryProfitMargin"
	BenchmarkQuickRatio            BenchmarkMetric = "quickRatio"
	BenchmarkInterestCoverageRatio BenchmarkMetric = "interestCoverageRatio"
	BenchmarkDebtToAssetRatio      BenchmarkMetric = "debtToAssetRatio"
	BenchmarkFixedRatio            BenchmarkMetric = "fixedRatio"
	BenchmarkFixedLongTermRatio    BenchmarkMetric = "fixedLongTermRatio"
	BenchmarkInventoryTurnover     BenchmarkMetric = "inventoryTurnover"
	BenchmarkReceivablesTurnover   BenchmarkMetric = "receivablesTurnover"
	BenchmarkPayablesTurnover      BenchmarkMetric = "payablesTurnover"
	BenchmarkLaborProductivity     BenchmarkMetric = "laborProductivity"
	BenchmarkSalesPerEmployee      BenchmarkMetric = "salesPerEmployee"
	BenchmarkProfitPerEmployee     BenchmarkMetric = "profitPerEmployee"
)

// IndustryBenchmarkData is one benchmark row. Values use the ratio engine's units,
// except per-employee values which are in units of 10,000 JPY.
type IndustryBenchmarkData struct {
	Category    Category
	Values      map[BenchmarkMetric]float64
	SampleSize  int
	DataYear    int
	LastUpdated time.Time
}

// Clone returns a copy that shares no storage with b.
func (b IndustryBenchmarkData) Clone() IndustryBenchmarkData {
	out := b
	out.Values = maps.Clone(b.Values)
	out.Category = b.Category.Clone()
	return out
}

// BenchmarkDataset is the full reference data a repository is built from.
type BenchmarkDataset struct {
	DefaultCode string
	Categories  []Category
	Benchmarks  []IndustryBenchmarkData
}
