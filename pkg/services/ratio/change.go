package ratio

import (
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// FormatChange renders the year-over-year change of a value as a signed percentage
// with one decimal place, e.g. "+12.5%" or "-3.0%". ok is false when previous is 0,
// in which case the change is reported as "+0.0%".
func FormatChange(current, previous float64) (string, bool) {
	if previous == 0 {
		return FormatSignedPercent(0), false
	}
	return FormatSignedPercent((current - previous) / previous * percent), true
}

// FormatSignedPercent prefixes non-negative values with '+' after rounding half away from zero.
func FormatSignedPercent(v float64) string {
	d := decimal.NewFromFloat(v).Round(1)
	if d.IsNegative() {
		return d.StringFixed(1) + "%"
	}
	return "+" + d.Abs().StringFixed(1) + "%"
}

type headline struct {
	field string
	label string
	value func(s domain.Statements) *float64
}

var headlines = []headline{
	{"sales", "売上高", func(s domain.Statements) *float64 { return s.IncomeStatement.Revenue.Sales }},
	{"operatingProfit", "営業利益", func(s domain.Statements) *float64 { return s.IncomeStatement.Profit.OperatingProfit }},
	{"ordinaryProfit", "経常利益", func(s domain.Statements) *float64 { return s.IncomeStatement.Profit.OrdinaryProfit }},
	{"netIncome", "当期純利益", func(s domain.Statements) *float64 { return s.IncomeStatement.Profit.NetIncome }},
	{"totalAssets", "総資産", func(s domain.Statements) *float64 { return s.BalanceSheet.Assets.TotalAssets }},
	{"totalEquity", "純資産", func(s domain.Statements) *float64 { return s.BalanceSheet.Equity.TotalEquity }},
}

// YearOverYear reports the movement of headline statement lines present in both periods.
func YearOverYear(current, previous domain.Statements) []domain.LineChange {
	var out []domain.LineChange
	for _, h := range headlines {
		cur, prev := h.value(current), h.value(previous)
		if cur == nil || prev == nil {
			continue
		}
		formatted, ok := FormatChange(*cur, *prev)
		out = append(out, domain.LineChange{
			Field:      h.field,
			Label:      h.label,
			Current:    *cur,
			Previous:   *prev,
			Formatted:  formatted,
			Comparable: ok,
		})
	}
	return out
}
