package extraction

import (
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/normalize"
)

type keyword struct {
	key    string
	labels []string
}

// Labels are tried in order; the first one present in a document wins.
var balanceSheetKeywords = []keyword{
	{"cash", []string{"現金", "預金", "現金及び預金", "キャッシュ"}},
	{"accountsReceivable", []string{"売掛金", "受取手形", "売上債権"}},
	{"inventory", []string{"棚卸資産", "商品", "製品", "仕掛品", "原材料"}},
	{"totalCurrentAssets", []string{"流動資産合計", "流動資産計"}},
	{"tangibleAssets", []string{"有形固定資産", "建物", "機械装置", "土地"}},
	{"intangibleAssets", []string{"無形固定資産"}},
	{"investmentAssets", []string{"投資その他の資産"}},
	{"totalFixedAssets", []string{"固定資産合計", "固定資産計"}},
	{"totalAssets", []string{"資産合計", "資産の部合計", "総資産"}},
	{"accountsPayable", []string{"買掛金", "支払手形", "仕入債務"}},
	{"shortTermLoans", []string{"短期借入金", "短期貸付金"}},
	{"totalCurrentLiabilities", []string{"流動負債合計", "流動負債計"}},
	{"longTermLoans", []string{"長期借入金", "長期貸付金"}},
	{"totalFixedLiabilities", []string{"固定負債合計", "固定負債計"}},
	{"totalLiabilities", []string{"負債合計", "負債の部合計"}},
	{"capital", []string{"資本金", "出資金"}},
	{"retainedEarnings", []string{"利益剰余金", "繰越利益剰余金"}},
	{"totalEquity", []string{"純資産合計", "純資産の部合計", "自己資本"}},
}

var incomeStatementKeywords = []keyword{
	{"sales", []string{"売上高", "売上収入", "営業収益"}},
	{"costOfSales", []string{"売上原価", "仕入原価"}},
	{"grossProfit", []string{"売上総利益", "売上総益"}},
	{"sellingExpenses", []string{"販売費", "販売費及び一般管理費"}},
	{"depreciation", []string{"減価償却費"}},
	{"operatingProfit", []string{"営業利益", "営業損益"}},
	{"ordinaryProfit", []string{"経常利益", "経常損益"}},
	{"netIncome", []string{"当期純利益", "当期利益", "純利益"}},
	{"nonOperatingIncome", []string{"営業外収益", "その他の収益"}},
	{"nonOperatingExpenses", []string{"営業外費用", "その他の費用"}},
	{"interestExpense", []string{"支払利息", "支払利息割引料"}},
	{"taxExpense", []string{"法人税", "法人税等", "税金"}},
}

var supplementaryKeywords = []keyword{
	{"employeeCount", []string{"従業員数", "社員数"}},
	{"averageSalary", []string{"平均給与", "平均年収"}},
}

func keywordsFor(t domain.DocumentType) []keyword {
	switch t {
	case domain.DocumentBalanceSheet:
		return balanceSheetKeywords
	case domain.DocumentIncomeStatement:
		return incomeStatementKeywords
	case domain.DocumentPayroll:
		return supplementaryKeywords
	default:
		out := make([]keyword, 0, len(balanceSheetKeywords)+len(incomeStatementKeywords)+len(supplementaryKeywords))
		out = append(out, balanceSheetKeywords...)
		out = append(out, incomeStatementKeywords...)
		return append(out, supplementaryKeywords...)
	}
}

// resolve maps labeled cells onto canonical keys. A label that already is a
// canonical key or alias passes through; Japanese labels go through the keyword table.
func resolve(t domain.DocumentType, labeled map[string]string) map[string]any {
	values := make(map[string]any)
	for label, v := range labeled {
		if normalize.IsKnownKey(label) {
			values[label] = v
		}
	}
	for _, kw := range keywordsFor(t) {
		if _, ok := values[kw.key]; ok {
			continue
		}
		for _, label := range kw.labels {
			if v, ok := labeled[label]; ok {
				values[kw.key] = v
				break
			}
		}
	}
	return values
}
