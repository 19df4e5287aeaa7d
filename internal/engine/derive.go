package engine

import (
	"github.com/sells-group/advisory-cli/internal/model"
)

// DeriveNetWorth computes asset and liability grand totals and their
// difference. A nil doc (no record for the client yet) yields all zeros.
func DeriveNetWorth(doc *model.NetWorthDoc, cat *model.Catalog) model.NetWorth {
	if doc == nil {
		return model.NetWorth{}
	}
	assets := GrandTotal(doc.Assets, model.SectionKeys(cat.AssetSections))
	liabilities := GrandTotal(doc.Liabilities, model.SectionKeys(cat.LiabilitySections))
	return model.NetWorth{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets - liabilities,
	}
}

// DeriveCashFlow computes monthly income and expense grand totals and the
// net monthly cash flow. A nil doc yields all zeros.
func DeriveCashFlow(doc *model.CashFlowDoc, cat *model.Catalog) model.CashFlow {
	if doc == nil {
		return model.CashFlow{}
	}
	income := GrandTotal(doc.Income, model.SectionKeys(cat.IncomeSections))
	expenses := GrandTotal(doc.Expenses, model.SectionKeys(cat.ExpenseSections))
	return model.CashFlow{
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		NetCashFlow:     income - expenses,
	}
}

// DeriveInsuranceCover sums the existing cover amounts across a client's
// accident and health policy lists. Absent lists contribute 0.
func DeriveInsuranceCover(doc *model.InsuranceDoc) float64 {
	if doc == nil {
		return 0
	}
	var total float64
	for _, policy := range doc.AccidentDetails {
		total += Coerce(policy["existingCover"])
	}
	for _, policy := range doc.HealthDetails {
		total += Coerce(policy["existingHealthCover"])
	}
	return total
}
