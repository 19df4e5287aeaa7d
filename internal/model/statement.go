// Package model defines the domain types shared across the intake and
// reporting layers: statement documents, clients, form records, and the
// section/module catalogues.
package model

// Category maps an item label (e.g. "Cash Balance") to the raw stored
// representation of its amount. Values come straight out of persisted JSON
// and may be numbers, numeric strings, value/percent objects, or garbage;
// engine.Coerce resolves them.
type Category map[string]any

// Section maps a category key to its Category within one statement side.
type Section map[string]Category

// Statement is one side of a statement document (all asset sections, all
// expense sections, ...), keyed by section key. Sections absent from the
// map are treated as zero by the rollup.
type Statement map[string]Section

// NetWorthDoc is the persisted shape of a client's net-worth form.
type NetWorthDoc struct {
	Assets      Statement `json:"assets"`
	Liabilities Statement `json:"liabilities"`
}

// CashFlowDoc is the persisted shape of a client's cash-flow form. All
// amounts follow a monthly convention; the engine performs no period
// conversion.
type CashFlowDoc struct {
	Income   Statement `json:"income"`
	Expenses Statement `json:"expenses"`
}

// InsuranceDoc is the persisted shape of a client's medical-insurance form.
// Each policy entry carries one cover-amount field among other free-form
// keys the engine ignores.
type InsuranceDoc struct {
	AccidentDetails []map[string]any `json:"accidentDetails"`
	HealthDetails   []map[string]any `json:"healthDetails"`
}

// NetWorth holds the figures derived from a NetWorthDoc.
type NetWorth struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	NetWorth         float64 `json:"net_worth"`
}

// CashFlow holds the figures derived from a CashFlowDoc.
type CashFlow struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	NetCashFlow     float64 `json:"net_cash_flow"`
}
