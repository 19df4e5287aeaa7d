package model

// KpiKind identifies a dashboard KPI and selects its gauge scaling rule.
type KpiKind string

const (
	KindNetWorth        KpiKind = "net-worth"
	KindCashflow        KpiKind = "cashflow"
	KindSavingsRate     KpiKind = "savings-rate"
	KindReturnYTD       KpiKind = "return-ytd"
	KindDebtToIncome    KpiKind = "debt-to-income"
	KindEmergencyRunway KpiKind = "emergency-runway"
)

// Tier is the discrete risk classification of a gauge reading.
type Tier string

const (
	TierGood Tier = "good"
	TierWarn Tier = "warn"
	TierBad  Tier = "bad"
	// TierNone marks kinds with no threshold table (net worth, cash flow);
	// they carry a placeholder gauge and are rendered as unscored.
	TierNone Tier = "none"
)

// KPI is one dashboard metric: the raw value plus presentation context
// supplied by the caller (delta, history). Gauge scaling and tiering are
// derived, not stored.
type KPI struct {
	Kind      KpiKind   `json:"kind"`
	Label     string    `json:"label"`
	Raw       float64   `json:"raw"`
	Delta     float64   `json:"delta,omitempty"`
	Sparkline []float64 `json:"sparkline,omitempty"`
}
