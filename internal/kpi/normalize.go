// Package kpi maps raw dashboard metrics onto bounded 0–100 gauge values
// with discrete risk tiers. Each KPI kind carries its own scaling rule and
// thresholds; there is deliberately no generic fallback — a kind without a
// rule is a programming error, not a data condition.
package kpi

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/advisory-cli/internal/model"
)

// Gauge is a normalized KPI reading for dial rendering.
type Gauge struct {
	Value float64    `json:"value"`
	Tier  model.Tier `json:"tier"`
}

// unscoredGauge is the placeholder reading for kinds with no threshold
// table (net worth, cash flow): mid-high dial position, TierNone.
var unscoredGauge = Gauge{Value: 75, Tier: model.TierNone}

// Normalize scales raw onto [0, 100] and classifies it per the kind's
// threshold table. An unknown kind fails loudly.
func Normalize(kind model.KpiKind, raw float64) (Gauge, error) {
	switch kind {
	case model.KindSavingsRate:
		return Gauge{
			Value: clamp(raw * 100),
			Tier:  tierAtLeast(raw, 0.25, 0.15),
		}, nil

	case model.KindReturnYTD:
		return Gauge{
			Value: clamp(raw * 100 * 5),
			Tier:  tierAtLeast(raw, 0.10, 0.05),
		}, nil

	case model.KindDebtToIncome:
		return Gauge{
			Value: clamp(raw * 100),
			Tier:  tierAtMost(raw, 0.20, 0.35),
		}, nil

	case model.KindEmergencyRunway:
		// raw is a count of months; a year of runway pegs the dial.
		return Gauge{
			Value: clamp(raw / 12 * 100),
			Tier:  tierAtLeast(raw, 6, 3),
		}, nil

	case model.KindNetWorth, model.KindCashflow:
		return unscoredGauge, nil

	default:
		return Gauge{}, eris.Errorf("kpi: no scaling rule for kind %q", kind)
	}
}

// tierAtLeast classifies metrics where higher is better.
func tierAtLeast(raw, good, warn float64) model.Tier {
	switch {
	case raw >= good:
		return model.TierGood
	case raw >= warn:
		return model.TierWarn
	default:
		return model.TierBad
	}
}

// tierAtMost classifies metrics where lower is better.
func tierAtMost(raw, good, warn float64) model.Tier {
	switch {
	case raw <= good:
		return model.TierGood
	case raw <= warn:
		return model.TierWarn
	default:
		return model.TierBad
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
