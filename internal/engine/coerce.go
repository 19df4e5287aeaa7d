// Package engine implements the financial aggregation core: coercion of
// loosely-typed stored amounts, category/section/statement rollups, and the
// derived net-worth, cash-flow, and insurance figures. Every function is
// pure and total — malformed or missing data degrades to zero, never to an
// error, so the dashboard can always render a brand-new client.
package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce resolves any stored representation of a line-item amount to a
// finite float64. Numbers pass through, numeric strings are parsed after
// stripping thousands separators, {value, percent} objects recurse into
// value, and everything else is 0.
func Coerce(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case float32:
		return Coerce(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		return coerceString(v.String())
	case string:
		return coerceString(v)
	case map[string]any:
		inner, ok := v["value"]
		if !ok {
			return 0
		}
		// percent is an informational weight, never summed
		return Coerce(inner)
	default:
		return 0
	}
}

func coerceString(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
