// Package units holds the weight and currency conversion policies required
// by the carrier's customs rules. The floors here are contractual minimums,
// not rounding artifacts: the carrier rejects zero-weight commodities and
// customs values under 1.00, so both are clamped rather than rounded.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	gramsToPounds     = 0.00220462
	kilogramsToPounds = 2.20462

	// MinCommodityWeightLB is the smallest weight the carrier accepts on a
	// commodity line.
	MinCommodityWeightLB = 0.001

	// MinCustomsValue is the minimum declarable value, applied per commodity
	// line and again to the aggregate total.
	MinCustomsValue = 1.00
)

// WeightToPounds converts a weight in G, KG or LB to pounds, clamped to the
// carrier's minimum.
func WeightToPounds(value float64, unit string) (float64, error) {
	var lb float64
	switch unit {
	case "G":
		lb = value * gramsToPounds
	case "KG":
		lb = value * kilogramsToPounds
	case "LB":
		lb = value
	default:
		return 0, fmt.Errorf("unknown weight unit %q", unit)
	}

	if lb < MinCommodityWeightLB {
		lb = MinCommodityWeightLB
	}
	return lb, nil
}

// ConvertCurrency converts a local-currency amount to the settlement
// currency at a fixed configured rate, rounded to 2 decimal places.
func ConvertCurrency(amount, rate float64) float64 {
	converted := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	f, _ := converted.Round(2).Float64()
	return f
}

// FloorCustomsValue clamps a computed customs value to the carrier-imposed
// minimum declarable value.
func FloorCustomsValue(amount float64) float64 {
	if amount < MinCustomsValue {
		return MinCustomsValue
	}
	return amount
}

// LineTotal multiplies a unit amount by a quantity without accumulating
// float error, rounded to 2 decimal places.
func LineTotal(unitAmount float64, quantity int) float64 {
	total := decimal.NewFromFloat(unitAmount).Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := total.Round(2).Float64()
	return f
}
