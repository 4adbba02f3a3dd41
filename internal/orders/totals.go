package orders

import (
	"github.com/shopspring/decimal"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

// ComputeTotal sums priceAtPurchase * quantity over the item snapshots.
// This runs exactly once, at order creation; the stored total is never
// recomputed from live catalog prices.
func ComputeTotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.PriceAtPurchase).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Round(2).Float64()
	return f
}
