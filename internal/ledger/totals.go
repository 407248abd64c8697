package ledger

import (
	"github.com/shopspring/decimal"
)

// Line is anything carrying a cost and a revenue, such as models.Product and
// models.SoldProduct.
type Line interface {
	LineCost() decimal.Decimal
	LineRevenue() decimal.Decimal
}

// TotalCost sums cost price times quantity.
func TotalCost[T Line](items []T) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineCost())
	}
	return total
}

// TotalRevenue sums sell price times quantity.
func TotalRevenue[T Line](items []T) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineRevenue())
	}
	return total
}

func TotalProfit[T Line](items []T) decimal.Decimal {
	return TotalRevenue(items).Sub(TotalCost(items))
}

// Totals groups the three aggregates of one list. Values are exact; rounding
// is left to whoever displays them.
type Totals struct {
	Cost    decimal.Decimal `json:"cost"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

func ComputeTotals[T Line](items []T) Totals {
	cost := TotalCost(items)
	revenue := TotalRevenue(items)
	return Totals{Cost: cost, Revenue: revenue, Profit: revenue.Sub(cost)}
}

// Summary is the dashboard view of both visible lists.
type Summary struct {
	ActiveCount int    `json:"active_count"`
	SoldCount   int    `json:"sold_count"`
	Active      Totals `json:"active"`
	Sold        Totals `json:"sold"`
}
