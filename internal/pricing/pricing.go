// Package pricing derives subtotal, tax and total for a set of priced lines.
// Cart previews and persisted orders both go through Calculator so the two
// always agree for the same lines.
package pricing

import "github.com/shopspring/decimal"

// DefaultRate is the 5% sales tax the storefront applies.
var DefaultRate = decimal.RequireFromString("0.05")

type Line struct {
	Price    decimal.Decimal
	Quantity int
}

type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type Calculator struct {
	Rate decimal.Decimal
}

func NewCalculator(rate decimal.Decimal) Calculator {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return Calculator{Rate: rate}
}

// Calculate rounds subtotal and tax to cents (half away from zero); total is their sum.
func (c Calculator) Calculate(lines []Line) Summary {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	sub = sub.Round(2)
	tax := sub.Mul(c.Rate).Round(2)
	return Summary{Subtotal: sub, Tax: tax, Total: sub.Add(tax)}
}
