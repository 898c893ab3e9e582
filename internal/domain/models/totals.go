package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Totals is the aggregate financial summary over a set of items.
type Totals struct {
	NumberOfItems      int64
	TotalCost          decimal.Decimal
	TotalValue         decimal.Decimal
	TotalReturnDollar  decimal.Decimal
	TotalReturnPercent decimal.Decimal
}

// AggregateItems sums the derived metrics over the given items using exact
// decimal arithmetic. The aggregate return percentage is computed from the
// aggregate dollar figures, weighting items by cost rather than averaging
// per-item percentages, and is 0 for an empty input.
func AggregateItems(items []Item) Totals {
	count := int64(0)
	cost := decimal.Zero
	value := decimal.Zero
	ret := decimal.Zero

	for _, it := range items {
		v := it.Valuation()
		count += it.NumberOfItems
		cost = cost.Add(v.TotalCost)
		value = value.Add(v.TotalValue)
		ret = ret.Add(v.TotalReturnDollar)
	}

	pct := decimal.Zero
	if !cost.IsZero() {
		pct = ret.Div(cost).Mul(decimal.NewFromInt(100))
	}

	return Totals{
		NumberOfItems:      count,
		TotalCost:          cost,
		TotalValue:         value,
		TotalReturnDollar:  ret,
		TotalReturnPercent: pct,
	}
}

type totalsJSON struct {
	NumberOfItems      int64   `json:"number_of_items"`
	TotalCost          float64 `json:"total_cost"`
	TotalValue         float64 `json:"total_value"`
	TotalReturnDollar  float64 `json:"total_return_dollar"`
	TotalReturnPercent float64 `json:"total_return_percent"`
}

// MarshalJSON rounds the aggregate figures to two decimals for presentation.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		NumberOfItems:      t.NumberOfItems,
		TotalCost:          round2(t.TotalCost),
		TotalValue:         round2(t.TotalValue),
		TotalReturnDollar:  round2(t.TotalReturnDollar),
		TotalReturnPercent: round2(t.TotalReturnPercent),
	})
}
