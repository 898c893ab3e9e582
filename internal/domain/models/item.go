package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one ledger entry: a purchased market listing together with its most
// recently observed market price. Derived metrics are never stored on the
// struct; they are recomputed from the raw fields through Valuation so a
// persisted record can never drift from its inputs.
type Item struct {
	ItemID        string
	Date          string
	ItemName      string
	CostPerItem   decimal.Decimal
	CurrentPrice  decimal.Decimal
	NumberOfItems int64
	ItemLink      string
	CreatedAt     time.Time

	// ItemNumber is the 1-based position in the listing that produced this
	// copy. It is stamped on read results and carries no identity.
	ItemNumber int
}

// Valuation holds the metrics derived from an item's raw fields.
type Valuation struct {
	TotalCost          decimal.Decimal
	TotalValue         decimal.Decimal
	TotalReturnDollar  decimal.Decimal
	TotalReturnPercent decimal.Decimal
}

// Valuation derives the item's financial metrics. The computation is exact
// decimal arithmetic; the return percentage is 0 whenever the total cost is 0
// so the function stays total.
func (i Item) Valuation() Valuation {
	count := decimal.NewFromInt(i.NumberOfItems)
	cost := i.CostPerItem.Mul(count)
	value := i.CurrentPrice.Mul(count)
	ret := value.Sub(cost)

	pct := decimal.Zero
	if !cost.IsZero() {
		pct = ret.Div(cost).Mul(decimal.NewFromInt(100))
	}

	return Valuation{
		TotalCost:          cost,
		TotalValue:         value,
		TotalReturnDollar:  ret,
		TotalReturnPercent: pct,
	}
}

type itemJSON struct {
	ItemID             string  `json:"item_id"`
	ItemNumber         int     `json:"item_number"`
	Date               string  `json:"date"`
	ItemName           string  `json:"item_name"`
	CostPerItem        float64 `json:"cost_per_item"`
	CurrentPrice       float64 `json:"current_price"`
	NumberOfItems      int64   `json:"number_of_items"`
	ItemLink           string  `json:"item_link"`
	TotalCost          float64 `json:"total_cost"`
	TotalValue         float64 `json:"total_value"`
	TotalReturnDollar  float64 `json:"total_return_dollar"`
	TotalReturnPercent float64 `json:"total_return_percent"`
}

// MarshalJSON emits the raw fields plus the derived metrics, rounded to two
// decimals. Rounding happens here, at the presentation boundary, and nowhere
// inside the engine.
func (i Item) MarshalJSON() ([]byte, error) {
	v := i.Valuation()
	return json.Marshal(itemJSON{
		ItemID:             i.ItemID,
		ItemNumber:         i.ItemNumber,
		Date:               i.Date,
		ItemName:           i.ItemName,
		CostPerItem:        round2(i.CostPerItem),
		CurrentPrice:       round2(i.CurrentPrice),
		NumberOfItems:      i.NumberOfItems,
		ItemLink:           i.ItemLink,
		TotalCost:          round2(v.TotalCost),
		TotalValue:         round2(v.TotalValue),
		TotalReturnDollar:  round2(v.TotalReturnDollar),
		TotalReturnPercent: round2(v.TotalReturnPercent),
	})
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
