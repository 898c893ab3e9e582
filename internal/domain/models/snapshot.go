package models

import "time"

// PortfolioSnapshot is the summary record stored after each bulk price
// refresh. It is a historical report, not authoritative item data: the
// figures here are a rounded copy of the totals at refresh time.
type PortfolioSnapshot struct {
	RefreshedAt        time.Time `bson:"refreshed_at" json:"refreshed_at"`
	LinksRefreshed     int       `bson:"links_refreshed" json:"links_refreshed"`
	LinksFailed        int       `bson:"links_failed" json:"links_failed"`
	ItemCount          int       `bson:"item_count" json:"item_count"`
	NumberOfItems      int64     `bson:"number_of_items" json:"number_of_items"`
	TotalCost          float64   `bson:"total_cost" json:"total_cost"`
	TotalValue         float64   `bson:"total_value" json:"total_value"`
	TotalReturnDollar  float64   `bson:"total_return_dollar" json:"total_return_dollar"`
	TotalReturnPercent float64   `bson:"total_return_percent" json:"total_return_percent"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}
