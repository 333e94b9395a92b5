package models

// MarketQuote is a static quote used to value holdings and populate the
// market dashboard. Quotes are compile-time fixtures; there is no live feed.
type MarketQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// IndexQuote is a market index level shown on the dashboard.
type IndexQuote struct {
	Name          string  `json:"name"`
	Level         float64 `json:"level"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// NewsItem is a headline shown on the dashboard.
type NewsItem struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// SectorWeight is one slice of the allocation chart.
type SectorWeight struct {
	Sector string  `json:"sector"`
	Weight float64 `json:"weight"` // percent, 0-100
}

// MarketSummary bundles the dashboard fixtures.
type MarketSummary struct {
	Indices []IndexQuote   `json:"indices"`
	Movers  []MarketQuote  `json:"movers"`
	News    []NewsItem     `json:"news"`
	Sectors []SectorWeight `json:"sectors"`
}
