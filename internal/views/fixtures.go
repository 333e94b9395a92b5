package views

import "github.com/bobmcallan/kabu/internal/models"

// Market figures and news shown on the dashboard are compile-time fixtures.
// There is no live feed; a real version would sit behind a market-data
// collaborator interface instead of these literals.

var fixtureQuotes = map[string]models.MarketQuote{
	"AAPL":  {Symbol: "AAPL", Name: "Apple Inc.", Price: 175.50, Change: 2.10, ChangePercent: 1.21, Volume: 52840000},
	"GOOGL": {Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 2650.00, Change: -12.50, ChangePercent: -0.47, Volume: 1230000},
	"TSLA":  {Symbol: "TSLA", Name: "Tesla, Inc.", Price: 220.00, Change: 5.40, ChangePercent: 2.52, Volume: 98400000},
	"MSFT":  {Symbol: "MSFT", Name: "Microsoft Corporation", Price: 320.00, Change: 1.80, ChangePercent: 0.57, Volume: 23100000},
	"SPY":   {Symbol: "SPY", Name: "SPDR S&P 500 ETF", Price: 489.00, Change: -3.90, ChangePercent: -0.79, Volume: 71200000},
}

var fixtureSummary = models.MarketSummary{
	Indices: []models.IndexQuote{
		{Name: "Nikkei 225", Level: 33750, Change: 756, ChangePercent: 2.3},
		{Name: "S&P 500", Level: 4890, Change: -39, ChangePercent: -0.8},
		{Name: "NASDAQ", Level: 15320, Change: 112, ChangePercent: 0.7},
	},
	Movers: []models.MarketQuote{
		fixtureQuotes["TSLA"],
		fixtureQuotes["AAPL"],
		fixtureQuotes["GOOGL"],
	},
	News: []models.NewsItem{
		{Title: "Yen weakness lifts exporters as earnings season opens", Source: "Market Wire", Category: "markets"},
		{Title: "Fed officials signal caution on rate cuts amid sticky inflation", Source: "Market Wire", Category: "rates"},
		{Title: "Mega-cap tech leads quarterly buyback announcements", Source: "Market Wire", Category: "equities"},
	},
	Sectors: []models.SectorWeight{
		{Sector: "Technology", Weight: 46.0},
		{Sector: "Consumer Discretionary", Weight: 22.0},
		{Sector: "Communication Services", Weight: 18.0},
		{Sector: "Other", Weight: 14.0},
	},
}

// QuoteFor returns the fixture quote for a symbol, if one exists.
func QuoteFor(symbol string) (models.MarketQuote, bool) {
	q, ok := fixtureQuotes[symbol]
	return q, ok
}

// Summary returns the dashboard market summary fixtures.
func Summary() models.MarketSummary {
	return fixtureSummary
}
