package model

import "github.com/shopspring/decimal"

// CrossRate is a derived exchange rate for one currency pair.
type CrossRate struct {
	Pair string // "EUR/USD"
	Rate decimal.Decimal
}

// Ticker is a set of cross-rates derived from one rates snapshot.
type Ticker struct {
	Base   string
	Quotes []CrossRate
}
