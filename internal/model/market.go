package model

// PriceSeries holds closing prices for one symbol, oldest first.
type PriceSeries struct {
	Symbol string
	Closes []float64
}

// NewPriceSeries keeps only the newest `window` closes. A non-positive window keeps everything.
func NewPriceSeries(symbol string, closes []float64, window int) *PriceSeries {
	if window > 0 && len(closes) > window {
		closes = closes[len(closes)-window:]
	}
	c := make([]float64, len(closes))
	copy(c, closes)
	return &PriceSeries{Symbol: symbol, Closes: c}
}

// Len returns the number of closes in the series.
func (p *PriceSeries) Len() int { return len(p.Closes) }
