package strategy

import (
	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// Params configures the indicator windows and RSI thresholds.
type Params struct {
	RSIPeriod  int
	MAShort    int
	MALong     int
	Oversold   float64
	Overbought float64
}

// DefaultParams returns RSI(14), MA(9)/MA(21) and the 30/70 thresholds.
func DefaultParams() Params {
	return Params{
		RSIPeriod:  calculator.DefaultRSIPeriod,
		MAShort:    9,
		MALong:     21,
		Oversold:   30,
		Overbought: 70,
	}
}

// MinSamples is the shortest series for which every indicator is present.
func (p Params) MinSamples() int {
	n := p.RSIPeriod + 1
	if p.MAShort > n {
		n = p.MAShort
	}
	if p.MALong > n {
		n = p.MALong
	}
	return n
}

// Engine computes indicators and classifies them into a signal.
// It holds no state between evaluations.
type Engine struct {
	Params Params
}

// NewEngine creates an Engine with the given parameters.
func NewEngine(p Params) *Engine {
	return &Engine{Params: p}
}

// Snapshot computes MA(short), MA(long) and RSI over the closes.
func (e *Engine) Snapshot(closes []float64) model.IndicatorSnapshot {
	var snap model.IndicatorSnapshot
	if v, ok := calculator.SMA(closes, e.Params.MAShort); ok {
		snap.MAShort = model.NewReading(v)
	}
	if v, ok := calculator.SMA(closes, e.Params.MALong); ok {
		snap.MALong = model.NewReading(v)
	}
	if v, ok := calculator.RSI(closes, e.Params.RSIPeriod); ok {
		snap.RSI = model.NewReading(v)
	}
	return snap
}

// Evaluate is the pure core: closes in, indicators and decision out.
func (e *Engine) Evaluate(closes []float64) (model.IndicatorSnapshot, model.SignalDecision) {
	snap := e.Snapshot(closes)
	return snap, e.Classify(snap.RSI, snap.MAShort, snap.MALong)
}
