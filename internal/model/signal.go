package model

import "time"

// SignalKind is the direction of a trading signal.
type SignalKind string

const (
	SignalUp     SignalKind = "UP"
	SignalDown   SignalKind = "DOWN"
	SignalNoData SignalKind = "NO_DATA"
)

// TriggerType indicates what triggered the evaluation.
type TriggerType string

const (
	TriggerScheduled TriggerType = "SCHEDULED"
	TriggerManual    TriggerType = "MANUAL"
)

// SignalDecision is the classification result with a human-readable reason.
type SignalDecision struct {
	Kind   SignalKind
	Reason string
}

// Periods records the indicator windows used for an evaluation.
type Periods struct {
	RSI     int
	MAShort int
	MALong  int
}

// MinSamples returns the number of closes needed for every indicator to be present.
func (p Periods) MinSamples() int {
	return max(p.RSI+1, p.MAShort, p.MALong)
}

// Evaluation is the outcome of one fetch-compute cycle for an asset.
type Evaluation struct {
	Asset       string // friendly pair, e.g. "BTC/USDT"
	Symbol      string // upstream symbol, e.g. "BTCUSDT"
	Samples     int
	Periods     Periods
	Snapshot    IndicatorSnapshot
	Decision    SignalDecision
	Trigger     TriggerType
	EvaluatedAt time.Time
}
