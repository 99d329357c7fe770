package strategy

import (
	"fmt"
	"strconv"

	"SignalSentinel/internal/model"
)

const reasonInsufficient = "Insufficient history"

// Classify maps RSI and the two moving averages to a signal.
//
// RSI thresholds take precedence; inside the band the moving-average
// crossover decides. Equal averages fall to DOWN.
func (e *Engine) Classify(rsi, maShort, maLong model.Reading) model.SignalDecision {
	if !rsi.Valid || !maShort.Valid || !maLong.Valid {
		return model.SignalDecision{Kind: model.SignalNoData, Reason: reasonInsufficient}
	}

	p := e.Params
	switch {
	case rsi.Value < p.Oversold:
		return model.SignalDecision{
			Kind:   model.SignalUp,
			Reason: fmt.Sprintf("RSI %s < %s", rsi.Format(2), threshold(p.Oversold)),
		}
	case rsi.Value > p.Overbought:
		return model.SignalDecision{
			Kind:   model.SignalDown,
			Reason: fmt.Sprintf("RSI %s > %s", rsi.Format(2), threshold(p.Overbought)),
		}
	}

	if maShort.Value > maLong.Value {
		return model.SignalDecision{Kind: model.SignalUp, Reason: e.maReason(">")}
	}
	op := "<"
	if maShort.Value == maLong.Value {
		op = "="
	}
	return model.SignalDecision{Kind: model.SignalDown, Reason: e.maReason(op)}
}

func (e *Engine) maReason(op string) string {
	return fmt.Sprintf("MA(%d) %s MA(%d)", e.Params.MAShort, op, e.Params.MALong)
}

func threshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
