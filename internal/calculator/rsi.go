package calculator

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over the last `period` adjacent differences.
// Requires at least period+1 values; ok is false otherwise.
// Returns 100 when the average loss is zero, including a flat series.
func RSI(values []float64, period int) (rsi float64, ok bool) {
	if period <= 0 || len(values) < period+1 {
		return 0, false
	}

	var gain, loss float64
	for i := len(values) - period; i < len(values); i++ {
		diff := values[i] - values[i-1]
		if diff > 0 {
			gain += diff
		} else {
			loss -= diff
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	if avgLoss == 0 {
		return 100.0, true
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}
