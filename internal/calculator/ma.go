package calculator

// SMA computes the simple moving average of the last `period` values.
// ok is false when there are fewer than `period` values or period is not positive.
func SMA(values []float64, period int) (avg float64, ok bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), true
}
