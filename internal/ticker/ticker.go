// Package ticker derives cross-rates for the scrolling rates line.
package ticker

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"SignalSentinel/internal/model"
)

// RatePlaces is the number of decimal places kept for a cross-rate.
const RatePlaces = 4

// ParsePair splits "EUR/USD" into its two upper-cased codes.
func ParsePair(pair string) (from, to string, err error) {
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(pair)), "/")
	if !ok || from == "" || to == "" || strings.Contains(to, "/") {
		return "", "", fmt.Errorf("invalid pair %q", pair)
	}
	return from, to, nil
}

// CrossRates converts base-relative rates into the requested pairs.
// For pair A/B the rate is rates[B] / rates[A]; the base itself counts as 1.
// Pairs referencing unknown or zero-rate codes are skipped.
func CrossRates(base string, rates map[string]decimal.Decimal, pairs []string) (model.Ticker, error) {
	base = strings.ToUpper(base)
	tk := model.Ticker{Base: base}

	lookup := func(code string) (decimal.Decimal, bool) {
		if code == base {
			return decimal.NewFromInt(1), true
		}
		r, ok := rates[code]
		if !ok || r.IsZero() {
			return decimal.Zero, false
		}
		return r, true
	}

	for _, p := range pairs {
		from, to, err := ParsePair(p)
		if err != nil {
			return model.Ticker{}, err
		}
		rf, okFrom := lookup(from)
		rt, okTo := lookup(to)
		if !okFrom || !okTo {
			log.Printf("[WARN] ticker: no rate for %s/%s, skipping", from, to)
			continue
		}
		tk.Quotes = append(tk.Quotes, model.CrossRate{
			Pair: from + "/" + to,
			Rate: rt.DivRound(rf, RatePlaces+4).Round(RatePlaces),
		})
	}
	return tk, nil
}
