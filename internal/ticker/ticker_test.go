package ticker

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCrossRates(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": d("1"),
		"EUR": d("0.8"),
		"GBP": d("0.75"),
		"JPY": d("150"),
	}
	tk, err := CrossRates("usd", rates, []string{"EUR/USD", "usd/jpy", "EUR/GBP", "GBP/JPY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"EUR/USD": "1.25",
		"USD/JPY": "150",
		"EUR/GBP": "0.9375",
		"GBP/JPY": "200",
	}
	if len(tk.Quotes) != len(want) {
		t.Fatalf("expected %d quotes, got %d", len(want), len(tk.Quotes))
	}
	for _, q := range tk.Quotes {
		if !q.Rate.Equal(d(want[q.Pair])) {
			t.Errorf("%s = %s, want %s", q.Pair, q.Rate, want[q.Pair])
		}
	}
	if tk.Base != "USD" {
		t.Errorf("expected base USD, got %s", tk.Base)
	}
}

func TestCrossRates_BaseImplicit(t *testing.T) {
	// The provider may omit its own base from the map.
	tk, err := CrossRates("USD", map[string]decimal.Decimal{"EUR": d("0.5")}, []string{"EUR/USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tk.Quotes) != 1 || !tk.Quotes[0].Rate.Equal(d("2")) {
		t.Errorf("unexpected quotes %+v", tk.Quotes)
	}
}

func TestCrossRates_RoundsToFourPlaces(t *testing.T) {
	tk, err := CrossRates("USD", map[string]decimal.Decimal{"EUR": d("0.3")}, []string{"EUR/USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tk.Quotes[0].Rate.StringFixed(RatePlaces); got != "3.3333" {
		t.Errorf("expected 3.3333, got %s", got)
	}
}

func TestCrossRates_SkipsUnknownAndZero(t *testing.T) {
	rates := map[string]decimal.Decimal{"EUR": d("0.9"), "XAU": decimal.Zero}
	tk, err := CrossRates("USD", rates, []string{"EUR/USD", "CHF/USD", "XAU/USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tk.Quotes) != 1 || tk.Quotes[0].Pair != "EUR/USD" {
		t.Errorf("expected only EUR/USD, got %+v", tk.Quotes)
	}
}

func TestParsePair_Invalid(t *testing.T) {
	for _, p := range []string{"", "EURUSD", "/USD", "EUR/", "A/B/C"} {
		if _, _, err := ParsePair(p); err == nil {
			t.Errorf("ParsePair(%q): expected error", p)
		}
	}
	if _, err := CrossRates("USD", nil, []string{"EURUSD"}); err == nil {
		t.Error("CrossRates should reject malformed pairs")
	}
}
