package strategy

import (
	"strings"
	"testing"

	"SignalSentinel/internal/model"
)

func r(v float64) model.Reading { return model.NewReading(v) }

func TestClassify_Table(t *testing.T) {
	e := NewEngine(DefaultParams())
	absent := model.Reading{}

	tests := []struct {
		name       string
		rsi        model.Reading
		maS, maL   model.Reading
		wantKind   model.SignalKind
		wantReason string
	}{
		{"oversold", r(25), r(1), r(2), model.SignalUp, "< 30"},
		{"overbought", r(75), r(2), r(1), model.SignalDown, "> 70"},
		{"short above long", r(50), r(2.0), r(1.0), model.SignalUp, "MA(9) > MA(21)"},
		{"short below long", r(50), r(1.0), r(2.0), model.SignalDown, "MA(9) < MA(21)"},
		{"tie falls to down", r(50), r(1.0), r(1.0), model.SignalDown, "MA(9) = MA(21)"},
		{"rsi exactly 30 uses MAs", r(30), r(1), r(2), model.SignalDown, "MA(9) < MA(21)"},
		{"rsi exactly 70 uses MAs", r(70), r(2), r(1), model.SignalUp, "MA(9) > MA(21)"},
		{"rsi absent", absent, r(1), r(2), model.SignalNoData, "Insufficient history"},
		{"ma short absent", r(50), absent, r(2), model.SignalNoData, "Insufficient history"},
		{"ma long absent", r(50), r(1), absent, model.SignalNoData, "Insufficient history"},
		{"zero rsi is present", r(0), r(1), r(2), model.SignalUp, "RSI 0.00 < 30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Classify(tt.rsi, tt.maS, tt.maL)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("reason %q does not mention %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestClassify_ReasonCitesRSIValue(t *testing.T) {
	e := NewEngine(DefaultParams())
	got := e.Classify(r(25.4567), r(1), r(2))
	if got.Reason != "RSI 25.46 < 30" {
		t.Errorf("unexpected reason %q", got.Reason)
	}
	got = e.Classify(r(81), r(1), r(2))
	if got.Reason != "RSI 81.00 > 70" {
		t.Errorf("unexpected reason %q", got.Reason)
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	p := DefaultParams()
	p.Oversold, p.Overbought = 20, 80
	e := NewEngine(p)
	if got := e.Classify(r(25), r(1), r(2)); got.Kind != model.SignalDown {
		t.Errorf("RSI 25 inside 20/80 band should defer to MAs, got %s", got.Kind)
	}
	if got := e.Classify(r(85), r(2), r(1)); got.Reason != "RSI 85.00 > 80" {
		t.Errorf("unexpected reason %q", got.Reason)
	}
}

func TestEvaluate_InsufficientHistory(t *testing.T) {
	e := NewEngine(DefaultParams())
	closes := make([]float64, 20) // MA(21) needs 21
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	snap, dec := e.Evaluate(closes)
	if dec.Kind != model.SignalNoData {
		t.Fatalf("expected NO_DATA, got %s", dec.Kind)
	}
	if snap.MALong.Valid {
		t.Error("MA(21) must be absent with 20 samples")
	}
	if !snap.MAShort.Valid || !snap.RSI.Valid {
		t.Error("MA(9) and RSI(14) should be present with 20 samples")
	}
}

func TestEvaluate_RisingSeriesIsOverbought(t *testing.T) {
	e := NewEngine(DefaultParams())
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	snap, dec := e.Evaluate(closes)
	if snap.RSI.Value != 100 {
		t.Errorf("expected RSI 100, got %.2f", snap.RSI.Value)
	}
	if dec.Kind != model.SignalDown || dec.Reason != "RSI 100.00 > 70" {
		t.Errorf("unexpected decision %+v", dec)
	}
}

func TestEvaluate_FallingSeriesIsOversold(t *testing.T) {
	e := NewEngine(DefaultParams())
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	_, dec := e.Evaluate(closes)
	if dec.Kind != model.SignalUp || dec.Reason != "RSI 0.00 < 30" {
		t.Errorf("unexpected decision %+v", dec)
	}
}

func TestEvaluate_FlatSeries(t *testing.T) {
	e := NewEngine(DefaultParams())
	closes := make([]float64, 21)
	for i := range closes {
		closes[i] = 1.5
	}
	snap, dec := e.Evaluate(closes)
	if !snap.Complete() {
		t.Fatal("expected complete snapshot")
	}
	// Zero losses force RSI to 100 even though gains are zero too.
	if snap.RSI.Value != 100 {
		t.Errorf("expected RSI 100, got %.2f", snap.RSI.Value)
	}
	if dec.Kind != model.SignalDown {
		t.Errorf("expected DOWN, got %s", dec.Kind)
	}
}

func TestMinSamples(t *testing.T) {
	if got := DefaultParams().MinSamples(); got != 21 {
		t.Errorf("expected 21, got %d", got)
	}
	p := Params{RSIPeriod: 30, MAShort: 5, MALong: 10}
	if got := p.MinSamples(); got != 31 {
		t.Errorf("expected 31, got %d", got)
	}
}
