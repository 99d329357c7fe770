package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/ticker"
)

// Display precision for indicator values.
const (
	RSIDecimals = 2
	MADecimals  = 5
)

func signalIcon(k model.SignalKind) string {
	switch k {
	case model.SignalUp:
		return "🟢"
	case model.SignalDown:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatEvaluation renders a signal with its indicator details and the time until the next one.
// A non-positive next omits the countdown line.
func FormatEvaluation(ev *model.Evaluation, next time.Duration) string {
	var b strings.Builder
	s := ev.Snapshot

	b.WriteString(fmt.Sprintf("%s <b>%s: %s</b>\n", signalIcon(ev.Decision.Kind), html.EscapeString(ev.Asset), ev.Decision.Kind))
	b.WriteString(fmt.Sprintf("%s | RSI:%s MA%d:%s MA%d:%s\n",
		html.EscapeString(ev.Decision.Reason),
		s.RSI.Format(RSIDecimals),
		ev.Periods.MAShort, s.MAShort.Format(MADecimals),
		ev.Periods.MALong, s.MALong.Format(MADecimals),
	))
	if ev.Decision.Kind == model.SignalNoData {
		b.WriteString(fmt.Sprintf("samples: %d of %d (RSI%d MA%d MA%d)\n",
			ev.Samples, ev.Periods.MinSamples(), ev.Periods.RSI, ev.Periods.MAShort, ev.Periods.MALong))
	}
	if next > 0 {
		b.WriteString(fmt.Sprintf("Next signal in %s\n", next.Round(time.Second)))
	}
	return b.String()
}

// FormatError renders a failed evaluation for display.
func FormatError(asset string, err error) string {
	return fmt.Sprintf("❌ %s: Error: %s", html.EscapeString(asset), html.EscapeString(err.Error()))
}

// FormatBusy tells the user an evaluation is already running for the asset.
func FormatBusy(asset string) string {
	return fmt.Sprintf("⏳ %s: evaluation already in progress", html.EscapeString(asset))
}

// FormatTicker renders cross-rates as a single scrolling line.
func FormatTicker(tk model.Ticker) string {
	if len(tk.Quotes) == 0 {
		return "💱 no rates available"
	}
	parts := make([]string, 0, len(tk.Quotes))
	for _, q := range tk.Quotes {
		parts = append(parts, fmt.Sprintf("%s %s", q.Pair, q.Rate.StringFixed(ticker.RatePlaces)))
	}
	return "💱 " + strings.Join(parts, " • ")
}

// FormatAssets lists the watched assets.
func FormatAssets(assets []string) string {
	sorted := append([]string(nil), assets...)
	sort.Strings(sorted)
	return "👀 <b>Watching</b>\n" + html.EscapeString(strings.Join(sorted, "\n"))
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return "Commands:\n• /signal &lt;pair&gt; (e.g. /signal BTC/USDT)\n• /assets\n• /rates"
}
