package collector

import (
	"fmt"
	"strings"
)

// quoteFallback is the quote currency tried when a pair is not mapped directly.
const quoteFallback = "USDT"

// SymbolMap maps friendly pairs ("BTC/USDT") to upstream symbols ("BTCUSDT").
type SymbolMap map[string]string

// DefaultSymbols returns the built-in pair mapping.
func DefaultSymbols() SymbolMap {
	return SymbolMap{
		"BTC/USDT": "BTCUSDT",
		"ETH/USDT": "ETHUSDT",
		"LTC/USDT": "LTCUSDT",
		"EUR/USDT": "EURUSDT",
		"GBP/USDT": "GBPUSDT",
		"AUD/USDT": "AUDUSDT",
	}
}

// Merge returns a copy of m with extra entries added or overridden.
func (m SymbolMap) Merge(extra map[string]string) SymbolMap {
	out := make(SymbolMap, len(m)+len(extra))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range extra {
		out[strings.ToUpper(strings.TrimSpace(k))] = strings.ToUpper(strings.TrimSpace(v))
	}
	return out
}

// Resolve maps display text such as "BTC/USDT 92%" to its friendly pair and upstream symbol.
// Unknown pairs are retried against the USDT quote before giving up.
func (m SymbolMap) Resolve(assetText string) (friendly, symbol string, err error) {
	fields := strings.Fields(assetText)
	if len(fields) == 0 {
		return "", "", fmt.Errorf("%w: empty asset", ErrSymbolUnmapped)
	}
	friendly = strings.ToUpper(fields[0])

	if s, ok := m[friendly]; ok {
		return friendly, s, nil
	}
	if base, _, found := strings.Cut(friendly, "/"); found && base != "" {
		alt := base + "/" + quoteFallback
		if s, ok := m[alt]; ok {
			return alt, s, nil
		}
	}
	return friendly, "", fmt.Errorf("%w: %s", ErrSymbolUnmapped, friendly)
}
