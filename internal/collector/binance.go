package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// BinanceFetcher implements Fetcher using the public Binance klines endpoint.
type BinanceFetcher struct {
	Client   *binance.Client
	Interval string
}

// NewBinanceFetcher creates a fetcher with optional base URL and proxy overrides.
func NewBinanceFetcher(baseURL, interval, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	// Klines are public market data; no key is needed.
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	client.HTTPClient = &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
	if interval == "" {
		interval = "1m"
	}
	return &BinanceFetcher{Client: client, Interval: interval}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchCloses requests `limit` klines and keeps only the close of each record.
func (f *BinanceFetcher) FetchCloses(ctx context.Context, symbol string, limit int) ([]float64, error) {
	klines, err := f.Client.NewKlinesService().
		Symbol(symbol).
		Interval(f.Interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: klines %s: %w", ErrDataUnavailable, symbol, err)
	}
	// A mapped symbol with limit >= 1 always yields klines; anything that decodes
	// to nothing was not a kline array.
	if len(klines) == 0 {
		return nil, fmt.Errorf("%w: klines %s: empty or malformed payload", ErrDataUnavailable, symbol)
	}

	// Ensure chronological order
	sort.SliceStable(klines, func(i, j int) bool { return klines[i].OpenTime < klines[j].OpenTime })

	closes := make([]float64, 0, len(klines))
	for _, k := range klines {
		c, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: klines %s: bad close %q: %w", ErrDataUnavailable, symbol, k.Close, err)
		}
		closes = append(closes, c.InexactFloat64())
	}
	return closes, nil
}
