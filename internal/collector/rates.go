package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// RatesFetcher retrieves a currency-code to rate mapping relative to a fixed base.
type RatesFetcher struct {
	URL    string
	Client *http.Client
}

// NewRatesFetcher creates a rates fetcher with optional proxy support.
func NewRatesFetcher(endpoint, proxyURL string) *RatesFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RatesFetcher{
		URL: endpoint,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// ratesResponse covers the common shapes of free FX endpoints.
type ratesResponse struct {
	Base     string                     `json:"base"`
	BaseCode string                     `json:"base_code"`
	Result   string                     `json:"result"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// FetchRates returns the rates map and the base currency reported by the provider (may be empty).
func (f *RatesFetcher) FetchRates(ctx context.Context) (map[string]decimal.Decimal, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: rates request: %w", ErrDataUnavailable, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetch rates: %w", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("%w: rates: status %d, body: %s", ErrDataUnavailable, resp.StatusCode, string(body))
	}

	var rr ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, "", fmt.Errorf("%w: decode rates: %w", ErrDataUnavailable, err)
	}
	if rr.Result != "" && rr.Result != "success" {
		return nil, "", fmt.Errorf("%w: rates: provider result %q", ErrDataUnavailable, rr.Result)
	}
	if len(rr.Rates) == 0 {
		return nil, "", fmt.Errorf("%w: rates: empty payload", ErrDataUnavailable)
	}

	base := rr.Base
	if base == "" {
		base = rr.BaseCode
	}
	return rr.Rates, base, nil
}
