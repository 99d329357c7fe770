package collector

import (
	"context"
	"errors"
)

var (
	// ErrDataUnavailable is returned when the upstream provider fails or returns a malformed payload.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrSymbolUnmapped is returned when an asset has no known upstream symbol.
	ErrSymbolUnmapped = errors.New("symbol mapping not found")
)

// Fetcher defines the interface for fetching closing prices.
type Fetcher interface {
	// FetchCloses returns up to limit most recent closes, oldest first.
	FetchCloses(ctx context.Context, symbol string, limit int) ([]float64, error)
	Name() string
}
