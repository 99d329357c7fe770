package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/strategy"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Closes []float64
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(_ context.Context, _ string, limit int) ([]float64, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	closes := m.Closes
	if limit > 0 && len(closes) > limit {
		closes = closes[len(closes)-limit:]
	}
	return closes, nil
}

// Collector orchestrates symbol resolution, data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Symbols SymbolMap
	Engine  *strategy.Engine
	Limit   int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbols SymbolMap, engine *strategy.Engine, limit int) *Collector {
	return &Collector{Fetcher: fetcher, Symbols: symbols, Engine: engine, Limit: limit}
}

// Evaluate runs one fetch-compute cycle for an asset.
// Short history is not an error; it produces a NO_DATA decision.
func (c *Collector) Evaluate(ctx context.Context, assetText string, trigger model.TriggerType) (*model.Evaluation, error) {
	friendly, symbol, err := c.Symbols.Resolve(assetText)
	if err != nil {
		return nil, err
	}

	closes, err := c.Fetcher.FetchCloses(ctx, symbol, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	series := model.NewPriceSeries(symbol, closes, c.Limit)

	snap, decision := c.Engine.Evaluate(series.Closes)
	if decision.Kind == model.SignalNoData {
		log.Printf("[WARN] %s: %d closes, need %d for all indicators", symbol, series.Len(), c.Engine.Params.MinSamples())
	}

	return &model.Evaluation{
		Asset:       friendly,
		Symbol:      symbol,
		Samples:     series.Len(),
		Periods: model.Periods{
			RSI:     c.Engine.Params.RSIPeriod,
			MAShort: c.Engine.Params.MAShort,
			MALong:  c.Engine.Params.MALong,
		},
		Snapshot:    snap,
		Decision:    decision,
		Trigger:     trigger,
		EvaluatedAt: time.Now(),
	}, nil
}
