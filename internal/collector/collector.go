package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"PivotBoard/internal/cache"
	"PivotBoard/internal/calculator"
	"PivotBoard/internal/formatter"
	"PivotBoard/internal/metrics"
	"PivotBoard/internal/model"
	"PivotBoard/internal/recorder"
	"PivotBoard/internal/strategy"
)

// Analysis is everything derived from one symbol's history.
type Analysis struct {
	Symbol  string               `json:"symbol"`
	Period  string               `json:"period"`
	Info    *model.StockInfo     `json:"info,omitempty"`
	Rows    []model.IndicatorRow `json:"-"` // ascending, unrounded
	Levels  model.PivotLevels    `json:"levels"`
	Table   formatter.Table      `json:"table"` // descending, rounded
	Summary model.Summary        `json:"summary"`
}

// LastClose is the close of the newest bar.
func (a *Analysis) LastClose() float64 {
	if len(a.Rows) == 0 {
		return 0
	}
	return a.Rows[len(a.Rows)-1].Close
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Cache    cache.Service
	Recorder recorder.Recorder
	Metrics  *metrics.Recorder
	Params   calculator.Params
	CacheTTL time.Duration

	now func() time.Time
}

// NewCollector creates a Collector with no cache, no store and default indicator windows.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Cache:    cache.NewNoopCache(),
		Recorder: recorder.NewNoopRecorder(),
		Params:   calculator.DefaultParams(),
		CacheTTL: 15 * time.Minute,
		now:      time.Now,
	}
}

// Analyze loads the history of symbol over period and computes the full indicator view.
func (c *Collector) Analyze(ctx context.Context, symbol, period string) (*Analysis, error) {
	sym, period, err := c.resolve(symbol, period)
	if err != nil {
		return nil, err
	}

	bars, err := c.loadBars(ctx, sym, period)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := calculator.ComputeIndicators(bars, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", sym, err)
	}
	levels, err := calculator.CalculatePivotPoints([]model.PriceBar{rows[len(rows)-1].PriceBar})
	if err != nil {
		return nil, fmt.Errorf("pivots %s: %w", sym, err)
	}
	c.Metrics.RecordCompute(time.Since(start).Seconds())

	a := &Analysis{
		Symbol:  sym,
		Period:  period,
		Info:    c.loadInfo(ctx, sym),
		Rows:    rows,
		Levels:  levels,
		Table:   formatter.FormatTable(levels, rows),
		Summary: strategy.Summarize(sym, rows, levels),
	}
	c.Metrics.RecordLastClose(sym, a.LastClose())

	log.Debug().Str("symbol", sym).Str("period", period).Int("rows", len(rows)).
		Str("trend", a.Summary.Trend.String()).Msg("analysis done")
	return a, nil
}

// Refresh fetches fresh bars regardless of the cache, stores them and
// replaces the cached copy. It returns the number of bars fetched.
func (c *Collector) Refresh(ctx context.Context, symbol, period string) (int, error) {
	sym, period, err := c.resolve(symbol, period)
	if err != nil {
		return 0, err
	}
	bars, err := c.fetch(ctx, sym, period)
	if err != nil {
		return 0, err
	}
	c.persist(ctx, sym, bars)
	c.cacheBars(ctx, sym, period, bars)

	if _, err := c.Recorder.GetInfo(ctx, sym); errors.Is(err, recorder.ErrNotFound) {
		c.loadInfo(ctx, sym)
	}
	log.Info().Str("symbol", sym).Str("period", period).Int("rows", len(bars)).Msg("refreshed")
	return len(bars), nil
}

func (c *Collector) resolve(symbol, period string) (string, string, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return "", "", fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}
	p, err := ResolvePeriod(period)
	if err != nil {
		return "", "", err
	}
	return sym, p, nil
}

// loadBars tries the cache, then the provider. When the provider fails it
// falls back to bars already stored for the same window.
func (c *Collector) loadBars(ctx context.Context, sym, period string) ([]model.PriceBar, error) {
	key := cache.BarsKey(sym, period)
	var bars []model.PriceBar
	if err := c.Cache.Get(ctx, key, &bars); err == nil && len(bars) > 0 {
		c.Metrics.RecordCache(true)
		return bars, nil
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	c.Metrics.RecordCache(false)

	bars, err := c.fetch(ctx, sym, period)
	if err != nil {
		stored, loadErr := c.Recorder.LoadBars(ctx, sym, PeriodStart(period, c.clock()), time.Time{})
		if loadErr != nil || len(stored) == 0 {
			return nil, err
		}
		log.Warn().Err(err).Str("symbol", sym).Int("rows", len(stored)).Msg("fetch failed, serving stored bars")
		return stored, nil
	}

	c.persist(ctx, sym, bars)
	c.cacheBars(ctx, sym, period, bars)
	return bars, nil
}

func (c *Collector) fetch(ctx context.Context, sym, period string) ([]model.PriceBar, error) {
	start := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, sym, period)
	c.Metrics.RecordFetch(c.Fetcher.Name(), err == nil, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s from %s: %w", ErrFetch, sym, period, c.Fetcher.Name(), err)
	}
	return bars, nil
}

func (c *Collector) persist(ctx context.Context, sym string, bars []model.PriceBar) {
	if err := c.Recorder.SaveBars(ctx, sym, bars); err != nil {
		log.Warn().Err(err).Str("symbol", sym).Msg("save bars failed")
	}
}

func (c *Collector) cacheBars(ctx context.Context, sym, period string, bars []model.PriceBar) {
	if err := c.Cache.Set(ctx, cache.BarsKey(sym, period), bars, c.CacheTTL); err != nil {
		log.Warn().Err(err).Str("symbol", sym).Msg("cache write failed")
	}
}

// loadInfo returns stored metadata, fetching and storing it on first use.
// Failures fall back to the catalogue name and never fail the analysis.
func (c *Collector) loadInfo(ctx context.Context, sym string) *model.StockInfo {
	key := cache.InfoKey(sym)
	var cached model.StockInfo
	if err := c.Cache.Get(ctx, key, &cached); err == nil {
		return &cached
	}
	if info, err := c.Recorder.GetInfo(ctx, sym); err == nil {
		c.cacheInfo(ctx, info)
		return info
	}

	info, err := c.Fetcher.FetchInfo(ctx, sym)
	if err != nil {
		log.Warn().Err(err).Str("symbol", sym).Msg("fetch info failed")
		info = &model.StockInfo{Symbol: sym}
	} else if err := c.Recorder.SaveInfo(ctx, info); err != nil {
		log.Warn().Err(err).Str("symbol", sym).Msg("save info failed")
	}
	if info.CompanyName == "" {
		info.CompanyName, _ = CompanyName(sym)
	}
	c.cacheInfo(ctx, info)
	return info
}

func (c *Collector) cacheInfo(ctx context.Context, info *model.StockInfo) {
	if err := c.Cache.Set(ctx, cache.InfoKey(info.Symbol), info, c.CacheTTL); err != nil {
		log.Warn().Err(err).Str("symbol", info.Symbol).Msg("cache write failed")
	}
}

func (c *Collector) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
