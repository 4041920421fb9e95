package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher reloads one symbol's history. Implemented by collector.Collector.
type Refresher interface {
	Refresh(ctx context.Context, symbol, period string) (int, error)
}

// RunResult summarises one pass over the watchlist.
type RunResult struct {
	Refreshed int
	Failed    []string
}

// Scheduler runs the periodic watchlist refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Watchlist []string
	Period    string
	Ctx       context.Context

	mu sync.Mutex // one pass at a time
}

// NewScheduler creates a new Scheduler. The cron spec has a leading seconds field.
func NewScheduler(ctx context.Context, r Refresher, watchlist []string, period string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Watchlist: watchlist,
		Period:    period,
		Ctx:       ctx,
	}
}

// Register adds the refresh job.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow refreshes every watched symbol in order. A failing symbol is logged and skipped.
func (s *Scheduler) RunNow() RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Info().Int("symbols", len(s.Watchlist)).Str("period", s.Period).Msg("running refresh task")
	var res RunResult
	for _, sym := range s.Watchlist {
		if err := s.Ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("refresh task cancelled")
			break
		}
		if _, err := s.Refresher.Refresh(s.Ctx, sym, s.Period); err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("refresh failed")
			res.Failed = append(res.Failed, sym)
			continue
		}
		res.Refreshed++
	}
	log.Info().Int("refreshed", res.Refreshed).Int("failed", len(res.Failed)).Msg("refresh task done")
	return res
}
