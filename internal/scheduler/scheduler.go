// Package scheduler drives the telemetry poll loop.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"siliconstats/internal/logger"
	"siliconstats/internal/sender"
	"siliconstats/internal/telemetry"
)

const sendTimeout = 10 * time.Second

// Poller is the part of telemetry.Monitor the scheduler drives.
type Poller interface {
	Prime()
	Poll(enabled telemetry.MetricSet) telemetry.Snapshot
}

// Scheduler polls on a fixed interval from a single goroutine and hands each
// snapshot to the sender. It is the only caller of Poll.
type Scheduler struct {
	poller   Poller
	sender   sender.Sender
	agentID  string
	hostname string
	clock    clock.Clock

	mu       sync.Mutex
	enabled  telemetry.MetricSet
	interval time.Duration
	ticker   *clock.Ticker
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a scheduler using the wall clock.
func New(p Poller, s sender.Sender, agentID, hostname string, enabled telemetry.MetricSet, interval time.Duration) *Scheduler {
	return newWithClock(p, s, agentID, hostname, enabled, interval, clock.New())
}

func newWithClock(p Poller, s sender.Sender, agentID, hostname string, enabled telemetry.MetricSet, interval time.Duration, clk clock.Clock) *Scheduler {
	return &Scheduler{
		poller:   p,
		sender:   s,
		agentID:  agentID,
		hostname: hostname,
		clock:    clk,
		enabled:  enabled,
		interval: interval,
	}
}

// Start primes the CPU baseline and polls every interval until Stop or ctx
// is cancelled. The first snapshot is taken one interval after Start so that
// CPU load covers a full period.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.ticker = s.clock.Ticker(s.interval)
	ticker := s.ticker
	s.mu.Unlock()

	log := logger.WithComponent("scheduler")
	log.Info().
		Dur("interval", s.Interval()).
		Str("metrics", s.Enabled().String()).
		Msg("Starting scheduler")

	s.wg.Add(1)
	go s.run(ctx, ticker)
	return nil
}

// Stop stops the loop and waits for an in-flight poll to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	log := logger.WithComponent("scheduler")
	log.Info().Msg("Stopping scheduler")
	s.wg.Wait()
	log.Info().Msg("Scheduler stopped")
}

// IsRunning returns whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Enabled returns the metrics polled on each tick.
func (s *Scheduler) Enabled() telemetry.MetricSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Interval returns the poll period.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Reconfigure replaces the enabled set and interval. A new interval restarts
// the period from now. Safe to call from the config watcher goroutine.
func (s *Scheduler) Reconfigure(enabled telemetry.MetricSet, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.WithComponent("scheduler")
	if enabled != s.enabled {
		log.Info().
			Str("old", s.enabled.String()).
			Str("new", enabled.String()).
			Msg("Enabled metrics changed")
		s.enabled = enabled
	}
	if interval > 0 && interval != s.interval {
		log.Info().
			Dur("old", s.interval).
			Dur("new", interval).
			Msg("Poll interval changed")
		s.interval = interval
		if s.running && s.ticker != nil {
			s.ticker.Reset(interval)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, ticker *clock.Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()

	s.poller.Prime()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Scheduler) poll(ctx context.Context) {
	log := logger.WithComponent("scheduler")

	start := s.clock.Now()
	snap := s.poller.Poll(s.Enabled())
	report := sender.NewReport(start, s.agentID, s.hostname, snap)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.sender.Send(sendCtx, report); err != nil {
		log.Error().
			Err(err).
			Msg("Failed to send report")
		return
	}

	if e := log.Debug(); e.Enabled() {
		e.Str("present", snap.Present().String()).
			Dur("duration", s.clock.Since(start)).
			Msg("Poll completed")
	}
}
