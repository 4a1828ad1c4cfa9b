//go:build !windows

package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"siliconstats/internal/logger"
)

type unixService struct {
	runFunc RunFunc

	mu       sync.Mutex
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewService wraps runFunc with SIGINT/SIGTERM handling.
func NewService(runFunc RunFunc) Service {
	return &unixService{runFunc: runFunc}
}

// Run cancels runFunc's context on the first signal and returns without
// waiting on the second.
func (s *unixService) Run(ctx context.Context) error {
	log := logger.WithComponent("service")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	done := make(chan error, 1)
	go func() {
		done <- s.runFunc(ctx)
	}()

	log.Info().Bool("managed", s.IsService()).Msg("Service started")

	select {
	case err := <-done:
		return err
	case sig := <-sigs:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		s.Stop()
	}

	select {
	case err := <-done:
		return err
	case sig := <-sigs:
		log.Warn().Str("signal", sig.String()).Msg("Received second signal, forcing exit")
		return nil
	}
}

func (s *unixService) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		s.stopOnce.Do(cancel)
	}
	return nil
}

// IsService is true when the parent is launchd or systemd (pid 1) or
// stdin is not a terminal.
func (s *unixService) IsService() bool {
	if os.Getppid() == 1 {
		return true
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
