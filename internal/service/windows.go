//go:build windows

package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sys/windows/svc"

	"siliconstats/internal/logger"
)

const stopTimeout = 30 * time.Second

type windowsService struct {
	runFunc RunFunc

	mu       sync.Mutex
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewService wraps runFunc as a Windows service handler. Interactive runs
// call runFunc directly.
func NewService(runFunc RunFunc) Service {
	return &windowsService{runFunc: runFunc}
}

func (s *windowsService) Run(ctx context.Context) error {
	if !s.IsService() {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		s.setCancel(cancel)
		return s.runFunc(ctx)
	}
	return svc.Run(Name, s)
}

func (s *windowsService) setCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *windowsService) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		s.stopOnce.Do(cancel)
	}
	return nil
}

func (s *windowsService) IsService() bool {
	isService, err := svc.IsWindowsService()
	return err == nil && isService
}

// Execute implements svc.Handler.
func (s *windowsService) Execute(_ []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	log := logger.WithComponent("service")
	const accepted = svc.AcceptStop | svc.AcceptShutdown

	changes <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.setCancel(cancel)

	done := make(chan error, 1)
	go func() {
		done <- s.runFunc(ctx)
	}()

	changes <- svc.Status{State: svc.Running, Accepts: accepted}
	log.Info().Msg("Windows service started")

	for {
		select {
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				changes <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				log.Info().Msg("Received stop request from service control manager")
				changes <- svc.Status{State: svc.StopPending}
				s.Stop()
				select {
				case <-done:
				case <-time.After(stopTimeout):
					log.Warn().Dur("timeout", stopTimeout).Msg("Agent did not stop in time")
				}
				changes <- svc.Status{State: svc.Stopped}
				return false, 0
			default:
				log.Warn().Int("cmd", int(c.Cmd)).Msg("Unexpected service control command")
			}

		case err := <-done:
			changes <- svc.Status{State: svc.Stopped}
			if err != nil {
				log.Error().Err(err).Msg("Agent exited with error")
				return true, 1
			}
			return false, 0
		}
	}
}
