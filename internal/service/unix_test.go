//go:build !windows

package service

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"siliconstats/internal/logger"
)

func init() {
	_ = logger.Init(logger.Config{Level: "disabled"})
}

func runAsync(svc Service) <-chan error {
	out := make(chan error, 1)
	go func() { out <- svc.Run(context.Background()) }()
	return out
}

func waitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestUnixService_ReturnsRunError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(func(context.Context) error { return boom })
	if err := waitErr(t, runAsync(svc)); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want boom", err)
	}
}

func TestUnixService_StopCancelsContext(t *testing.T) {
	started := make(chan struct{})
	svc := NewService(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})
	result := runAsync(svc)
	<-started

	svc.Stop()
	svc.Stop()
	if err := waitErr(t, result); err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestUnixService_SIGTERM(t *testing.T) {
	started := make(chan struct{})
	svc := NewService(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	result := runAsync(svc)
	<-started

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("kill: %v", err)
	}
	if err := waitErr(t, result); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
