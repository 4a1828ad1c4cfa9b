package sender

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
	"siliconstats/internal/network"
)

// RedisSender keeps the latest report per agent under a key with a TTL and
// publishes every report on a channel.
type RedisSender struct {
	client *redis.Client
	cfg    config.RedisConfig
	codec  Codec

	mu     sync.RWMutex
	closed bool
}

// NewRedisSender creates a Redis sender. The connection is established
// lazily by the first Send.
func NewRedisSender(cfg config.RedisConfig, socks config.SOCKSConfig, codec Codec) (*RedisSender, error) {
	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	dial, err := network.ContextDialer(socks.Host, socks.Port)
	if err != nil {
		return nil, err
	}
	if dial != nil {
		opts.Dialer = dial
	}

	log := logger.WithComponent("redis-sender")
	log.Info().
		Str("address", cfg.Address).
		Int("db", cfg.DB).
		Str("channel", cfg.Channel).
		Str("encoding", codec.Name()).
		Msg("Redis sender initialized")

	return &RedisSender{client: redis.NewClient(opts), cfg: cfg, codec: codec}, nil
}

// LatestKey is the key holding the latest report for an agent.
func (s *RedisSender) LatestKey(agentID string) string {
	return fmt.Sprintf("%s:%s:latest", s.cfg.KeyPrefix, agentID)
}

// Send stores and publishes the report in one round trip.
func (s *RedisSender) Send(ctx context.Context, r *Report) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	payload, err := s.codec.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.LatestKey(r.AgentID), payload, s.cfg.TTL)
		if s.cfg.Channel != "" {
			p.Publish(ctx, s.cfg.Channel, payload)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write to %s failed: %w", s.cfg.Address, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}
