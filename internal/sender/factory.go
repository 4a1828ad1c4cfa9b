package sender

import (
	"context"
	"fmt"
	"strings"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
)

// NewSender builds the sink chain from configuration: the primary sender
// chosen by SenderType, an in-memory Latest store when the HTTP API is
// enabled, and the OpenTelemetry gauges when enabled. The returned Latest
// is nil unless the HTTP API is enabled.
func NewSender(ctx context.Context, cfg *config.Config, version string) (Sender, *Latest, error) {
	log := logger.WithComponent("sender-factory")

	senderType := strings.ToLower(cfg.SenderType)
	if senderType == "" {
		senderType = config.SenderFile
	}

	log.Info().
		Str("sender_type", senderType).
		Str("encoding", cfg.Encoding).
		Bool("http", cfg.HTTP.Enabled).
		Bool("otel", cfg.OTel.Enabled).
		Msg("Creating sender")

	primary, err := newPrimary(senderType, cfg)
	if err != nil {
		return nil, nil, err
	}

	var latest *Latest
	if cfg.HTTP.Enabled {
		latest = NewLatest()
	}

	var otel *OTelSender
	if cfg.OTel.Enabled {
		if otel, err = NewOTelSender(ctx, cfg.OTel, version); err != nil {
			if primary != nil {
				_ = primary.Close()
			}
			return nil, nil, err
		}
	}

	// A nil pointer stored in the interface would defeat NewMulti's nil check.
	senders := []Sender{}
	if primary != nil {
		senders = append(senders, primary)
	}
	if latest != nil {
		senders = append(senders, latest)
	}
	if otel != nil {
		senders = append(senders, otel)
	}
	return NewMulti(senders...), latest, nil
}

func newPrimary(senderType string, cfg *config.Config) (Sender, error) {
	if senderType == config.SenderNone {
		return nil, nil
	}
	codec, err := NewCodec(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	switch senderType {
	case config.SenderFile:
		return NewFileSender(cfg.File)
	case config.SenderKafka:
		return NewKafkaSender(cfg.Kafka, cfg.SOCKSProxy, codec)
	case config.SenderRedis:
		return NewRedisSender(cfg.Redis, cfg.SOCKSProxy, codec)
	default:
		return nil, fmt.Errorf("unknown sender type: %s (supported: file, kafka, redis, none)", senderType)
	}
}
