package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/jsonc"

	"siliconstats/internal/logger"
	"siliconstats/internal/telemetry"
)

// Default file names, resolved relative to the working directory.
const (
	DefaultConfigFile  = "conf/SiliconStats/SiliconStats.json"
	DefaultMonitorFile = "conf/SiliconStats/Monitor.json"
	DefaultLoggingFile = "conf/SiliconStats/Logging.json"
)

// rawConfig mirrors Config with durations as strings such as "500ms".
type rawConfig struct {
	Agent      AgentConfig    `json:"Agent"`
	SenderType string         `json:"SenderType"`
	Encoding   string         `json:"Encoding"`
	File       FileConfig     `json:"File"`
	Kafka      rawKafkaConfig `json:"Kafka"`
	Redis      rawRedisConfig `json:"Redis"`
	SOCKSProxy SOCKSConfig    `json:"SocksProxy"`
	HTTP       HTTPConfig     `json:"HTTP"`
	OTel       rawOTelConfig  `json:"OTel"`
}

type rawKafkaConfig struct {
	Brokers        []string `json:"Brokers"`
	Topic          string   `json:"Topic"`
	Compression    string   `json:"Compression"`
	RequiredAcks   int      `json:"RequiredAcks"`
	MaxRetries     int      `json:"MaxRetries"`
	RetryBackoff   string   `json:"RetryBackoff"`
	FlushFrequency string   `json:"FlushFrequency"`
	FlushMessages  int      `json:"FlushMessages"`
	BatchSize      int      `json:"BatchSize"`
	Timeout        string   `json:"Timeout"`
	EnableTLS      bool     `json:"EnableTLS"`
	TLSCertFile    string   `json:"TLSCertFile"`
	TLSKeyFile     string   `json:"TLSKeyFile"`
	TLSCAFile      string   `json:"TLSCAFile"`
	SASLEnabled    bool     `json:"SASLEnabled"`
	SASLMechanism  string   `json:"SASLMechanism"`
	SASLUser       string   `json:"SASLUser"`
	SASLPassword   string   `json:"SASLPassword"`
}

type rawRedisConfig struct {
	Address   string `json:"Address"`
	Password  string `json:"Password"`
	DB        int    `json:"DB"`
	KeyPrefix string `json:"KeyPrefix"`
	Channel   string `json:"Channel"`
	TTL       string `json:"TTL"`
}

type rawOTelConfig struct {
	Enabled  bool   `json:"Enabled"`
	Exporter string `json:"Exporter"`
	Endpoint string `json:"Endpoint"`
	Insecure bool   `json:"Insecure"`
	Interval string `json:"Interval"`
}

type rawMonitorConfig struct {
	Interval string                  `json:"Interval"`
	Metrics  map[string]MetricConfig `json:"Metrics"`
}

// unmarshal accepts JSON with comments and trailing commas.
func unmarshal(data []byte, v any) error {
	return json.Unmarshal(jsonc.ToJSON(data), v)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s duration: %s is negative", field, s)
	}
	return d, nil
}

// Load reads SiliconStats.json.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses SiliconStats.json content over the defaults.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	parsed, err := convertRawConfig(&raw)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Merge(parsed)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func convertRawConfig(raw *rawConfig) (*Config, error) {
	cfg := &Config{
		Agent:      raw.Agent,
		SenderType: raw.SenderType,
		Encoding:   raw.Encoding,
		File:       raw.File,
		SOCKSProxy: raw.SOCKSProxy,
		HTTP:       raw.HTTP,
		Kafka: KafkaConfig{
			Brokers:       raw.Kafka.Brokers,
			Topic:         raw.Kafka.Topic,
			Compression:   raw.Kafka.Compression,
			RequiredAcks:  raw.Kafka.RequiredAcks,
			MaxRetries:    raw.Kafka.MaxRetries,
			FlushMessages: raw.Kafka.FlushMessages,
			BatchSize:     raw.Kafka.BatchSize,
			EnableTLS:     raw.Kafka.EnableTLS,
			TLSCertFile:   raw.Kafka.TLSCertFile,
			TLSKeyFile:    raw.Kafka.TLSKeyFile,
			TLSCAFile:     raw.Kafka.TLSCAFile,
			SASLEnabled:   raw.Kafka.SASLEnabled,
			SASLMechanism: raw.Kafka.SASLMechanism,
			SASLUser:      raw.Kafka.SASLUser,
			SASLPassword:  raw.Kafka.SASLPassword,
		},
		Redis: RedisConfig{
			Address:   raw.Redis.Address,
			Password:  raw.Redis.Password,
			DB:        raw.Redis.DB,
			KeyPrefix: raw.Redis.KeyPrefix,
			Channel:   raw.Redis.Channel,
		},
		OTel: OTelConfig{
			Enabled:  raw.OTel.Enabled,
			Exporter: raw.OTel.Exporter,
			Endpoint: raw.OTel.Endpoint,
			Insecure: raw.OTel.Insecure,
		},
	}

	var err error
	if cfg.Kafka.RetryBackoff, err = parseDuration("Kafka.RetryBackoff", raw.Kafka.RetryBackoff); err != nil {
		return nil, err
	}
	if cfg.Kafka.FlushFrequency, err = parseDuration("Kafka.FlushFrequency", raw.Kafka.FlushFrequency); err != nil {
		return nil, err
	}
	if cfg.Kafka.Timeout, err = parseDuration("Kafka.Timeout", raw.Kafka.Timeout); err != nil {
		return nil, err
	}
	if cfg.Redis.TTL, err = parseDuration("Redis.TTL", raw.Redis.TTL); err != nil {
		return nil, err
	}
	if cfg.OTel.Interval, err = parseDuration("OTel.Interval", raw.OTel.Interval); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.SenderType {
	case SenderFile, SenderKafka, SenderRedis, SenderNone:
	default:
		return fmt.Errorf("unknown SenderType %q", c.SenderType)
	}
	switch c.Encoding {
	case EncodingJSON, EncodingCBOR:
	default:
		return fmt.Errorf("unknown Encoding %q", c.Encoding)
	}
	switch c.File.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown File.Format %q", c.File.Format)
	}
	if c.OTel.Enabled {
		switch c.OTel.Exporter {
		case "stdout", "otlphttp":
		default:
			return fmt.Errorf("unknown OTel.Exporter %q", c.OTel.Exporter)
		}
	}
	return nil
}

// LoadMonitor reads Monitor.json.
func LoadMonitor(path string) (*MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read monitor config file: %w", err)
	}
	return ParseMonitor(data)
}

// ParseMonitor parses Monitor.json content over the defaults.
func ParseMonitor(data []byte) (*MonitorConfig, error) {
	var raw rawMonitorConfig
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse monitor config JSON: %w", err)
	}

	interval, err := parseDuration("Interval", raw.Interval)
	if err != nil {
		return nil, err
	}
	for name := range raw.Metrics {
		if _, err := telemetry.ParseMetric(name); err != nil {
			log := logger.WithComponent("config")
			log.Warn().Str("metric", name).Msg("Ignoring unknown metric in monitor config")
		}
	}

	mc := DefaultMonitorConfig()
	mc.Merge(&MonitorConfig{Interval: interval, Metrics: raw.Metrics})
	return mc, nil
}

// LoadLogging reads Logging.json.
func LoadLogging(path string) (*logger.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read logging config file: %w", err)
	}
	return ParseLogging(data)
}

// ParseLogging parses Logging.json content over the defaults.
func ParseLogging(data []byte) (*logger.Config, error) {
	var parsed logger.Config
	if err := unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse logging config JSON: %w", err)
	}

	lc := logger.DefaultConfig()
	setString(&lc.Level, parsed.Level)
	setString(&lc.FilePath, parsed.FilePath)
	setInt(&lc.MaxSizeMB, parsed.MaxSizeMB)
	setInt(&lc.MaxBackups, parsed.MaxBackups)
	setInt(&lc.MaxAgeDays, parsed.MaxAgeDays)
	setString(&lc.Format, parsed.Format)
	lc.Compress = parsed.Compress
	lc.Console = parsed.Console
	return &lc, nil
}

// LoadSplit loads the three configuration files.
func LoadSplit(configPath, monitorPath, loggingPath string) (*Config, *MonitorConfig, *logger.Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	mc, err := LoadMonitor(monitorPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load monitor config: %w", err)
	}
	lc, err := LoadLogging(loggingPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load logging config: %w", err)
	}
	return cfg, mc, lc, nil
}

// LoadSplitOrDefault is LoadSplit for optional files: a missing file yields
// its defaults, while an unreadable or malformed one is still an error.
func LoadSplitOrDefault(configPath, monitorPath, loggingPath string) (*Config, *MonitorConfig, *logger.Config, error) {
	cfg := DefaultConfig()
	mc := DefaultMonitorConfig()
	lc := logger.DefaultConfig()

	var err error
	if exists(configPath) {
		if cfg, err = Load(configPath); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if exists(monitorPath) {
		if mc, err = LoadMonitor(monitorPath); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load monitor config: %w", err)
		}
	}
	if exists(loggingPath) {
		parsed, err := LoadLogging(loggingPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load logging config: %w", err)
		}
		lc = *parsed
	}
	return cfg, mc, &lc, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetHostname returns the configured hostname or the system hostname.
func GetHostname(cfg *Config) string {
	if cfg.Agent.Hostname != "" {
		return cfg.Agent.Hostname
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// GetAgentID returns Agent.ID, falling back to the hostname.
func GetAgentID(cfg *Config) string {
	if cfg.Agent.ID != "" {
		return cfg.Agent.ID
	}
	return GetHostname(cfg)
}
