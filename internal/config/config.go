// Package config loads the agent's JSON configuration files.
package config

import (
	"time"

	"siliconstats/internal/telemetry"
)

// Sender types.
const (
	SenderFile  = "file"
	SenderKafka = "kafka"
	SenderRedis = "redis"
	SenderNone  = "none"
)

// Payload encodings.
const (
	EncodingJSON = "json"
	EncodingCBOR = "cbor"
)

// Config is the root of SiliconStats.json.
type Config struct {
	Agent      AgentConfig `json:"Agent"`
	SenderType string      `json:"SenderType"`
	Encoding   string      `json:"Encoding"`
	File       FileConfig  `json:"File"`
	Kafka      KafkaConfig `json:"Kafka"`
	Redis      RedisConfig `json:"Redis"`
	SOCKSProxy SOCKSConfig `json:"SocksProxy"`
	HTTP       HTTPConfig  `json:"HTTP"`
	OTel       OTelConfig  `json:"OTel"`
}

// AgentConfig identifies this host in reports.
type AgentConfig struct {
	ID       string `json:"ID"`
	Hostname string `json:"Hostname"`
}

// FileConfig configures the file sender.
type FileConfig struct {
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	Console    bool   `json:"Console"`
	Pretty     bool   `json:"Pretty"`
	Format     string `json:"Format"` // "json" or "text"
}

// KafkaConfig configures the Kafka sender.
type KafkaConfig struct {
	Brokers        []string      `json:"Brokers"`
	Topic          string        `json:"Topic"`
	Compression    string        `json:"Compression"`
	RequiredAcks   int           `json:"RequiredAcks"`
	MaxRetries     int           `json:"MaxRetries"`
	RetryBackoff   time.Duration `json:"RetryBackoff"`
	FlushFrequency time.Duration `json:"FlushFrequency"`
	FlushMessages  int           `json:"FlushMessages"`
	BatchSize      int           `json:"BatchSize"`
	Timeout        time.Duration `json:"Timeout"`
	EnableTLS      bool          `json:"EnableTLS"`
	TLSCertFile    string        `json:"TLSCertFile"`
	TLSKeyFile     string        `json:"TLSKeyFile"`
	TLSCAFile      string        `json:"TLSCAFile"`
	SASLEnabled    bool          `json:"SASLEnabled"`
	SASLMechanism  string        `json:"SASLMechanism"`
	SASLUser       string        `json:"SASLUser"`
	SASLPassword   string        `json:"SASLPassword"`
}

// RedisConfig configures the Redis sender.
type RedisConfig struct {
	Address   string        `json:"Address"`
	Password  string        `json:"Password"`
	DB        int           `json:"DB"`
	KeyPrefix string        `json:"KeyPrefix"`
	Channel   string        `json:"Channel"`
	TTL       time.Duration `json:"TTL"`
}

// SOCKSConfig is an optional SOCKS5 proxy for network senders.
type SOCKSConfig struct {
	Host string `json:"Host"`
	Port int    `json:"Port"`
}

// HTTPConfig configures the read-only snapshot API.
type HTTPConfig struct {
	Enabled bool   `json:"Enabled"`
	Address string `json:"Address"`
}

// OTelConfig configures the OpenTelemetry gauge exporter.
type OTelConfig struct {
	Enabled  bool          `json:"Enabled"`
	Exporter string        `json:"Exporter"` // "stdout" or "otlphttp"
	Endpoint string        `json:"Endpoint"`
	Insecure bool          `json:"Insecure"`
	Interval time.Duration `json:"Interval"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SenderType: SenderFile,
		Encoding:   EncodingJSON,
		File: FileConfig{
			FilePath:   "log/SiliconStats/metrics.jsonl",
			MaxSizeMB:  50,
			MaxBackups: 3,
			Format:     "json",
		},
		Kafka: KafkaConfig{
			Brokers:        []string{"localhost:9092"},
			Topic:          "siliconstats",
			Compression:    "snappy",
			RequiredAcks:   1,
			MaxRetries:     3,
			RetryBackoff:   100 * time.Millisecond,
			FlushFrequency: 500 * time.Millisecond,
			FlushMessages:  100,
			BatchSize:      16384,
			Timeout:        10 * time.Second,
		},
		Redis: RedisConfig{
			Address:   "localhost:6379",
			KeyPrefix: "siliconstats",
			Channel:   "siliconstats:snapshots",
			TTL:       time.Minute,
		},
		HTTP: HTTPConfig{
			Address: "127.0.0.1:9477",
		},
		OTel: OTelConfig{
			Exporter: "stdout",
			Endpoint: "localhost:4318",
			Interval: 15 * time.Second,
		},
	}
}

// Merge applies the set fields of other onto c. Booleans are copied as-is
// since their zero value is meaningful.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	setString(&c.Agent.ID, other.Agent.ID)
	setString(&c.Agent.Hostname, other.Agent.Hostname)
	setString(&c.SenderType, other.SenderType)
	setString(&c.Encoding, other.Encoding)

	setString(&c.File.FilePath, other.File.FilePath)
	setInt(&c.File.MaxSizeMB, other.File.MaxSizeMB)
	setInt(&c.File.MaxBackups, other.File.MaxBackups)
	c.File.Console = other.File.Console
	c.File.Pretty = other.File.Pretty
	setString(&c.File.Format, other.File.Format)

	if len(other.Kafka.Brokers) > 0 {
		c.Kafka.Brokers = other.Kafka.Brokers
	}
	setString(&c.Kafka.Topic, other.Kafka.Topic)
	setString(&c.Kafka.Compression, other.Kafka.Compression)
	setInt(&c.Kafka.RequiredAcks, other.Kafka.RequiredAcks)
	setInt(&c.Kafka.MaxRetries, other.Kafka.MaxRetries)
	setDuration(&c.Kafka.RetryBackoff, other.Kafka.RetryBackoff)
	setDuration(&c.Kafka.FlushFrequency, other.Kafka.FlushFrequency)
	setInt(&c.Kafka.FlushMessages, other.Kafka.FlushMessages)
	setInt(&c.Kafka.BatchSize, other.Kafka.BatchSize)
	setDuration(&c.Kafka.Timeout, other.Kafka.Timeout)
	c.Kafka.EnableTLS = other.Kafka.EnableTLS
	setString(&c.Kafka.TLSCertFile, other.Kafka.TLSCertFile)
	setString(&c.Kafka.TLSKeyFile, other.Kafka.TLSKeyFile)
	setString(&c.Kafka.TLSCAFile, other.Kafka.TLSCAFile)
	c.Kafka.SASLEnabled = other.Kafka.SASLEnabled
	setString(&c.Kafka.SASLMechanism, other.Kafka.SASLMechanism)
	setString(&c.Kafka.SASLUser, other.Kafka.SASLUser)
	setString(&c.Kafka.SASLPassword, other.Kafka.SASLPassword)

	setString(&c.Redis.Address, other.Redis.Address)
	setString(&c.Redis.Password, other.Redis.Password)
	setInt(&c.Redis.DB, other.Redis.DB)
	setString(&c.Redis.KeyPrefix, other.Redis.KeyPrefix)
	setString(&c.Redis.Channel, other.Redis.Channel)
	setDuration(&c.Redis.TTL, other.Redis.TTL)

	setString(&c.SOCKSProxy.Host, other.SOCKSProxy.Host)
	setInt(&c.SOCKSProxy.Port, other.SOCKSProxy.Port)

	c.HTTP.Enabled = other.HTTP.Enabled
	setString(&c.HTTP.Address, other.HTTP.Address)

	c.OTel.Enabled = other.OTel.Enabled
	setString(&c.OTel.Exporter, other.OTel.Exporter)
	setString(&c.OTel.Endpoint, other.OTel.Endpoint)
	c.OTel.Insecure = other.OTel.Insecure
	setDuration(&c.OTel.Interval, other.OTel.Interval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

// DefaultInterval is the poll period when Monitor.json does not set one.
const DefaultInterval = 3 * time.Second

// MinInterval keeps a misconfigured interval from spinning the poller.
const MinInterval = 500 * time.Millisecond

// MetricConfig toggles one metric.
type MetricConfig struct {
	Enabled bool `json:"Enabled"`
}

// MonitorConfig is the content of Monitor.json.
type MonitorConfig struct {
	Interval time.Duration           `json:"Interval"`
	Metrics  map[string]MetricConfig `json:"Metrics"`
}

// DefaultMonitorConfig returns the default poll interval and metric set.
func DefaultMonitorConfig() *MonitorConfig {
	mc := &MonitorConfig{
		Interval: DefaultInterval,
		Metrics:  make(map[string]MetricConfig),
	}
	mc.ApplyDefaults()
	return mc
}

// ApplyDefaults adds an entry for every metric missing from the map, using
// the metric's default enabled flag. Existing entries are kept.
func (mc *MonitorConfig) ApplyDefaults() {
	if mc.Metrics == nil {
		mc.Metrics = make(map[string]MetricConfig)
	}
	for _, m := range telemetry.AllMetrics() {
		if _, ok := mc.Metrics[m.Name()]; !ok {
			mc.Metrics[m.Name()] = MetricConfig{Enabled: m.DefaultEnabled()}
		}
	}
	if mc.Interval == 0 {
		mc.Interval = DefaultInterval
	}
}

// Merge overlays other onto mc.
func (mc *MonitorConfig) Merge(other *MonitorConfig) {
	if other == nil {
		return
	}
	if other.Interval != 0 {
		mc.Interval = other.Interval
	}
	for name, m := range other.Metrics {
		mc.Metrics[name] = m
	}
}

// Enabled returns the set of enabled metrics. Unknown names are ignored.
func (mc *MonitorConfig) Enabled() telemetry.MetricSet {
	var set telemetry.MetricSet
	for name, m := range mc.Metrics {
		if !m.Enabled {
			continue
		}
		if metric, err := telemetry.ParseMetric(name); err == nil {
			set = set.With(metric)
		}
	}
	return set
}

// EffectiveInterval returns the interval clamped to MinInterval.
func (mc *MonitorConfig) EffectiveInterval() time.Duration {
	if mc.Interval < MinInterval {
		return MinInterval
	}
	return mc.Interval
}
