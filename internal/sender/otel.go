package sender

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
	"siliconstats/internal/telemetry"
)

const meterName = "siliconstats"

type gauge struct {
	metric     telemetry.Metric
	name, unit string
	instrument metric.Float64ObservableGauge
}

// OTelSender exposes the latest report as observable gauges. The reader
// pulls values on its own schedule, so Send only records the report.
type OTelSender struct {
	latest   *Latest
	provider *sdkmetric.MeterProvider
	gauges   []gauge
	memTotal metric.Float64ObservableGauge
}

// NewOTelSender builds a meter provider with the configured exporter.
func NewOTelSender(ctx context.Context, cfg config.OTelConfig, version string) (*OTelSender, error) {
	exporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes("",
			semconv.ServiceName(meterName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	log := logger.WithComponent("otel-sender")
	log.Info().
		Str("exporter", cfg.Exporter).
		Str("endpoint", cfg.Endpoint).
		Dur("interval", cfg.Interval).
		Msg("OpenTelemetry exporter initialized")

	return newOTelSender(sdkmetric.NewPeriodicReader(exporter, readerOpts...), res)
}

func newMetricExporter(ctx context.Context, cfg config.OTelConfig) (sdkmetric.Exporter, error) {
	switch cfg.Exporter {
	case "", "stdout":
		return stdoutmetric.New()
	case "otlphttp":
		var opts []otlpmetrichttp.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown exporter type: %s", cfg.Exporter)
	}
}

func newOTelSender(reader sdkmetric.Reader, res *resource.Resource) (*OTelSender, error) {
	opts := []sdkmetric.Option{sdkmetric.WithReader(reader)}
	if res != nil {
		opts = append(opts, sdkmetric.WithResource(res))
	}
	provider := sdkmetric.NewMeterProvider(opts...)
	meter := provider.Meter(meterName)

	s := &OTelSender{
		latest:   NewLatest(),
		provider: provider,
		gauges: []gauge{
			{metric: telemetry.CPUTemp, name: "siliconstats.cpu.temperature", unit: "Cel"},
			{metric: telemetry.GPUTemp, name: "siliconstats.gpu.temperature", unit: "Cel"},
			{metric: telemetry.CPULoad, name: "siliconstats.cpu.utilization", unit: "%"},
			{metric: telemetry.GPULoad, name: "siliconstats.gpu.utilization", unit: "%"},
			{metric: telemetry.Memory, name: "siliconstats.memory.used", unit: "GiBy"},
			{metric: telemetry.Battery, name: "siliconstats.battery.charge", unit: "%"},
		},
	}

	observables := make([]metric.Observable, 0, len(s.gauges)+1)
	for i := range s.gauges {
		g := &s.gauges[i]
		inst, err := meter.Float64ObservableGauge(g.name,
			metric.WithDescription(g.metric.Label()),
			metric.WithUnit(g.unit),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gauge %s: %w", g.name, err)
		}
		g.instrument = inst
		observables = append(observables, inst)
	}

	var err error
	s.memTotal, err = meter.Float64ObservableGauge("siliconstats.memory.total",
		metric.WithDescription("Physical Memory"),
		metric.WithUnit("GiBy"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory total gauge: %w", err)
	}
	observables = append(observables, s.memTotal)

	_, err = meter.RegisterCallback(s.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("failed to register gauge callback: %w", err)
	}
	return s, nil
}

func (s *OTelSender) observe(_ context.Context, o metric.Observer) error {
	r := s.latest.Get()
	if r == nil {
		return nil
	}
	attrs := metric.WithAttributes(
		attribute.String("host.name", r.Hostname),
		attribute.String("agent.id", r.AgentID),
	)
	for _, g := range s.gauges {
		if v, ok := r.Snapshot.Value(g.metric); ok {
			o.ObserveFloat64(g.instrument, v, attrs)
		}
	}
	if r.Snapshot.Memory != nil {
		o.ObserveFloat64(s.memTotal, r.Snapshot.Memory.TotalGB, attrs)
	}
	return nil
}

// Send records the report for the next collection.
func (s *OTelSender) Send(ctx context.Context, r *Report) error {
	return s.latest.Send(ctx, r)
}

// Close exports pending data and shuts the provider down.
func (s *OTelSender) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.provider.Shutdown(ctx)
}
