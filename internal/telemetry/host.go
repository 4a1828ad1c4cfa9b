package telemetry

import (
	"siliconstats/internal/collector"
	"siliconstats/internal/logger"
	"siliconstats/internal/sensor"
	"siliconstats/internal/smc"
)

// NewHost wires the platform readers. Temperatures come from the SMC when
// it can be opened and from the OS sensor interface otherwise.
func NewHost() *Monitor {
	log := logger.WithComponent("telemetry")

	opts := Options{
		CPULoad: collector.NewCPULoadSampler(collector.NewTickSource()),
		GPULoad: collector.NewGPUProber(collector.NewDeviceRegistry()),
		Memory:  collector.NewMemoryReader(collector.NewMemorySource()),
		Battery: collector.NewBatteryReader(collector.NewPowerSourceEnumerator()),
	}

	client := smc.NewClient(smc.NewDriver())
	if client.Open() {
		opts.CPUTemp = sensor.NewResolver("cpu_temp", client, sensor.SMCCPUKeys)
		opts.GPUTemp = sensor.NewResolver("gpu_temp", client, sensor.SMCGPUKeys)
		opts.TemperatureSource = "smc"
		opts.OnClose = client.Close
	} else if hw := sensor.NewHwmonSource(); hw.Covers(sensor.HwmonCPUKeys) || hw.Covers(sensor.HwmonGPUKeys) {
		opts.CPUTemp = sensor.NewResolver("cpu_temp", hw, sensor.HwmonCPUKeys)
		opts.GPUTemp = sensor.NewResolver("gpu_temp", hw, sensor.HwmonGPUKeys)
		opts.TemperatureSource = "hwmon"
	}

	log.Info().
		Str("temperature_source", opts.TemperatureSource).
		Msg("Telemetry readers initialized")
	return New(opts)
}
