package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
	"siliconstats/internal/scheduler"
	"siliconstats/internal/sender"
	"siliconstats/internal/telemetry"
)

var (
	onceSample  time.Duration
	onceMetrics string
	onceVerbose bool
)

func init() {
	onceCmd.Flags().DurationVar(&onceSample, "sample", time.Second, "CPU load sampling window")
	onceCmd.Flags().StringVar(&onceMetrics, "metrics", "", "comma-separated metrics to read, or \"all\" (default: Monitor.json)")
	onceCmd.Flags().BoolVarP(&onceVerbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Take one snapshot and print it as JSON",
	Args:  cobra.NoArgs,
	RunE:  runOnce,
}

func runOnce(cmd *cobra.Command, args []string) error {
	level := "warn"
	if onceVerbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Level: level}); err != nil {
		return err
	}
	defer logger.Close()

	cfg, mc, _, err := config.LoadSplitOrDefault(configPath, monitorPath, loggingPath)
	if err != nil {
		return err
	}

	enabled := mc.Enabled()
	if onceMetrics != "" {
		if enabled, err = telemetry.ParseMetricSet(onceMetrics); err != nil {
			return err
		}
	}

	mon := telemetry.NewHost()
	defer mon.Close()

	snap := sampleOnce(mon, enabled, onceSample)
	report := sender.NewReport(time.Now(), config.GetAgentID(cfg), config.GetHostname(cfg), snap)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// sampleOnce primes the CPU baseline, waits one window, and polls.
func sampleOnce(p scheduler.Poller, enabled telemetry.MetricSet, window time.Duration) telemetry.Snapshot {
	p.Prime()
	if window > 0 {
		time.Sleep(window)
	}
	return p.Poll(enabled)
}
