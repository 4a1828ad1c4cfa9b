// Package cli implements the siliconstats command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"siliconstats/internal/config"
)

var (
	configPath  string
	monitorPath string
	loggingPath string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "siliconstats",
	Short: "SiliconStats: hardware telemetry for Macs",
	Long: `SiliconStats reads CPU and GPU temperatures from the System Management
Controller, CPU and GPU load, memory, and battery state, and ships a
snapshot on a fixed interval to a file, Kafka, Redis, or OpenTelemetry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configPath, "config", config.DefaultConfigFile, "path to main configuration file")
	flags.StringVar(&monitorPath, "monitor", config.DefaultMonitorFile, "path to monitor configuration file")
	flags.StringVar(&loggingPath, "logging", config.DefaultLoggingFile, "path to logging configuration file")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
