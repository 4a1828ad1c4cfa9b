package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"siliconstats/internal/config"
	"siliconstats/internal/httpapi"
	"siliconstats/internal/logger"
	"siliconstats/internal/scheduler"
	"siliconstats/internal/sender"
	"siliconstats/internal/service"
	"siliconstats/internal/telemetry"
)

const startupErrorLogDir = "log/SiliconStats"

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the agent until stopped",
	Long: `Run polls telemetry on the Monitor.json interval and delivers every
snapshot to the configured sender. Monitor.json and Logging.json are
reloaded when they change.`,
	Args: cobra.NoArgs,
	RunE: runAgentCmd,
}

// startupFailure records err where an operator will find it and returns it
// for cobra to print.
func startupFailure(err error) error {
	service.ReportStartupError(startupErrorLogDir, err)
	return err
}

func runAgentCmd(cmd *cobra.Command, args []string) error {
	// A service manager starts us in / or System32. An absolute config path
	// (<base>/conf/SiliconStats/SiliconStats.json) names the install base.
	if filepath.IsAbs(configPath) {
		basePath := filepath.Dir(filepath.Dir(filepath.Dir(configPath)))
		if err := os.Chdir(basePath); err != nil {
			return startupFailure(fmt.Errorf("failed to chdir to %s: %w", basePath, err))
		}
	}

	cfg, mc, lc, err := config.LoadSplitOrDefault(configPath, monitorPath, loggingPath)
	if err != nil {
		return startupFailure(err)
	}

	svc := service.NewService(nil)
	if svc.IsService() {
		lc.Console = false
	}
	if err := logger.Init(*lc); err != nil {
		return startupFailure(fmt.Errorf("failed to initialize logger: %w", err))
	}
	defer logger.Close()

	log := logger.WithComponent("main")
	log.Info().
		Str("version", appVersion).
		Str("config", configPath).
		Str("monitor", monitorPath).
		Str("logging", loggingPath).
		Msg("Starting SiliconStats")

	svc = service.NewService(func(ctx context.Context) error {
		return runAgent(ctx, cfg, mc, lc)
	})
	if err := svc.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("Agent exited with error")
		return err
	}

	log.Info().Msg("SiliconStats stopped")
	return nil
}

func runAgent(ctx context.Context, cfg *config.Config, mc *config.MonitorConfig, lc *logger.Config) error {
	log := logger.WithComponent("main")

	agentID := config.GetAgentID(cfg)
	hostname := config.GetHostname(cfg)

	mon := telemetry.NewHost()
	defer mon.Close()
	log.Info().
		Str("agent_id", agentID).
		Str("hostname", hostname).
		Str("temperature_source", mon.TemperatureSource()).
		Msg("Agent initialized")
	if !mon.TemperatureAvailable() {
		log.Warn().Msg("No temperature source available, temperatures will be absent")
	}

	// Logging.json Console is the master switch for console echo.
	cfg.File.Console = lc.Console

	snd, latest, err := sender.NewSender(ctx, cfg, appVersion)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	defer func() {
		log.Info().Msg("Closing sender")
		if err := snd.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing sender")
		}
	}()

	sched := scheduler.New(mon, snd, agentID, hostname, mc.Enabled(), mc.EffectiveInterval())
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	if latest != nil {
		api := httpapi.NewServer(latest, sched.Enabled, appVersion)
		if err := api.Start(cfg.HTTP.Address); err != nil {
			log.Warn().Err(err).Str("address", cfg.HTTP.Address).Msg("HTTP API disabled")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := api.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error stopping HTTP API")
				}
			}()
		}
	}

	stopWatchers := startWatchers(sched)
	defer stopWatchers()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	return nil
}

// startWatchers hot-reloads Monitor.json and Logging.json. Watcher failures
// only disable reload. The returned func stops the started watchers.
func startWatchers(sched *scheduler.Scheduler) func() {
	log := logger.WithComponent("main")
	var mu sync.Mutex
	var stops []func()

	start := func(name string, w *config.FileWatcher, err error) {
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Hot reload disabled")
			return
		}
		stops = append(stops, func() {
			if err := w.Stop(); err != nil {
				log.Error().Err(err).Str("file", name).Msg("Error stopping watcher")
			}
		})
	}

	mw, err := config.NewMonitorWatcher(monitorPath, func(mc *config.MonitorConfig) {
		mu.Lock()
		defer mu.Unlock()
		sched.Reconfigure(mc.Enabled(), mc.EffectiveInterval())
		log.Info().Msg("Monitor configuration updated")
	})
	start(monitorPath, mw, err)

	lw, err := config.NewLoggingWatcher(loggingPath, func(lc *logger.Config) {
		mu.Lock()
		defer mu.Unlock()
		if err := logger.Init(*lc); err != nil {
			log.Error().Err(err).Msg("Failed to apply logging configuration")
			return
		}
		log.Info().Msg("Logging configuration updated")
	})
	start(loggingPath, lw, err)

	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
}
