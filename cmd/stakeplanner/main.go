package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/rovshanmuradov/stake-planner/internal/config"
	"github.com/rovshanmuradov/stake-planner/internal/export"
	"github.com/rovshanmuradov/stake-planner/internal/logger"
	"github.com/rovshanmuradov/stake-planner/internal/preset"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
	"github.com/rovshanmuradov/stake-planner/internal/ui/screen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	busSize       = 16
	flushInterval = 2 * time.Second
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	presetsPath := flag.String("presets", "", "Path to presets file (overrides presets_file)")
	evalMode := flag.Bool("eval", false, "Evaluate presets, print a table and exit")
	exportResults := flag.Bool("export", false, "With -eval, also write the results to the export directory")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *presetsPath != "" {
		cfg.PresetsFile = *presetsPath
	}
	if *debug {
		cfg.DebugLogging = true
	}

	if *evalMode {
		if err := runEval(cfg, *exportResults, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "evaluation failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create context with signal handling
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runInteractive(rootCtx, cfg); err != nil {
		log.Fatalf("TUI application failed: %v", err)
	}
}

// runInteractive runs the TUI under crash recovery next to the preset
// watcher. Leaving the UI stops the watcher.
func runInteractive(ctx context.Context, cfg *config.Config) error {
	// The TUI owns stdout, so logs only go to the in-memory buffer and its spill file
	buffer, err := logger.NewLogBuffer(cfg.LogBufferSize, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to init log buffer: %w", err)
	}
	defer buffer.Close()

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, buffer)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	stopFlush := buffer.StartPeriodicFlush(flushInterval, func(err error) {
		fmt.Fprintf(os.Stderr, "log flush failed: %v\n", err)
	})
	defer stopFlush()

	appLogger.Info("Starting stake planner", zap.String("presets", cfg.PresetsFile))

	store := &presetStore{}
	if cfg.PresetsFile != "" {
		presets, err := preset.Load(cfg.PresetsFile)
		if err != nil {
			appLogger.Warn("Presets unavailable", zap.String("file", cfg.PresetsFile), zap.Error(err))
		} else {
			appLogger.Info("Presets loaded", zap.Int("count", len(presets)), zap.String("file", cfg.PresetsFile))
			store.Set(presets)
		}
	}

	// Shared across restarts so a crash does not lose what the user typed
	defaults := cfg.Defaults.Inputs()
	engine := calc.NewWithInputs(defaults)
	exporter := export.NewSnapshotExporter(appLogger)
	bus := ui.NewBus(busSize)

	createUI := func() (tea.Model, []tea.ProgramOption) {
		calculator := screen.NewCalculatorScreen(screen.CalculatorOptions{
			Engine:   engine,
			Defaults: defaults,
			Presets:  store.Get(),
			Exporter: exporter,
			ExportOptions: export.ExportOptions{
				Format:    export.ExportFormat(cfg.ExportFormat),
				OutputDir: cfg.ExportDir,
			},
			Logger: appLogger,
		})
		return NewAppModel(calculator, buffer), []tea.ProgramOption{tea.WithAltScreen()}
	}

	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(groupCtx)

	rh := ui.NewRecoveryHandler(appLogger, cfg.MaxRestarts, createUI)

	g.Go(func() error {
		defer cancel()
		return rh.RunWithRecovery(gCtx)
	})

	// Background messages reach whichever program is alive; a restarted UI
	// picks up presets from the store instead.
	g.Go(func() error {
		bus.Pump(gCtx, func(msg tea.Msg) {
			if !rh.Send(msg) {
				appLogger.Debug("No UI running, bus message dropped")
			}
		})
		return nil
	})

	if cfg.WatchPresets {
		g.Go(func() error {
			err := preset.Watch(gCtx, cfg.PresetsFile, appLogger, func(presets []preset.Preset) {
				store.Set(presets)
				if !bus.Publish(ui.PresetsLoadedMsg{Presets: presets, File: cfg.PresetsFile}) {
					appLogger.Warn("UI bus full, preset reload not delivered")
				}
			})
			// the calculator keeps working without live reload
			if err != nil {
				appLogger.Error("Presets watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	err = g.Wait()
	appLogger.Info("Shutting down stake planner")
	return err
}
