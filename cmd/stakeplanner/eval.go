package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/rovshanmuradov/stake-planner/internal/config"
	"github.com/rovshanmuradov/stake-planner/internal/export"
	"github.com/rovshanmuradov/stake-planner/internal/logger"
	"github.com/rovshanmuradov/stake-planner/internal/preset"
	"github.com/rovshanmuradov/stake-planner/internal/ui/screen"
	"github.com/rovshanmuradov/stake-planner/internal/ui/style"
	"go.uber.org/zap"
)

const defaultsLabel = "defaults"

// evaluate computes one record per preset, or a single record for the
// configured defaults when no presets file is set
func evaluate(cfg *config.Config, log *zap.Logger) ([]export.Record, error) {
	now := time.Now()

	if cfg.PresetsFile == "" {
		snap := calc.NewWithInputs(cfg.Defaults.Inputs()).Snapshot()
		return []export.Record{{Label: defaultsLabel, Timestamp: now, Snapshot: snap}}, nil
	}

	presets, err := preset.Load(cfg.PresetsFile)
	if err != nil {
		return nil, err
	}
	log.Info("Presets loaded", zap.Int("count", len(presets)), zap.String("file", cfg.PresetsFile))

	records := make([]export.Record, 0, len(presets))
	for _, p := range presets {
		snap, err := p.Evaluate()
		if err != nil {
			return nil, err
		}
		log.Info("Preset evaluated",
			zap.String("preset", p.Name),
			zap.Float64("stake", snap.Derived.InvestmentCostForBet),
			zap.Float64("gain", snap.Derived.PossibleGain),
			zap.Float64("benefit", snap.Derived.PossibleBenefit))
		records = append(records, export.Record{Label: p.Name, Timestamp: now, Snapshot: snap})
	}
	return records, nil
}

// renderTable draws the evaluated records as a table
func renderTable(records []export.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		in, d := r.Snapshot.Inputs, r.Snapshot.Derived
		rows = append(rows, []string{
			r.Label,
			string(in.InvestmentMode),
			screen.FormatMoney(d.TotalInvestmentAllowed),
			screen.FormatMoney(d.InvestmentCostForBet),
			fmt.Sprintf("%g", in.Odds),
			screen.FormatMoney(d.PossibleGain),
			screen.FormatMoney(d.PossibleBenefit),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.MutedStyle).
		Headers("Preset", "Modo", "Permitido", "Apuesta", "Cuota", "Ganancia", "Beneficio Neto").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.ResultLabelStyle.Bold(true).Padding(0, 1)
			}
			if col == 6 && records[row].Snapshot.Derived.PossibleBenefit < 0 {
				return style.LossStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// runEval is the headless mode: evaluate, print, optionally export
func runEval(cfg *config.Config, doExport bool, out io.Writer) error {
	log, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	return evalWith(cfg, doExport, out, log)
}

func evalWith(cfg *config.Config, doExport bool, out io.Writer, log *zap.Logger) error {
	records, err := evaluate(cfg, log)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, renderTable(records)); err != nil {
		return err
	}

	if !doExport {
		return nil
	}
	_, err = export.NewSnapshotExporter(log).Export(records, export.ExportOptions{
		Format:    export.ExportFormat(cfg.ExportFormat),
		OutputDir: cfg.ExportDir,
	})
	return err
}
