package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"go.uber.org/zap"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

var ErrNoSnapshots = errors.New("no snapshots to export")

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format    ExportFormat
	OutputDir string
}

// Record is one labelled calculator snapshot
type Record struct {
	Label     string        `json:"label"`
	Timestamp time.Time     `json:"timestamp"`
	Snapshot  calc.Snapshot `json:"snapshot"`
}

// SnapshotExporter writes calculator snapshots to CSV or JSON files
type SnapshotExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSnapshotExporter creates a new snapshot exporter
func NewSnapshotExporter(logger *zap.Logger) *SnapshotExporter {
	return &SnapshotExporter{
		logger: logger,
		now:    time.Now,
	}
}

// Export writes records into a new timestamped file and returns its path
func (se *SnapshotExporter) Export(records []Record, options ExportOptions) (string, error) {
	if len(records) == 0 {
		return "", ErrNoSnapshots
	}

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	exportTime := se.now()
	filename := fmt.Sprintf("stake_plan_%s.%s", exportTime.Format("20060102_150405.000"), options.Format)
	outputPath := filepath.Join(options.OutputDir, filename)

	var err error
	switch options.Format {
	case FormatCSV:
		err = exportToCSV(records, outputPath)
	case FormatJSON:
		err = exportToJSON(records, exportTime, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		// leave no truncated report behind
		if rmErr := os.Remove(outputPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			se.logger.Warn("Failed to remove incomplete export", zap.String("file", outputPath), zap.Error(rmErr))
		}
		return "", err
	}

	se.logger.Info("Snapshots exported",
		zap.String("file", outputPath),
		zap.Int("count", len(records)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// CSVHeaders returns the column names used by CSV exports
func CSVHeaders() []string {
	return []string{
		"label", "timestamp",
		"initial_capital", "current_benefit", "investment_mode", "investment_value", "course_cost", "odds",
		"total_investment_allowed", "investment_cost_for_bet", "possible_gain", "possible_benefit",
	}
}

// ToCSV renders the record in CSVHeaders order, money with two decimals
func (r Record) ToCSV() []string {
	in, d := r.Snapshot.Inputs, r.Snapshot.Derived
	return []string{
		r.Label,
		r.Timestamp.Format(time.RFC3339),
		money(in.InitialCapital),
		money(in.CurrentBenefit),
		string(in.InvestmentMode),
		money(in.InvestmentValue),
		money(in.CourseCost),
		strconv.FormatFloat(in.Odds, 'f', -1, 64),
		money(d.TotalInvestmentAllowed),
		money(d.InvestmentCostForBet),
		money(d.PossibleGain),
		money(d.PossibleBenefit),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func exportToCSV(records []Record, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(r.ToCSV()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportSummary aggregates the exported snapshots
type ExportSummary struct {
	Count           int     `json:"count"`
	Profitable      int     `json:"profitable"`
	TotalStake      float64 `json:"total_stake"`
	TotalCourseCost float64 `json:"total_course_cost"`
	BestBenefit     float64 `json:"best_benefit"`
	WorstBenefit    float64 `json:"worst_benefit"`
}

func calculateSummary(records []Record) ExportSummary {
	summary := ExportSummary{Count: len(records)}

	for i, r := range records {
		d := r.Snapshot.Derived
		summary.TotalStake += d.InvestmentCostForBet
		summary.TotalCourseCost += r.Snapshot.Inputs.CourseCost
		if d.PossibleBenefit > 0 {
			summary.Profitable++
		}
		if i == 0 || d.PossibleBenefit > summary.BestBenefit {
			summary.BestBenefit = d.PossibleBenefit
		}
		if i == 0 || d.PossibleBenefit < summary.WorstBenefit {
			summary.WorstBenefit = d.PossibleBenefit
		}
	}

	return summary
}

func exportToJSON(records []Record, exportTime time.Time, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime time.Time     `json:"export_time"`
		Summary    ExportSummary `json:"summary"`
		Records    []Record      `json:"records"`
	}{
		ExportTime: exportTime,
		Summary:    calculateSummary(records),
		Records:    records,
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
