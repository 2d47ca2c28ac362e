package export

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRecords() []Record {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pct := calc.New()
	_ = pct.SetMode(calc.ModePercentage)
	_ = pct.SetField(calc.FieldInvestmentValue, "50")

	loss := calc.New()
	_ = loss.SetField(calc.FieldInvestmentValue, "10")
	_ = loss.SetField(calc.FieldCourseCost, "20")

	return []Record{
		{Label: "defaults", Timestamp: ts, Snapshot: calc.New().Snapshot()},
		{Label: "percentage", Timestamp: ts, Snapshot: pct.Snapshot()},
		{Label: "loss", Timestamp: ts, Snapshot: loss.Snapshot()},
	}
}

func fixedExporter(now time.Time) *SnapshotExporter {
	e := NewSnapshotExporter(zap.NewNop())
	e.now = func() time.Time { return now }
	return e
}

func TestSnapshotExportCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	exporter := fixedExporter(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))

	path, err := exporter.Export(testRecords(), ExportOptions{Format: FormatCSV, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stake_plan_20260301_123000.000.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, CSVHeaders(), rows[0])
	assert.Equal(t, []string{
		"defaults", "2026-03-01T12:00:00Z",
		"30.00", "100.00", "amount", "45.00", "15.00", "3",
		"45.00", "30.00", "90.00", "45.00",
	}, rows[1])
	assert.Equal(t, "55.00", rows[2][11])
	assert.Equal(t, "-20.00", rows[3][11])
}

func TestSnapshotExportJSON(t *testing.T) {
	dir := t.TempDir()
	exporter := fixedExporter(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))

	path, err := exporter.Export(testRecords(), ExportOptions{Format: FormatJSON, OutputDir: dir})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Summary ExportSummary `json:"summary"`
		Records []Record      `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 3, decoded.Summary.Count)
	assert.Equal(t, 2, decoded.Summary.Profitable)
	assert.InDelta(t, 65.0, decoded.Summary.TotalStake, 1e-9)
	assert.InDelta(t, 50.0, decoded.Summary.TotalCourseCost, 1e-9)
	assert.InDelta(t, 55.0, decoded.Summary.BestBenefit, 1e-9)
	assert.InDelta(t, -20.0, decoded.Summary.WorstBenefit, 1e-9)
	require.Len(t, decoded.Records, 3)
	assert.Equal(t, calc.ModePercentage, decoded.Records[1].Snapshot.Inputs.InvestmentMode)
}

func TestSnapshotExportErrors(t *testing.T) {
	exporter := NewSnapshotExporter(zap.NewNop())

	_, err := exporter.Export(nil, ExportOptions{Format: FormatCSV, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoSnapshots)

	_, err = exporter.Export(testRecords(), ExportOptions{Format: "xlsx", OutputDir: t.TempDir()})
	assert.Error(t, err)
}

func TestSnapshotExportRemovesFailedFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewSnapshotExporter(zap.NewNop())

	// JSON cannot encode non-finite numbers
	records := testRecords()
	records[0].Snapshot.Derived.PossibleGain = math.Inf(1)

	_, err := exporter.Export(records, ExportOptions{Format: FormatJSON, OutputDir: dir})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
