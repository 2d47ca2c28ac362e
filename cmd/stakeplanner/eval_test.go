package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/rovshanmuradov/stake-planner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPresets = `
presets:
  - name: default
    initialCapital: 30
    currentBenefit: 100
    investmentMode: amount
    investmentValue: 45
    courseCost: 15
    odds: 3
  - name: half-benefit
    currentBenefit: 100
    investmentMode: percentage
    investmentValue: 50
    courseCost: 10
    odds: 2
  - name: over-budget
    investmentValue: 10
    courseCost: 15
    odds: 3
`

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		ExportDir:    filepath.Join(dir, "exports"),
		ExportFormat: "json",
		Defaults: config.Defaults{
			InitialCapital:  30,
			CurrentBenefit:  100,
			InvestmentMode:  "amount",
			InvestmentValue: 45,
			CourseCost:      15,
			Odds:            3,
		},
	}
}

func TestEvaluateUsesDefaultsWithoutPresets(t *testing.T) {
	records, err := evaluate(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, defaultsLabel, records[0].Label)
	assert.Equal(t, calc.Compute(calc.DefaultInputs()), records[0].Snapshot.Derived)
}

func TestEvaluatePresets(t *testing.T) {
	cfg := testConfig(t)
	cfg.PresetsFile = filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(cfg.PresetsFile, []byte(testPresets), 0644))

	records, err := evaluate(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.InDelta(t, 30, records[0].Snapshot.Derived.InvestmentCostForBet, 1e-9)
	assert.InDelta(t, 30, records[1].Snapshot.Derived.PossibleBenefit, 1e-9)
	assert.Zero(t, records[2].Snapshot.Derived.InvestmentCostForBet)
	assert.InDelta(t, -15, records[2].Snapshot.Derived.PossibleBenefit, 1e-9)
}

func TestEvalWithPrintsTableAndExports(t *testing.T) {
	cfg := testConfig(t)
	cfg.PresetsFile = filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(cfg.PresetsFile, []byte(testPresets), 0644))

	var out bytes.Buffer
	require.NoError(t, evalWith(cfg, true, &out, zap.NewNop()))

	table := out.String()
	for _, want := range []string{"half-benefit", "over-budget", "percentage", "90.00 €", "-15.00 €"} {
		assert.Contains(t, table, want)
	}

	files, err := filepath.Glob(filepath.Join(cfg.ExportDir, "stake_plan_*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestEvalWithMissingPresets(t *testing.T) {
	cfg := testConfig(t)
	cfg.PresetsFile = filepath.Join(t.TempDir(), "missing.yaml")

	var out bytes.Buffer
	assert.Error(t, evalWith(cfg, false, &out, zap.NewNop()))
	assert.Empty(t, out.String())
}

func TestEvalWithNonFiniteDefaultsExportsZeroes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Defaults.Odds = math.NaN()
	cfg.Defaults.CourseCost = math.Inf(1)

	var out bytes.Buffer
	require.NoError(t, evalWith(cfg, true, &out, zap.NewNop()))
	assert.NotContains(t, out.String(), "NaN")
	assert.NotContains(t, out.String(), "Inf")

	files, err := filepath.Glob(filepath.Join(cfg.ExportDir, "stake_plan_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
}
