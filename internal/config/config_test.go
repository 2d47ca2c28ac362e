// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validConfigJSON = `{
    "debug_logging": true,
    "log_file": "tmp/planner.log",
    "log_buffer_size": 50,
    "export_dir": "out",
    "export_format": "json",
    "presets_file": "presets.yaml",
    "watch_presets": true,
    "defaults": {
        "initial_capital": 200,
        "current_benefit": 80,
        "investment_mode": "percentage",
        "investment_value": 25,
        "course_cost": 5,
        "odds": 2.5
    }
}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "Valid JSON config",
			file:    "config.json",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DebugLogging)
				assert.Equal(t, "tmp/planner.log", cfg.LogFile)
				assert.Equal(t, 50, cfg.LogBufferSize)
				assert.Equal(t, "json", cfg.ExportFormat)
				assert.True(t, cfg.WatchPresets)
				assert.Equal(t, DefaultMaxRestarts, cfg.MaxRestarts)
				assert.Equal(t, calc.Inputs{
					InitialCapital:  200,
					CurrentBenefit:  80,
					InvestmentMode:  calc.ModePercentage,
					InvestmentValue: 25,
					CourseCost:      5,
					Odds:            2.5,
				}, cfg.Defaults.Inputs())
			},
		},
		{
			name:    "Partial YAML config keeps defaults",
			file:    "config.yaml",
			content: "export_dir: reports\ndefaults:\n  odds: 4\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "reports", cfg.ExportDir)
				assert.Equal(t, DefaultExportFormat, cfg.ExportFormat)
				in := cfg.Defaults.Inputs()
				assert.Equal(t, 4.0, in.Odds)
				assert.Equal(t, 45.0, in.InvestmentValue)
				assert.Equal(t, calc.ModeAmount, in.InvestmentMode)
			},
		},
		{
			name:    "Unknown export format",
			file:    "config.json",
			content: `{"export_format": "xlsx"}`,
			wantErr: true,
		},
		{
			name:    "Unknown default mode",
			file:    "config.json",
			content: `{"defaults": {"investment_mode": "kelly"}}`,
			wantErr: true,
		},
		{
			name:    "NaN default odds",
			file:    "config.yaml",
			content: "defaults:\n  odds: .nan\n",
			wantErr: true,
		},
		{
			name:    "Infinite default course cost",
			file:    "config.yaml",
			content: "defaults:\n  course_cost: .inf\n",
			wantErr: true,
		},
		{
			name:    "Watch without presets file",
			file:    "config.json",
			content: `{"watch_presets": true}`,
			wantErr: true,
		},
		{
			name:    "Invalid buffer size",
			file:    "config.json",
			content: `{"log_buffer_size": 0}`,
			wantErr: true,
		},
		{
			name:    "Malformed JSON",
			file:    "config.json",
			content: `{"log_file": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.False(t, cfg.DebugLogging)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, DefaultLogBufferSize, cfg.LogBufferSize)
	assert.Equal(t, calc.DefaultInputs(), cfg.Defaults.Inputs())
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("STAKE_PLANNER_EXPORT_FORMAT", "json")
	t.Setenv("STAKE_PLANNER_DEFAULTS_ODDS", "1.75")

	path := writeConfig(t, "config.json", `{"export_format": "csv"}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Equal(t, 1.75, cfg.Defaults.Odds)
}
