// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/spf13/viper"
)

type Config struct {
	DebugLogging  bool     `mapstructure:"debug_logging"`
	LogFile       string   `mapstructure:"log_file"`
	LogBufferSize int      `mapstructure:"log_buffer_size"`
	ExportDir     string   `mapstructure:"export_dir"`
	ExportFormat  string   `mapstructure:"export_format"`
	PresetsFile   string   `mapstructure:"presets_file"`
	WatchPresets  bool     `mapstructure:"watch_presets"`
	MaxRestarts   int      `mapstructure:"max_restarts"`
	Defaults      Defaults `mapstructure:"defaults"`
}

// Defaults are the engine inputs used at start-up and on reset
type Defaults struct {
	InitialCapital  float64 `mapstructure:"initial_capital"`
	CurrentBenefit  float64 `mapstructure:"current_benefit"`
	InvestmentMode  string  `mapstructure:"investment_mode"`
	InvestmentValue float64 `mapstructure:"investment_value"`
	CourseCost      float64 `mapstructure:"course_cost"`
	Odds            float64 `mapstructure:"odds"`
}

const (
	EnvPrefix = "STAKE_PLANNER"

	DefaultLogFile       = "logs/stake-planner.log"
	DefaultLogBufferSize = 500
	DefaultExportDir     = "exports"
	DefaultExportFormat  = "csv"
	DefaultMaxRestarts   = 3
)

// LoadConfig reads the file at path when it exists. A missing file is not an
// error: built-in defaults and STAKE_PLANNER_* environment variables apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	in := calc.DefaultInputs()

	defaults := map[string]interface{}{
		"debug_logging":   false,
		"log_file":        DefaultLogFile,
		"log_buffer_size": DefaultLogBufferSize,
		"export_dir":      DefaultExportDir,
		"export_format":   DefaultExportFormat,
		"presets_file":    "",
		"watch_presets":   false,
		"max_restarts":    DefaultMaxRestarts,

		"defaults.initial_capital":  in.InitialCapital,
		"defaults.current_benefit":  in.CurrentBenefit,
		"defaults.investment_mode":  string(in.InvestmentMode),
		"defaults.investment_value": in.InvestmentValue,
		"defaults.course_cost":      in.CourseCost,
		"defaults.odds":             in.Odds,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.LogBufferSize <= 0 {
		return errors.New("invalid log_buffer_size")
	}
	if cfg.MaxRestarts < 0 {
		return errors.New("invalid max_restarts")
	}
	switch cfg.ExportFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("unsupported export_format %q", cfg.ExportFormat)
	}
	if cfg.WatchPresets && cfg.PresetsFile == "" {
		return errors.New("watch_presets requires presets_file")
	}
	if _, err := calc.ParseMode(cfg.Defaults.InvestmentMode); err != nil {
		return fmt.Errorf("invalid defaults.investment_mode: %w", err)
	}

	d := cfg.Defaults
	numbers := []struct {
		key   string
		value float64
	}{
		{"initial_capital", d.InitialCapital},
		{"current_benefit", d.CurrentBenefit},
		{"investment_value", d.InvestmentValue},
		{"course_cost", d.CourseCost},
		{"odds", d.Odds},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return fmt.Errorf("invalid defaults.%s: %v is not a finite number", n.key, n.value)
		}
	}
	return nil
}

// Inputs converts the configured defaults into engine inputs
func (d Defaults) Inputs() calc.Inputs {
	return calc.Inputs{
		InitialCapital:  d.InitialCapital,
		CurrentBenefit:  d.CurrentBenefit,
		InvestmentMode:  calc.Mode(d.InvestmentMode),
		InvestmentValue: d.InvestmentValue,
		CourseCost:      d.CourseCost,
		Odds:            d.Odds,
	}
}
