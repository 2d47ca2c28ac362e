package preset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"gopkg.in/yaml.v3"
)

// Preset is a named set of engine inputs. Values stay as raw text so they
// go through the same coercion as keyboard input: "3,5" becomes 3 and an
// empty or non-numeric value becomes 0.
type Preset struct {
	Name            string `yaml:"name"`
	InitialCapital  string `yaml:"initialCapital"`
	CurrentBenefit  string `yaml:"currentBenefit"`
	InvestmentMode  string `yaml:"investmentMode"`
	InvestmentValue string `yaml:"investmentValue"`
	CourseCost      string `yaml:"courseCost"`
	Odds            string `yaml:"odds"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

var ErrNoPresets = errors.New("no presets defined")

// Load reads a presets file
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return Parse(data)
}

// Parse decodes presets from YAML. Every preset needs a unique name and a
// known mode; an omitted mode means amount.
func Parse(data []byte) ([]Preset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, ErrNoPresets
	}

	seen := make(map[string]bool, len(f.Presets))
	for i := range f.Presets {
		p := &f.Presets[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("preset %q: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.InvestmentMode == "" {
			p.InvestmentMode = string(calc.ModeAmount)
		}
		if _, err := calc.ParseMode(p.InvestmentMode); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return f.Presets, nil
}

// Apply pushes every value of the preset into the engine, field by field
func (p Preset) Apply(e *calc.Engine) error {
	if err := e.SetField(calc.FieldInvestmentMode, p.InvestmentMode); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	values := map[calc.Field]string{
		calc.FieldInitialCapital:  p.InitialCapital,
		calc.FieldCurrentBenefit:  p.CurrentBenefit,
		calc.FieldInvestmentValue: p.InvestmentValue,
		calc.FieldCourseCost:      p.CourseCost,
		calc.FieldOdds:            p.Odds,
	}
	for _, f := range calc.NumericFields {
		if err := e.SetField(f, values[f]); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return nil
}

// Evaluate returns the snapshot a fresh engine reaches after applying p
func (p Preset) Evaluate() (calc.Snapshot, error) {
	e := calc.New()
	if err := p.Apply(e); err != nil {
		return calc.Snapshot{}, err
	}
	return e.Snapshot(), nil
}
