// internal/calc/types.go
package calc

import (
	"errors"
	"fmt"
)

// Mode selects how InvestmentValue is interpreted
type Mode string

const (
	ModeAmount     Mode = "amount"
	ModePercentage Mode = "percentage"
)

var (
	ErrUnknownField = errors.New("unknown input field")
	ErrUnknownMode  = errors.New("unknown investment mode")
)

// ParseMode converts a raw mode name into a Mode
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeAmount, ModePercentage:
		return Mode(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	return m == ModeAmount || m == ModePercentage
}

// Field names an editable input of the engine
type Field string

const (
	FieldInitialCapital  Field = "initialCapital"
	FieldCurrentBenefit  Field = "currentBenefit"
	FieldInvestmentMode  Field = "investmentMode"
	FieldInvestmentValue Field = "investmentValue"
	FieldCourseCost      Field = "courseCost"
	FieldOdds            Field = "odds"
)

// NumericFields lists the fields edited as free text, in display order
var NumericFields = []Field{
	FieldInitialCapital,
	FieldCurrentBenefit,
	FieldInvestmentValue,
	FieldCourseCost,
	FieldOdds,
}

// Inputs holds the user-editable values
type Inputs struct {
	InitialCapital  float64 `json:"initialCapital" yaml:"initialCapital"` // display only
	CurrentBenefit  float64 `json:"currentBenefit" yaml:"currentBenefit"`
	InvestmentMode  Mode    `json:"investmentMode" yaml:"investmentMode"`
	InvestmentValue float64 `json:"investmentValue" yaml:"investmentValue"`
	CourseCost      float64 `json:"courseCost" yaml:"courseCost"`
	Odds            float64 `json:"odds" yaml:"odds"`
}

// Value returns the numeric value stored for a field
func (in Inputs) Value(f Field) (float64, error) {
	switch f {
	case FieldInitialCapital:
		return in.InitialCapital, nil
	case FieldCurrentBenefit:
		return in.CurrentBenefit, nil
	case FieldInvestmentValue:
		return in.InvestmentValue, nil
	case FieldCourseCost:
		return in.CourseCost, nil
	case FieldOdds:
		return in.Odds, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
}

// Derived holds the values recomputed from Inputs. Never edited directly.
type Derived struct {
	TotalInvestmentAllowed float64 `json:"totalInvestmentAllowed"`
	InvestmentCostForBet   float64 `json:"investmentCostForBet"`
	PossibleGain           float64 `json:"possibleGain"`
	PossibleBenefit        float64 `json:"possibleBenefit"`
}

// Snapshot is a read-only copy of the engine state handed to presentation
type Snapshot struct {
	Inputs  Inputs  `json:"inputs"`
	Derived Derived `json:"derived"`
}

// DefaultInputs returns the values a fresh engine starts with
func DefaultInputs() Inputs {
	return Inputs{
		InitialCapital:  30,
		CurrentBenefit:  100,
		InvestmentMode:  ModeAmount,
		InvestmentValue: 45,
		CourseCost:      15,
		Odds:            3,
	}
}
