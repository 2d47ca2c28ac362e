// internal/calc/engine.go
package calc

import "math"

// Engine owns the inputs and keeps the derived values in sync with them.
// It is not safe for concurrent use; the UI drives it from a single goroutine.
type Engine struct {
	inputs  Inputs
	derived Derived
}

// New creates an engine initialised with DefaultInputs
func New() *Engine {
	return NewWithInputs(DefaultInputs())
}

// NewWithInputs creates an engine starting from the given inputs
func NewWithInputs(in Inputs) *Engine {
	e := &Engine{}
	e.Reset(in)
	return e
}

// Reset replaces every input at once and recomputes. Non-finite values are
// stored as 0, the same as unparseable text in SetField.
func (e *Engine) Reset(in Inputs) {
	if !in.InvestmentMode.Valid() {
		in.InvestmentMode = ModeAmount
	}
	in.InitialCapital = Finite(in.InitialCapital)
	in.CurrentBenefit = Finite(in.CurrentBenefit)
	in.InvestmentValue = Finite(in.InvestmentValue)
	in.CourseCost = Finite(in.CourseCost)
	in.Odds = Finite(in.Odds)
	e.inputs = in
	e.Recompute()
}

// SetField stores raw under the named field. Text that is not a number is
// stored as 0. Only an unknown field name is reported.
func (e *Engine) SetField(f Field, raw string) error {
	v := ParseNumber(raw)

	switch f {
	case FieldInitialCapital:
		e.inputs.InitialCapital = v
	case FieldCurrentBenefit:
		e.inputs.CurrentBenefit = v
	case FieldInvestmentValue:
		e.inputs.InvestmentValue = v
	case FieldCourseCost:
		e.inputs.CourseCost = v
	case FieldOdds:
		e.inputs.Odds = v
	case FieldInvestmentMode:
		mode, err := ParseMode(raw)
		if err != nil {
			return err
		}
		return e.SetMode(mode)
	default:
		return ErrUnknownField
	}

	e.Recompute()
	return nil
}

// SetMode switches the investment policy. An unknown mode leaves state untouched.
func (e *Engine) SetMode(m Mode) error {
	if !m.Valid() {
		return ErrUnknownMode
	}
	e.inputs.InvestmentMode = m
	e.Recompute()
	return nil
}

// Recompute refreshes the derived values from the current inputs
func (e *Engine) Recompute() {
	e.derived = Compute(e.inputs)
}

// Inputs returns a copy of the current inputs
func (e *Engine) Inputs() Inputs {
	return e.inputs
}

// Derived returns a copy of the current derived values
func (e *Engine) Derived() Derived {
	return e.derived
}

// Snapshot returns inputs and derived values together
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Inputs: e.inputs, Derived: e.derived}
}

// Compute runs the four-step pipeline. Each step only reads inputs and the
// results of earlier steps, and every result is forced to a finite number.
func Compute(in Inputs) Derived {
	var d Derived

	// 1. money the policy allows this cycle
	if in.InvestmentMode == ModePercentage {
		d.TotalInvestmentAllowed = (in.InvestmentValue / 100) * in.CurrentBenefit
	} else {
		d.TotalInvestmentAllowed = in.InvestmentValue
	}
	d.TotalInvestmentAllowed = Finite(d.TotalInvestmentAllowed)

	// 2. stake left after reserving the course cost, never negative
	if stake := d.TotalInvestmentAllowed - in.CourseCost; stake > 0 {
		d.InvestmentCostForBet = Finite(stake)
	}

	// 3. gross payout on a win
	d.PossibleGain = Finite(d.InvestmentCostForBet * in.Odds)

	// 4. net result on a win after every cost
	totalCost := in.CourseCost + d.InvestmentCostForBet
	d.PossibleBenefit = Finite(d.PossibleGain - totalCost)

	return d
}

// Finite returns x, or 0 when x is NaN or infinite
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
