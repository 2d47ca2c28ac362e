package screen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/stake-planner/internal/calc"
	"github.com/rovshanmuradov/stake-planner/internal/export"
	"github.com/rovshanmuradov/stake-planner/internal/preset"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
	"github.com/rovshanmuradov/stake-planner/internal/ui/component"
	"github.com/rovshanmuradov/stake-planner/internal/ui/router"
	"github.com/rovshanmuradov/stake-planner/internal/ui/style"
	"go.uber.org/zap"
)

const (
	fieldStake = "investmentCostForBet"

	labelPercentageValue = "Porcentaje del Beneficio a Invertir (%)"
	labelAmountValue     = "Presupuesto Total a Invertir (€)"

	manualLabel = "manual"
)

// Exporter writes snapshot records somewhere and returns where
type Exporter interface {
	Export(records []export.Record, options export.ExportOptions) (string, error)
}

// CalculatorOptions wires the calculator screen to its collaborators
type CalculatorOptions struct {
	Engine        *calc.Engine
	Defaults      calc.Inputs
	Presets       []preset.Preset
	Exporter      Exporter
	ExportOptions export.ExportOptions
	Logger        *zap.Logger
}

// CalculatorScreen is the single interactive view over a calc.Engine.
// Every edit is pushed into the engine immediately and the derived values
// are read back from its snapshot.
type CalculatorScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	engine   *calc.Engine
	defaults calc.Inputs

	form    *component.Form
	helpBar *component.HelpBar

	presets      []preset.Preset
	presetIdx    int
	activePreset string

	exporter   Exporter
	exportOpts export.ExportOptions
	logger     *zap.Logger

	status       string
	statusIsErr  bool
	showFullHelp bool
}

// NewCalculatorScreen creates the calculator screen. The engine is shared,
// so its state outlives the screen across program restarts.
func NewCalculatorScreen(opts CalculatorOptions) *CalculatorScreen {
	if opts.Engine == nil {
		opts.Engine = calc.NewWithInputs(opts.Defaults)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &CalculatorScreen{
		keyMap:     ui.DefaultKeyMap(),
		engine:     opts.Engine,
		defaults:   opts.Defaults,
		presets:    opts.Presets,
		presetIdx:  -1,
		exporter:   opts.Exporter,
		exportOpts: opts.ExportOptions,
		logger:     opts.Logger.Named("calculator"),
	}

	s.initializeForm()
	s.helpBar = component.NewHelpBar().SetKeyBindings(s.keyMap.ShortHelp())
	s.syncForm()

	return s
}

func (s *CalculatorScreen) initializeForm() {
	s.form = component.NewForm().
		AddSection("Situación Actual").
		AddField(string(calc.FieldInitialCapital), component.FieldTypeNumber, "Capital Inicial (€)", "0").
		AddField(string(calc.FieldCurrentBenefit), component.FieldTypeNumber, "Beneficio Actual (€)", "0").
		AddSection("Estrategia de Inversión").
		AddField(string(calc.FieldInvestmentMode), component.FieldTypeToggle, "Modo", "").
		SetFieldOptions(string(calc.FieldInvestmentMode),
			[]string{string(calc.ModePercentage), string(calc.ModeAmount)},
			[]string{"Porcentaje (%)", "Cantidad (€)"}).
		AddField(string(calc.FieldInvestmentValue), component.FieldTypeNumber, labelAmountValue, "0").
		AddSection("Próxima Apuesta").
		AddField(string(calc.FieldCourseCost), component.FieldTypeNumber, "Coste del Curso/Info (€)", "0").
		AddField(fieldStake, component.FieldTypeReadOnly, "Coste Inversión Apuesta (€) (Calculado)", "").
		AddField(string(calc.FieldOdds), component.FieldTypeNumber, "Cuota de la Apuesta", "0")

	for _, f := range calc.NumericFields {
		field := f
		s.form.SetFieldOnChange(string(field), func(raw string) {
			s.setField(field, raw)
		})
	}
	s.form.SetFieldOnChange(string(calc.FieldInvestmentMode), func(raw string) {
		s.setField(calc.FieldInvestmentMode, raw)
	})
}

// setField forwards an edit to the engine. Only programming errors (an
// unknown field or mode) can come back; they are logged, never shown.
func (s *CalculatorScreen) setField(f calc.Field, raw string) {
	if err := s.engine.SetField(f, raw); err != nil {
		s.logger.Error("Rejected field update", zap.String("field", string(f)), zap.Error(err))
		return
	}
	s.refreshDerived()
}

// syncForm copies the engine inputs into the form, e.g. after a reset
func (s *CalculatorScreen) syncForm() {
	in := s.engine.Inputs()
	for _, f := range calc.NumericFields {
		v, _ := in.Value(f)
		s.form.SetFieldValue(string(f), formatInput(v))
	}
	s.form.SetFieldValue(string(calc.FieldInvestmentMode), string(in.InvestmentMode))
	s.refreshDerived()
}

func (s *CalculatorScreen) refreshDerived() {
	snap := s.engine.Snapshot()

	label := labelAmountValue
	if snap.Inputs.InvestmentMode == calc.ModePercentage {
		label = labelPercentageValue
	}
	s.form.SetFieldLabel(string(calc.FieldInvestmentValue), label)
	s.form.SetFieldValue(fieldStake, strconv.FormatFloat(snap.Derived.InvestmentCostForBet, 'f', 2, 64))
}

// Init initializes the calculator screen
func (s *CalculatorScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update handles screen updates
func (s *CalculatorScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Logs):
			return s, func() tea.Msg { return ui.RouterMsg{To: ui.RouteLogs} }

		case key.Matches(msg, s.keyMap.Help):
			s.showFullHelp = !s.showFullHelp
			if s.showFullHelp {
				s.helpBar.SetKeyBindings(s.keyMap.FullHelp())
			} else {
				s.helpBar.SetKeyBindings(s.keyMap.ShortHelp())
			}
			return s, nil

		case key.Matches(msg, s.keyMap.ToggleMode):
			s.toggleMode()
			return s, nil

		case key.Matches(msg, s.keyMap.Reset):
			s.engine.Reset(s.defaults)
			s.activePreset = ""
			s.presetIdx = -1
			s.syncForm()
			s.setStatus("Valores restablecidos", false)
			return s, nil

		case key.Matches(msg, s.keyMap.Export):
			return s, s.exportCmd()

		case key.Matches(msg, s.keyMap.NextPreset):
			s.nextPreset()
			return s, nil
		}

	case ui.PresetsLoadedMsg:
		s.presets = msg.Presets
		s.presetIdx = -1
		s.setStatus(fmt.Sprintf("%d presets cargados", len(msg.Presets)), false)
		return s, nil

	case ui.SuccessMsg:
		s.setStatus(msg.Message, false)
		return s, nil

	case ui.ErrorMsg:
		s.setStatus(fmt.Sprintf("%s: %v", msg.Title, msg.Error), true)
		return s, nil
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *CalculatorScreen) toggleMode() {
	next := calc.ModePercentage
	if s.engine.Inputs().InvestmentMode == calc.ModePercentage {
		next = calc.ModeAmount
	}
	s.setField(calc.FieldInvestmentMode, string(next))
	s.form.SetFieldValue(string(calc.FieldInvestmentMode), string(next))
}

func (s *CalculatorScreen) nextPreset() {
	if len(s.presets) == 0 {
		s.setStatus("No hay presets cargados", true)
		return
	}

	s.presetIdx = (s.presetIdx + 1) % len(s.presets)
	p := s.presets[s.presetIdx]
	if err := p.Apply(s.engine); err != nil {
		s.logger.Error("Failed to apply preset", zap.String("preset", p.Name), zap.Error(err))
		s.setStatus(fmt.Sprintf("Preset %q no aplicable", p.Name), true)
		return
	}

	s.activePreset = p.Name
	s.syncForm()
	s.setStatus(fmt.Sprintf("Preset %q (%d/%d)", p.Name, s.presetIdx+1, len(s.presets)), false)
}

// exportCmd captures the current snapshot and writes it off the update loop
func (s *CalculatorScreen) exportCmd() tea.Cmd {
	if s.exporter == nil {
		s.setStatus("Exportación deshabilitada", true)
		return nil
	}

	label := s.activePreset
	if label == "" {
		label = manualLabel
	}
	record := export.Record{Label: label, Timestamp: time.Now(), Snapshot: s.engine.Snapshot()}
	exporter, opts := s.exporter, s.exportOpts

	return func() tea.Msg {
		path, err := exporter.Export([]export.Record{record}, opts)
		if err != nil {
			return ui.ErrorMsg{Title: "Error al exportar", Error: err}
		}
		return ui.SuccessMsg{Title: "Exportado", Message: "Exportado a " + path}
	}
}

func (s *CalculatorScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusIsErr = isErr
}

// View renders the calculator screen
func (s *CalculatorScreen) View() string {
	width := style.AdaptiveWidth(s.width, 72)

	header := lipgloss.JoinVertical(lipgloss.Center,
		style.TitleStyle.Render("Gestor de Inversiones"),
		style.SubtitleStyle.Render("Calcula la rentabilidad de tus apuestas"),
	)
	if s.activePreset != "" {
		header = lipgloss.JoinVertical(lipgloss.Center, header,
			style.MutedStyle.Render("Preset: "+s.activePreset))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, header))
	b.WriteString("\n")
	b.WriteString(s.form.SetWidth(width).View())
	b.WriteString("\n")
	b.WriteString(s.renderResults(width))
	b.WriteString("\n")

	if s.status != "" {
		if s.statusIsErr {
			b.WriteString(style.ErrorStyle.Render(s.status))
		} else {
			b.WriteString(style.SuccessStyle.Render(s.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.helpBar.SetWidth(width).View())
	return b.String()
}

func (s *CalculatorScreen) renderResults(width int) string {
	d := s.engine.Derived()

	row := func(label string, v float64) string {
		valueStyle := style.ProfitStyle
		if v < 0 {
			valueStyle = style.LossStyle
		}
		return style.ResultLabelStyle.Render(label) + " " + valueStyle.Render(FormatMoney(v))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		style.SectionTitleStyle.Render("Resultados Potenciales"),
		row("Total Permitido:", d.TotalInvestmentAllowed),
		row("Ganancia Posible:", d.PossibleGain),
		row("Beneficio Neto Posible:", d.PossibleBenefit),
	)
	return style.CardStyle.Width(width).Render(content)
}

// SetSize sets the screen dimensions
func (s *CalculatorScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Snapshot exposes the engine state currently on screen
func (s *CalculatorScreen) Snapshot() calc.Snapshot {
	return s.engine.Snapshot()
}

// FormatMoney renders an amount with two decimals and a euro suffix
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
