package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/stake-planner/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeNumber FieldType = iota
	FieldTypeToggle
	FieldTypeReadOnly
)

// FormField represents a single form field
type FormField struct {
	Name         string
	Label        string
	Section      string
	Type         FieldType
	Value        string
	Options      []string // toggle values
	OptionLabels []string // toggle button captions, same order as Options
	OnChange     func(value string)

	// Internal state
	textInput   textinput.Model
	selectedIdx int
}

func (f *FormField) focusable() bool {
	return f.Type != FieldTypeReadOnly
}

// Form is a column of sections, each holding labelled fields. Edits are
// reported synchronously through each field's OnChange.
type Form struct {
	fields     []FormField
	sections   []string
	section    string
	focusIndex int
	width      int
}

// NewForm creates a new form component
func NewForm() *Form {
	return &Form{focusIndex: -1, width: 48}
}

// AddSection starts a new titled section; following fields belong to it
func (f *Form) AddSection(title string) *Form {
	f.section = title
	f.sections = append(f.sections, title)
	return f
}

// AddField adds a field to the current section
func (f *Form) AddField(name string, fieldType FieldType, label string, placeholder string) *Form {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = f.inputWidth()

	f.fields = append(f.fields, FormField{
		Name:      name,
		Label:     label,
		Section:   f.section,
		Type:      fieldType,
		textInput: ti,
	})

	if f.focusIndex < 0 && f.fields[len(f.fields)-1].focusable() {
		f.focusIndex = len(f.fields) - 1
		f.fields[f.focusIndex].textInput.Focus()
	}
	return f
}

func (f *Form) field(name string) *FormField {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

// SetFieldOptions sets the values and captions of a toggle field
func (f *Form) SetFieldOptions(name string, options, labels []string) *Form {
	if field := f.field(name); field != nil && field.Type == FieldTypeToggle {
		field.Options = options
		field.OptionLabels = labels
		field.selectedIdx = 0
		if len(options) > 0 {
			field.Value = options[0]
		}
	}
	return f
}

// SetFieldValue replaces a field's value without firing OnChange
func (f *Form) SetFieldValue(name, value string) *Form {
	field := f.field(name)
	if field == nil {
		return f
	}

	field.Value = value
	switch field.Type {
	case FieldTypeNumber:
		field.textInput.SetValue(value)
		field.textInput.CursorEnd()
	case FieldTypeToggle:
		for i, opt := range field.Options {
			if opt == value {
				field.selectedIdx = i
			}
		}
	}
	return f
}

// SetFieldLabel changes the label shown above a field
func (f *Form) SetFieldLabel(name, label string) *Form {
	if field := f.field(name); field != nil {
		field.Label = label
	}
	return f
}

// SetFieldOnChange registers the callback run after the user edits a field
func (f *Form) SetFieldOnChange(name string, fn func(string)) *Form {
	if field := f.field(name); field != nil {
		field.OnChange = fn
	}
	return f
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	if field := f.field(name); field != nil {
		return field.Value
	}
	return ""
}

// Focused returns the name of the focused field
func (f *Form) Focused() string {
	if f.focusIndex < 0 {
		return ""
	}
	return f.fields[f.focusIndex].Name
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) *Form {
	f.width = width
	for i := range f.fields {
		f.fields[i].textInput.Width = f.inputWidth()
	}
	return f
}

func (f *Form) inputWidth() int {
	// section border + padding, input border + padding
	if w := f.width - 8; w > 10 {
		return w
	}
	return 10
}

// Init initializes the form
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if f.focusIndex < 0 {
		return f, nil
	}
	field := &f.fields[f.focusIndex]

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down", "enter":
			return f, f.moveFocus(1)
		case "shift+tab", "up":
			return f, f.moveFocus(-1)
		}

		if field.Type == FieldTypeToggle {
			switch msg.String() {
			case "left":
				f.cycleOption(field, -1)
			case "right", " ":
				f.cycleOption(field, 1)
			}
			return f, nil
		}
	}

	if field.Type != FieldTypeNumber {
		return f, nil
	}

	var cmd tea.Cmd
	field.textInput, cmd = field.textInput.Update(msg)
	if v := field.textInput.Value(); v != field.Value {
		field.Value = v
		if field.OnChange != nil {
			field.OnChange(v)
		}
	}
	return f, cmd
}

// moveFocus moves to the next focusable field in direction dir, wrapping around
func (f *Form) moveFocus(dir int) tea.Cmd {
	n := len(f.fields)
	f.fields[f.focusIndex].textInput.Blur()

	next := f.focusIndex
	for i := 0; i < n; i++ {
		next = (next + dir + n) % n
		if f.fields[next].focusable() {
			break
		}
	}
	f.focusIndex = next

	if f.fields[next].Type == FieldTypeNumber {
		return f.fields[next].textInput.Focus()
	}
	return nil
}

func (f *Form) cycleOption(field *FormField, dir int) {
	n := len(field.Options)
	if n == 0 {
		return
	}
	field.selectedIdx = (field.selectedIdx + dir + n) % n
	field.Value = field.Options[field.selectedIdx]
	if field.OnChange != nil {
		field.OnChange(field.Value)
	}
}

// View renders every section as a bordered panel
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	panels := make([]string, 0, len(f.sections))
	for _, section := range f.sections {
		var content strings.Builder
		content.WriteString(style.SectionTitleStyle.Render(section))

		active := false
		for i := range f.fields {
			field := &f.fields[i]
			if field.Section != section {
				continue
			}
			focused := i == f.focusIndex
			active = active || focused

			content.WriteString("\n")
			content.WriteString(f.renderField(field, focused))
		}

		panelStyle := style.SectionStyle
		if active {
			panelStyle = style.ActiveSectionStyle
		}
		panels = append(panels, panelStyle.Width(f.width).Render(content.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (f *Form) renderField(field *FormField, focused bool) string {
	switch field.Type {
	case FieldTypeToggle:
		buttons := make([]string, 0, len(field.Options))
		for i := range field.Options {
			caption := field.Options[i]
			if i < len(field.OptionLabels) {
				caption = field.OptionLabels[i]
			}
			if i == field.selectedIdx {
				buttons = append(buttons, style.ButtonActiveStyle.Render(caption))
			} else {
				buttons = append(buttons, style.ButtonStyle.Render(caption))
			}
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
		if focused {
			row += style.MutedStyle.Render("  ◀ ▶")
		}
		return row + "\n"

	case FieldTypeReadOnly:
		return style.FormLabelStyle.Render(field.Label) + "\n" +
			style.FormReadOnlyStyle.Width(f.inputWidth()+2).Render(field.Value)

	default:
		inputStyle := style.FormInputStyle
		if focused {
			inputStyle = style.FormInputFocusedStyle
		}
		return style.FormLabelStyle.Render(field.Label) + "\n" +
			inputStyle.Width(f.inputWidth()+2).Render(field.textInput.View())
	}
}
