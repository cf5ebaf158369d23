package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Register form field order.
const (
	fieldID = iota
	fieldWeight
	fieldColor
	fieldLength
)

type formField struct {
	label string
	input textinput.Model
	err   string
}

// partForm walks the operator through one field at a time. Values already
// confirmed are kept on the form until the station call is made.
type partForm struct {
	fields []*formField
	focus  int

	id     string
	weight float64
	color  string
	length float64
}

func newField(label, placeholder string) *formField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "› "
	input.CharLimit = 64
	input.Width = 32
	return &formField{label: label, input: input}
}

func newRegisterForm() *partForm {
	return &partForm{fields: []*formField{
		newField("Part ID", "e.g. p001"),
		newField("Weight (g)", "95 – 105"),
		newField("Color", "azul / verde"),
		newField("Length (cm)", "10 – 20"),
	}}
}

func newRemoveForm() *partForm {
	return &partForm{fields: []*formField{
		newField("ID of the part to remove", "e.g. p001"),
	}}
}

func (f *partForm) current() *formField {
	return f.fields[f.focus]
}

func (f *partForm) last() bool {
	return f.focus == len(f.fields)-1
}

func (f *partForm) focusCmd() tea.Cmd {
	return f.current().input.Focus()
}

func (f *partForm) next() tea.Cmd {
	f.current().input.Blur()
	f.focus++
	return f.focusCmd()
}

func (f *partForm) update(msg tea.Msg) tea.Cmd {
	field := f.current()
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func (f *partForm) view(title string) string {
	lines := []string{panelTitleStyle.Render("— " + title + " —"), ""}
	for i, field := range f.fields {
		if i > f.focus {
			break
		}
		if i < f.focus {
			lines = append(lines, fmt.Sprintf("  %s: %s", field.label, field.input.Value()))
			continue
		}
		lines = append(lines, "  "+field.label)
		lines = append(lines, "  "+field.input.View())
		if field.err != "" {
			lines = append(lines, "  "+errorStyle.Render("ERROR: "+field.err))
		}
	}
	return strings.Join(lines, "\n")
}

// parseMeasurement accepts a decimal comma as well as a decimal point.
func parseMeasurement(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(raw, 64)
}
