package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Antonio-Junior1/thermoguard/internal/navigation"
	"github.com/Antonio-Junior1/thermoguard/internal/screen"
)

type field struct {
	key         string
	label       string
	placeholder string
}

var regiaoFields = []field{
	{"nome", "Nome", "Nome da região"},
	{"latitude", "Latitude", "-23.5505"},
	{"longitude", "Longitude", "-46.6333"},
	{"vulnerabilidade", "Vulnerabilidade", "0 a 1 (opcional)"},
}

var sensorFields = []field{
	{"modelo", "Modelo", "Modelo do sensor"},
	{"status", "Status", "ATIVO, INATIVO ou MANUTENCAO"},
	{"dataInstalacao", "Data de instalação", "AAAA-MM-DD"},
	{"idRegiao", "Região (id)", "id da região"},
}

func newInputs(fields []field, values []string) []textinput.Model {
	out := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = f.label + ": "
		in.Placeholder = f.placeholder
		in.SetValue(values[i])
		out[i] = in
	}
	if len(out) > 0 {
		out[0].Focus()
	}
	return out
}

func regiaoInputs(f *screen.RegiaoForm) []textinput.Model {
	return newInputs(regiaoFields, []string{f.Nome, f.Latitude, f.Longitude, f.Vulnerabilidade})
}

func sensorInputs(f *screen.SensorForm) []textinput.Model {
	return newInputs(sensorFields, []string{f.Modelo, f.Status, f.DataInstalacao, f.IDRegiao})
}

// updateForm trata os formulários: tab alterna campos, ctrl+s ou enter no
// último campo salva, esc volta ao menu.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.goBack()
		return m, nil
	case "tab", "down":
		return m.cycleFocus(false), nil
	case "shift+tab", "up":
		return m.cycleFocus(true), nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.focus == len(m.inputs)-1 {
			return m.submitForm()
		}
		return m.cycleFocus(false), nil
	}

	// o erro do campo some quando o usuário volta a digitar
	fields := regiaoFields
	clearErr := func(string) {}
	if m.app.Router.Current() == navigation.ScreenSensorForm {
		fields = sensorFields
		if m.sensorForm != nil {
			clearErr = m.sensorForm.ClearError
		}
	} else if m.regiaoForm != nil {
		clearErr = m.regiaoForm.ClearError
	}
	if m.focus < len(fields) {
		clearErr(fields[m.focus].key)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.busy = true
	m.setStatus("Salvando...")

	if m.app.Router.Current() == navigation.ScreenSensorForm {
		f := m.sensorForm
		f.Modelo = m.inputs[0].Value()
		f.Status = m.inputs[1].Value()
		f.DataInstalacao = m.inputs[2].Value()
		f.IDRegiao = m.inputs[3].Value()
		return m, func() tea.Msg {
			text, err := f.Submit(context.Background())
			return savedMsg{text: text, err: err, fallback: screen.MsgSaveSensor}
		}
	}

	f := m.regiaoForm
	f.Nome = m.inputs[0].Value()
	f.Latitude = m.inputs[1].Value()
	f.Longitude = m.inputs[2].Value()
	f.Vulnerabilidade = m.inputs[3].Value()
	return m, func() tea.Msg {
		text, err := f.Submit(context.Background())
		return savedMsg{text: text, err: err, fallback: screen.MsgSaveRegiao}
	}
}
