package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Antonio-Junior1/thermoguard/internal/navigation"
	"github.com/Antonio-Junior1/thermoguard/internal/screen"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

// Ciclo do filtro de status: todos, ATIVO, INATIVO, MANUTENCAO.
var statusCycle = []string{"", sensor.StatusAtivo, sensor.StatusInativo, sensor.StatusManutencao}

func nextStatus(current string) string {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

func (m Model) loadRegioes() tea.Cmd {
	list := m.regiaoList
	return func() tea.Msg {
		return loadedMsg{err: list.Load(context.Background()), fallback: screen.MsgLoadRegioes}
	}
}

func (m Model) loadSensores() tea.Cmd {
	list := m.sensorList
	return func() tea.Msg {
		return loadedMsg{err: list.Load(context.Background()), fallback: screen.MsgLoadDados}
	}
}

// updateSearch trata a digitação da busca. enter/esc saem do modo de busca.
func (m Model) updateSearch(msg tea.KeyMsg, apply func(string)) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.query.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	apply(m.query.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) moveCursor(key string) Model {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	}
	return m
}

func (m Model) updateRegiaoList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg, m.regiaoList.SetQuery)
	}
	visible := m.regiaoList.Visible()
	switch key := msg.String(); key {
	case "esc":
		m.goBack()
	case "up", "k", "down", "j":
		return m.moveCursor(key), nil
	case "/":
		m.searching = true
		cmd := m.query.Focus()
		return m, cmd
	case "r":
		m.busy = true
		m.setStatus("Atualizando...")
		list := m.regiaoList
		return m, func() tea.Msg {
			return loadedMsg{err: list.Refresh(context.Background()), fallback: screen.MsgLoadRegioes}
		}
	case "n":
		return m.open(navigation.ScreenRegiaoForm, nil)
	case "e", "enter":
		if len(visible) > 0 {
			return m.open(navigation.ScreenRegiaoForm, navigation.Params{"regiao": visible[m.cursor]})
		}
	case "d":
		if len(visible) > 0 {
			target := visible[m.cursor]
			list := m.regiaoList
			m.confirm = list.ConfirmDelete(target) + " (s/n)"
			m.onConfirm = func() tea.Cmd {
				return func() tea.Msg {
					err := list.Delete(context.Background(), target.ID)
					return deletedMsg{text: "Região excluída com sucesso", err: err, fallback: screen.MsgDeleteRegiao}
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateSensorList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg, m.sensorList.SetQuery)
	}
	visible := m.sensorList.Visible()
	switch key := msg.String(); key {
	case "esc":
		m.goBack()
	case "up", "k", "down", "j":
		return m.moveCursor(key), nil
	case "/":
		m.searching = true
		cmd := m.query.Focus()
		return m, cmd
	case "s":
		m.sensorList.SetStatus(nextStatus(m.sensorList.Status()))
		m.cursor = 0
	case "r":
		m.busy = true
		m.setStatus("Atualizando...")
		list := m.sensorList
		return m, func() tea.Msg {
			return loadedMsg{err: list.Refresh(context.Background()), fallback: screen.MsgLoadDados}
		}
	case "n":
		return m.open(navigation.ScreenSensorForm, nil)
	case "e", "enter":
		if len(visible) > 0 {
			return m.open(navigation.ScreenSensorForm, navigation.Params{"sensor": visible[m.cursor]})
		}
	case "d":
		if len(visible) > 0 {
			target := visible[m.cursor]
			list := m.sensorList
			m.confirm = list.ConfirmDelete(target) + " (s/n)"
			m.onConfirm = func() tea.Cmd {
				return func() tea.Msg {
					err := list.Delete(context.Background(), target.ID)
					return deletedMsg{text: "Sensor excluído com sucesso", err: err, fallback: screen.MsgDeleteSensor}
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.goBack()
	case "l":
		return m.open(navigation.ScreenLocais, nil)
	case "r":
		m.stats = m.app.Monitor.Stats()
		m.recent = m.app.Monitor.RecentAlerts(recentAlertsOnDashboard)
	}
	return m, nil
}

func (m Model) updateLocais(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		m.goBack()
	case "up", "k", "down", "j":
		return m.moveCursor(key), nil
	case "p":
		return m.open(navigation.ScreenDashboard, nil)
	}
	return m, nil
}
