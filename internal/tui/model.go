// Package tui implementa a interface de terminal com Bubble Tea.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Antonio-Junior1/thermoguard/internal/app"
	"github.com/Antonio-Junior1/thermoguard/internal/monitor"
	"github.com/Antonio-Junior1/thermoguard/internal/navigation"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/screen"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

const recentAlertsOnDashboard = 3

type restoredMsg struct{ ok bool }

type loginMsg struct{ err error }

type logoutMsg struct{ err error }

type loadedMsg struct {
	err      error
	fallback string
}

type savedMsg struct {
	text     string
	err      error
	fallback string
}

type deletedMsg struct {
	text     string
	err      error
	fallback string
}

type nearbyMsg struct {
	list []monitor.NearbyLocation
	err  error
}

// Model é o modelo raiz do programa.
type Model struct {
	app *app.App

	width int

	status  string
	isError bool
	busy    bool

	cursor int
	focus  int
	inputs []textinput.Model

	query     textinput.Model
	searching bool

	confirm   string
	onConfirm func() tea.Cmd

	login      *screen.LoginForm
	regiaoList *screen.RegiaoList
	sensorList *screen.SensorList
	regiaoForm *screen.RegiaoForm
	sensorForm *screen.SensorForm

	stats  monitor.Stats
	recent []monitor.Alert
	nearby []monitor.NearbyLocation
}

// New cria o modelo na tela de login.
func New(a *app.App) Model {
	q := textinput.New()
	q.Placeholder = "Buscar..."
	q.Prompt = "/ "

	m := Model{
		app:        a,
		query:      q,
		login:      screen.NewLoginForm(a.Session, a.Router, a.Logger),
		regiaoList: screen.NewRegiaoList(a.Regioes, a.Logger),
		sensorList: screen.NewSensorList(a.Sensores, a.Regioes, a.Logger),
	}
	m.inputs = loginInputs()
	return m
}

// Run executa o programa até o usuário sair.
func Run(a *app.App) error {
	_, err := tea.NewProgram(New(a), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restoreSession())
}

func (m Model) restoreSession() tea.Cmd {
	mgr := m.app.Session
	return func() tea.Msg {
		return restoredMsg{ok: mgr.CheckAuthStatus(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case restoredMsg:
		if msg.ok {
			m.app.Router.SetAuthenticated(true)
			m.setStatus("Sessão restaurada")
		}
		return m, nil

	case loginMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(screen.AlertMessage(msg.err, screen.MsgLoginFailed))
			return m, nil
		}
		m.cursor = 0
		m.inputs = nil
		m.setStatus("Login realizado com sucesso!")
		return m, nil

	case logoutMsg:
		m.app.Router.SetAuthenticated(false)
		m.inputs = loginInputs()
		m.focus = 0
		if msg.err != nil {
			m.setError("Sessão encerrada, mas houve erro ao limpar os dados locais")
			return m, nil
		}
		m.setStatus("Sessão encerrada")
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(screen.AlertMessage(msg.err, msg.fallback))
		}
		m.clampCursor()
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(screen.AlertMessage(msg.err, msg.fallback))
			return m, nil
		}
		m.inputs = nil
		m.cursor = 0
		m.setStatus(msg.text)
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(screen.AlertMessage(msg.err, msg.fallback))
			return m, nil
		}
		m.clampCursor()
		m.setStatus(msg.text)
		return m, nil

	case nearbyMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, monitor.ErrPermissionDenied) {
				m.setError(msg.err.Error())
			} else {
				m.setError("Não foi possível obter a localização")
			}
			return m, nil
		}
		m.nearby = msg.list
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != "" {
			return m.updateConfirm(msg)
		}
		if m.busy {
			return m, nil
		}
		return m.updateScreen(msg)
	}
	return m, nil
}

func (m Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.app.Router.Current() {
	case navigation.ScreenLogin:
		return m.updateLogin(msg)
	case navigation.ScreenMenu:
		return m.updateMenu(msg)
	case navigation.ScreenRegiaoList:
		return m.updateRegiaoList(msg)
	case navigation.ScreenSensorList:
		return m.updateSensorList(msg)
	case navigation.ScreenRegiaoForm, navigation.ScreenSensorForm:
		return m.updateForm(msg)
	case navigation.ScreenDashboard:
		return m.updateDashboard(msg)
	case navigation.ScreenLocais:
		return m.updateLocais(msg)
	}
	if msg.String() == "esc" {
		m.goBack()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.onConfirm
	m.confirm = ""
	m.onConfirm = nil
	switch strings.ToLower(msg.String()) {
	case "y", "s", "enter":
		if action != nil {
			m.busy = true
			return m, action()
		}
	}
	m.setStatus("Operação cancelada")
	return m, nil
}

// Login

func loginInputs() []textinput.Model {
	email := textinput.New()
	email.Placeholder = "email@exemplo.com"
	email.Prompt = "Email: "
	email.CharLimit = 100
	email.Focus()

	senha := textinput.New()
	senha.Placeholder = "senha"
	senha.Prompt = "Senha: "
	senha.EchoMode = textinput.EchoPassword
	senha.EchoCharacter = '•'

	return []textinput.Model{email, senha}
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up"), nil
	case "enter":
		m.login.Email = m.inputs[0].Value()
		m.login.Senha = m.inputs[1].Value()
		m.busy = true
		m.setStatus("Entrando...")
		form := m.login
		return m, func() tea.Msg {
			_, err := form.Submit(context.Background())
			return loginMsg{err: err}
		}
	}
	return m.updateFocusedInput(msg)
}

// Menu

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := navigation.MenuItems()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "x":
		m.confirm = "Deseja realmente sair do sistema? (s/n)"
		mgr := m.app.Session
		m.onConfirm = func() tea.Cmd {
			return func() tea.Msg {
				return logoutMsg{err: mgr.Logout(context.Background())}
			}
		}
	case "q":
		return m, tea.Quit
	case "enter":
		return m.open(items[m.cursor].Screen, nil)
	}
	return m, nil
}

// open navega para a tela e dispara a carga inicial dela.
func (m Model) open(to navigation.Screen, params navigation.Params) (tea.Model, tea.Cmd) {
	if err := m.app.Router.Navigate(to, params); err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.clearStatus()
	m.cursor = 0
	m.searching = false
	m.query.SetValue("")

	switch to {
	case navigation.ScreenRegiaoList:
		m.regiaoList.SetQuery("")
		return m, m.loadRegioes()
	case navigation.ScreenSensorList:
		m.sensorList.SetQuery("")
		m.sensorList.SetStatus("")
		return m, m.loadSensores()
	case navigation.ScreenRegiaoForm:
		var editing *regiao.Regiao
		if r, ok := params["regiao"].(regiao.Regiao); ok {
			editing = &r
		}
		m.regiaoForm = screen.NewRegiaoForm(m.app.Regioes, m.app.Router, editing, m.app.Logger)
		m.inputs = regiaoInputs(m.regiaoForm)
		m.focus = 0
		return m, nil
	case navigation.ScreenSensorForm:
		var editing *sensor.Sensor
		if s, ok := params["sensor"].(sensor.Sensor); ok {
			editing = &s
		}
		m.sensorForm = screen.NewSensorForm(m.app.Sensores, m.app.Regioes, m.app.Router, editing, m.app.Logger)
		m.inputs = sensorInputs(m.sensorForm)
		m.focus = 0
		m.busy = true
		form := m.sensorForm
		return m, func() tea.Msg {
			return loadedMsg{err: form.LoadRegions(context.Background()), fallback: screen.MsgLoadRegioes}
		}
	case navigation.ScreenDashboard:
		m.stats = m.app.Monitor.Stats()
		m.recent = m.app.Monitor.RecentAlerts(recentAlertsOnDashboard)
		return m, nil
	case navigation.ScreenLocais:
		m.busy = true
		svc, locator := m.app.Monitor, m.app.Locator
		return m, func() tea.Msg {
			list, err := svc.Nearby(context.Background(), locator)
			return nearbyMsg{list: list, err: err}
		}
	}
	return m, nil
}

func (m *Model) goBack() {
	m.app.Router.GoBack()
	m.cursor = 0
	m.inputs = nil
	m.searching = false
	m.clearStatus()
}

// Helpers

func (m *Model) setStatus(text string) {
	m.status = text
	m.isError = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.isError = true
	m.app.Logger.Warn().Str("tela", string(m.app.Router.Current())).Msg(text)
}

func (m *Model) clearStatus() {
	m.status = ""
	m.isError = false
}

func (m *Model) clampCursor() {
	n := m.listLen()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) listLen() int {
	switch m.app.Router.Current() {
	case navigation.ScreenRegiaoList:
		return len(m.regiaoList.Visible())
	case navigation.ScreenSensorList:
		return len(m.sensorList.Visible())
	case navigation.ScreenLocais:
		return len(m.nearby)
	}
	return 0
}

func (m Model) cycleFocus(backward bool) Model {
	if len(m.inputs) == 0 {
		return m
	}
	m.inputs[m.focus].Blur()
	if backward {
		m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	} else {
		m.focus = (m.focus + 1) % len(m.inputs)
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
