package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Antonio-Junior1/thermoguard/internal/navigation"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
)

const rule = "────────────────────────────────────────"

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("ThermoGuard · Monitoramento de temperaturas extremas\n")
	b.WriteString(rule + "\n")

	switch m.app.Router.Current() {
	case navigation.ScreenLogin:
		m.viewLogin(&b)
	case navigation.ScreenMenu:
		m.viewMenu(&b)
	case navigation.ScreenRegiaoList:
		m.viewRegiaoList(&b)
	case navigation.ScreenSensorList:
		m.viewSensorList(&b)
	case navigation.ScreenRegiaoForm:
		m.viewRegiaoForm(&b)
	case navigation.ScreenSensorForm:
		m.viewSensorForm(&b)
	case navigation.ScreenDashboard:
		m.viewDashboard(&b)
	case navigation.ScreenLocais:
		m.viewLocais(&b)
	}

	b.WriteString("\n" + rule + "\n")
	switch {
	case m.confirm != "":
		b.WriteString("? " + m.confirm + "\n")
	case m.busy:
		b.WriteString("… " + m.status + "\n")
	case m.isError:
		b.WriteString("✗ " + m.status + "\n")
	case m.status != "":
		b.WriteString("✓ " + m.status + "\n")
	}
	return b.String()
}

func (m Model) viewLogin(b *strings.Builder) {
	b.WriteString("Entrar\n\n")
	writeInputs(b, m.inputs, nil, nil)
	b.WriteString("\ntab alterna campos · enter entra · ctrl+c sai\n")
}

func (m Model) viewMenu(b *strings.Builder) {
	b.WriteString("Menu principal\n\n")
	for i, item := range navigation.MenuItems() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, item.Title, item.Subtitle)
		if !item.Enabled {
			line += " (em breve)"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nenter abre · x sai da conta · q fecha\n")
}

func (m Model) viewRegiaoList(b *strings.Builder) {
	b.WriteString("Regiões\n")
	if m.searching || m.query.Value() != "" {
		b.WriteString(m.query.View() + "\n")
	}
	b.WriteString("\n")

	list := m.regiaoList.Visible()
	if len(list) == 0 {
		b.WriteString("Nenhuma região encontrada\n")
	}
	for i, r := range list {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(b, "%s%-24s lat %.4f  lon %.4f  vuln %.2f\n", cursor, r.Nome, r.Latitude, r.Longitude, r.Vulnerabilidade)
	}
	b.WriteString("\n/ busca · n nova · e edita · d exclui · r atualiza · esc volta\n")
}

func (m Model) viewSensorList(b *strings.Builder) {
	b.WriteString("Sensores")
	if status := m.sensorList.Status(); status != "" {
		b.WriteString(" · " + sensor.StatusLabel(status))
	}
	b.WriteString("\n")
	if m.searching || m.query.Value() != "" {
		b.WriteString(m.query.View() + "\n")
	}
	b.WriteString("\n")

	list := m.sensorList.Visible()
	if len(list) == 0 {
		b.WriteString("Nenhum sensor encontrado\n")
	}
	for i, s := range list {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(b, "%s%-16s %-12s %s\n", cursor, s.Modelo, sensor.StatusLabel(s.Status), m.sensorList.RegionName(s.IDRegiao))
	}
	b.WriteString("\n/ busca · s status · n novo · e edita · d exclui · r atualiza · esc volta\n")
}

func (m Model) viewRegiaoForm(b *strings.Builder) {
	if m.regiaoForm == nil {
		return
	}
	b.WriteString(m.regiaoForm.Title() + "\n\n")
	writeInputs(b, m.inputs, regiaoFields, m.regiaoForm.Errors)
	b.WriteString("\ntab alterna campos · ctrl+s salva · esc cancela\n")
}

func (m Model) viewSensorForm(b *strings.Builder) {
	if m.sensorForm == nil {
		return
	}
	b.WriteString(m.sensorForm.Title() + "\n\n")
	writeInputs(b, m.inputs, sensorFields, m.sensorForm.Errors)

	if opts := m.sensorForm.RegionOptions(); len(opts) > 0 {
		b.WriteString("\nRegiões disponíveis:\n")
		for _, opt := range opts {
			fmt.Fprintf(b, "  %s  %s\n", opt.Value, opt.Label)
		}
	}
	b.WriteString("\ntab alterna campos · ctrl+s salva · esc cancela\n")
}

func (m Model) viewDashboard(b *strings.Builder) {
	s := m.stats
	b.WriteString("Dashboard\n\n")
	fmt.Fprintf(b, "Locais monitorados:  %d\n", s.TotalLocations)
	fmt.Fprintf(b, "Alertas ativos:      %d\n", s.ActiveAlerts)
	fmt.Fprintf(b, "Locais críticos:     %d\n", s.CriticalLocations)
	fmt.Fprintf(b, "Temperatura média:   %.0f°C\n", s.AverageTemperature)
	fmt.Fprintf(b, "Maior temperatura:   %.0f°C (%s)\n", s.Highest.Value, s.Highest.Location)
	fmt.Fprintf(b, "Menor temperatura:   %.0f°C (%s)\n", s.Lowest.Value, s.Lowest.Location)

	b.WriteString("\nAlertas recentes\n")
	if len(m.recent) == 0 {
		b.WriteString("  Nenhum alerta ativo\n")
	}
	for _, a := range m.recent {
		fmt.Fprintf(b, "  [%s] %s: %s\n", a.Severity, a.LocationName, a.Message)
	}
	b.WriteString("\nl locais próximos · r atualiza · esc volta\n")
}

func (m Model) viewLocais(b *strings.Builder) {
	b.WriteString("Locais próximos\n\n")
	if len(m.nearby) == 0 && !m.busy {
		b.WriteString("Nenhum local disponível\n")
	}
	for i, n := range m.nearby {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(b, "%s%-18s %6.2f km  %5.1f°C  %s\n", cursor, n.Name, n.DistanceKm, n.CurrentTemperature, n.Status)
	}
	b.WriteString("\np painel · esc volta\n")
}

func writeInputs(b *strings.Builder, inputs []textinput.Model, fields []field, errs map[string]string) {
	for i, in := range inputs {
		b.WriteString(in.View() + "\n")
		if i < len(fields) {
			if msg, ok := errs[fields[i].key]; ok {
				b.WriteString("    ! " + msg + "\n")
			}
		}
	}
}
