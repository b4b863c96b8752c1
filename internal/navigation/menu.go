package navigation

// MenuItem é uma entrada do menu principal.
type MenuItem struct {
	ID       string
	Title    string
	Subtitle string
	Icon     string
	Color    string
	Screen   Screen
	Enabled  bool
}

// MenuItems lista as entradas do menu, na ordem de exibição.
func MenuItems() []MenuItem {
	return []MenuItem{
		{ID: "regioes", Title: "Regiões", Subtitle: "Gerenciar regiões monitoradas", Icon: "location", Color: "#2196F3", Screen: ScreenRegiaoList, Enabled: true},
		{ID: "sensores", Title: "Sensores", Subtitle: "Gerenciar sensores de temperatura", Icon: "hardware-chip", Color: "#4CAF50", Screen: ScreenSensorList, Enabled: true},
		{ID: "leituras", Title: "Leituras", Subtitle: "Visualizar dados dos sensores", Icon: "analytics", Color: "#FF9800", Screen: ScreenLeituraList},
		{ID: "alertas", Title: "Alertas", Subtitle: "Gerenciar alertas de temperatura", Icon: "warning", Color: "#F44336", Screen: ScreenAlertaList},
		{ID: "usuarios", Title: "Usuários", Subtitle: "Gerenciar usuários do sistema", Icon: "people", Color: "#9C27B0", Screen: ScreenUsuarioList},
		{ID: "dashboard", Title: "Dashboard", Subtitle: "Resumo de temperaturas e alertas", Icon: "speedometer", Color: "#00897B", Screen: ScreenDashboard, Enabled: true},
		{ID: "locais", Title: "Locais", Subtitle: "Locais monitorados próximos", Icon: "map", Color: "#3F51B5", Screen: ScreenLocais, Enabled: true},
	}
}
