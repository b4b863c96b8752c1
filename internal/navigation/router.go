package navigation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Screen identifica uma tela do aplicativo.
type Screen string

const (
	ScreenLogin       Screen = "login"
	ScreenMenu        Screen = "menu"
	ScreenRegiaoList  Screen = "RegiaoList"
	ScreenRegiaoForm  Screen = "RegiaoForm"
	ScreenSensorList  Screen = "SensorList"
	ScreenSensorForm  Screen = "SensorForm"
	ScreenLeituraList Screen = "LeituraList"
	ScreenAlertaList  Screen = "AlertaList"
	ScreenUsuarioList Screen = "UsuarioList"
	ScreenDashboard   Screen = "Dashboard"
	ScreenLocais      Screen = "Locais"
)

var (
	// ErrInvalidTransition indica navegação fora da tabela de transições.
	ErrInvalidTransition = errors.New("transição de tela inválida")
	// ErrScreenDisabled indica item de menu ainda não disponível.
	ErrScreenDisabled = errors.New("Esta funcionalidade será implementada em breve.")
	// ErrNotAuthenticated indica navegação antes do login.
	ErrNotAuthenticated = errors.New("faça login para continuar")
)

// Params carrega dados opcionais para a tela de destino (ex.: entidade em edição).
type Params map[string]any

var transitions = map[Screen][]Screen{
	ScreenMenu: {
		ScreenRegiaoList, ScreenSensorList, ScreenLeituraList, ScreenAlertaList,
		ScreenUsuarioList, ScreenDashboard, ScreenLocais,
	},
	ScreenRegiaoList: {ScreenRegiaoForm},
	ScreenSensorList: {ScreenSensorForm},
	ScreenDashboard:  {ScreenLocais},
	ScreenLocais:     {ScreenDashboard},
}

// Router é a máquina de estados das telas. Voltar sempre leva ao menu.
type Router struct {
	mu            sync.Mutex
	current       Screen
	params        Params
	authenticated bool
	disabled      map[Screen]bool
	logger        zerolog.Logger
}

// NewRouter cria o roteador na tela de login.
func NewRouter(logger zerolog.Logger) *Router {
	disabled := make(map[Screen]bool)
	for _, item := range MenuItems() {
		if !item.Enabled {
			disabled[item.Screen] = true
		}
	}
	return &Router{
		current:  ScreenLogin,
		params:   Params{},
		disabled: disabled,
		logger:   logger.With().Str("component", "router").Logger(),
	}
}

// Current devolve a tela atual.
func (r *Router) Current() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Params devolve uma cópia dos parâmetros da tela atual.
func (r *Router) Params() Params {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(Params, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

// SetAuthenticated leva ao menu após login ou de volta ao login após logout.
func (r *Router) SetAuthenticated(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticated = ok
	r.params = Params{}
	if ok {
		r.current = ScreenMenu
	} else {
		r.current = ScreenLogin
	}
	r.logger.Debug().Str("screen", string(r.current)).Msg("navegou")
}

// Navigate troca de tela se a transição constar na tabela.
func (r *Router) Navigate(to Screen, params Params) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.authenticated {
		return ErrNotAuthenticated
	}
	if r.disabled[to] {
		return ErrScreenDisabled
	}
	if !allowed(r.current, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, r.current, to)
	}

	r.logger.Debug().Str("from", string(r.current)).Str("to", string(to)).Msg("navegou")
	r.current = to
	r.params = Params{}
	for k, v := range params {
		r.params[k] = v
	}
	return nil
}

// GoBack volta ao menu e limpa os parâmetros, qualquer que seja a tela atual.
func (r *Router) GoBack() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.authenticated {
		return
	}
	r.current = ScreenMenu
	r.params = Params{}
}

func allowed(from, to Screen) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
