package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

// State é a fase atual do ciclo de vida da sessão.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "unauthenticated"
	}
}

const (
	defaultStorageKey  = "thermoguard_data"
	defaultTokenTTL    = 24 * time.Hour
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// APIClient é o subconjunto do cliente HTTP usado pela sessão.
type APIClient interface {
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	SetToken(token string)
	ClearToken()
}

// Config define chaves de armazenamento e regras de bloqueio.
type Config struct {
	StorageKey       string
	TokenTTL         time.Duration
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

// Result é devolvido por Login e Register.
type Result struct {
	Token        string
	Usuario      usuario.Usuario
	RefreshToken string
	Expiry       time.Time
}

// Manager concentra login, logout, cadastro, refresh e restauração da sessão.
// O mutex nunca é mantido durante chamadas de rede.
type Manager struct {
	api    APIClient
	store  storage.Store
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time

	mu           sync.Mutex
	state        State
	user         *usuario.Usuario
	expiry       time.Time
	attempts     int
	lockoutUntil time.Time
}

// Option ajusta o Manager na construção.
type Option func(*Manager)

// WithClock substitui o relógio (usado em testes).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager cria o gerenciador de sessão.
func NewManager(client APIClient, store storage.Store, cfg Config, logger zerolog.Logger, opts ...Option) *Manager {
	if cfg.StorageKey == "" {
		cfg.StorageKey = defaultStorageKey
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = defaultMaxAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = defaultLockout
	}
	m := &Manager{
		api:    client,
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "session").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) key(suffix string) string {
	return m.cfg.StorageKey + "_" + suffix
}

func (m *Manager) keys() []string {
	return []string{m.key("token"), m.key("user"), m.key("token_expiry"), m.key("refresh_token")}
}

// Login autentica com e-mail e senha.
// Durante o bloqueio falha com *LockedOutError sem acessar a rede.
func (m *Manager) Login(ctx context.Context, email, senha string) (*Result, error) {
	m.mu.Lock()
	now := m.now()
	if !m.lockoutUntil.IsZero() {
		if now.Before(m.lockoutUntil) {
			remaining := m.lockoutUntil.Sub(now)
			m.mu.Unlock()
			return nil, &LockedOutError{Remaining: remaining}
		}
		m.lockoutUntil = time.Time{}
		m.attempts = 0
	}
	previous := m.state
	m.state = Authenticating
	m.mu.Unlock()

	email = strings.TrimSpace(email)
	res, err := m.authenticate(ctx, email, senha)
	if err == nil {
		err = m.persist(ctx, res)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.attempts++
		if m.attempts >= m.cfg.MaxLoginAttempts {
			m.lockoutUntil = m.now().Add(m.cfg.LockoutDuration)
			m.logger.Warn().Int("attempts", m.attempts).Time("until", m.lockoutUntil).Msg("login bloqueado por excesso de tentativas")
		}
		m.state = previous
		m.logger.Error().Err(err).Int("attempts", m.attempts).Msg("erro no login")
		return nil, err
	}

	m.attempts = 0
	m.lockoutUntil = time.Time{}
	m.install(res)
	m.logger.Info().Int64("user_id", res.Usuario.ID).Msg("login realizado")
	return res, nil
}

func (m *Manager) authenticate(ctx context.Context, email, senha string) (*Result, error) {
	raw, err := m.api.Post(ctx, "/auth/login", map[string]string{"email": email, "senha": senha})
	if err != nil {
		return nil, err
	}
	token, user, refresh, err := parseAuthResponse(raw, true)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrInvalidLoginResponse
	}
	if user == nil {
		user = userFromEmail(email)
	}
	return &Result{Token: token, Usuario: *user, RefreshToken: refresh, Expiry: m.expiryFor(token)}, nil
}

// userFromEmail monta o usuário quando a API devolve apenas o token.
func userFromEmail(email string) *usuario.Usuario {
	nome := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		nome = email[:i]
	}
	return &usuario.Usuario{ID: 1, Nome: nome, Email: email, Tipo: usuario.TipoAdmin}
}

func (m *Manager) expiryFor(token string) time.Time {
	if exp, ok := auth.ExpiryOf(token); ok {
		return exp
	}
	return m.now().Add(m.cfg.TokenTTL)
}

// Logout encerra a sessão. O estado em memória é sempre limpo; falhas do
// armazenamento são registradas e devolvidas.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Remove(ctx, m.keys()...)
	m.clear()
	if err != nil {
		m.logger.Error().Err(err).Msg("erro ao limpar dados de autenticação")
		return fmt.Errorf("logout: %w", err)
	}
	m.logger.Info().Msg("logout realizado")
	return nil
}

func (m *Manager) forceLogout(ctx context.Context) {
	if err := m.store.Remove(ctx, m.keys()...); err != nil {
		m.logger.Error().Err(err).Msg("erro ao limpar dados de autenticação")
	}
	m.clear()
}

func (m *Manager) clear() {
	m.api.ClearToken()
	m.mu.Lock()
	m.state = Unauthenticated
	m.user = nil
	m.expiry = time.Time{}
	m.mu.Unlock()
}

// Register cadastra um usuário e abre sessão com o token devolvido.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if err := util.Check(ValidateRegisterData(in)); err != nil {
		return nil, err
	}

	body := map[string]any{
		"nome":  strings.TrimSpace(in.Nome),
		"email": strings.ToLower(strings.TrimSpace(in.Email)),
		"senha": in.Senha,
		"tipo":  in.Tipo,
	}
	if in.IDRegiao > 0 {
		body["idRegiao"] = in.IDRegiao
	}

	raw, err := m.api.Post(ctx, "/auth/register", body)
	if err != nil {
		m.logger.Error().Err(err).Msg("erro no registro")
		return nil, err
	}
	token, user, refresh, err := parseAuthResponse(raw, false)
	if err != nil || token == "" {
		m.logger.Error().Err(err).Msg("resposta de registro inválida")
		return nil, ErrInvalidRegisterResponse
	}
	if user == nil {
		user = userFromEmail(body["email"].(string))
		user.Nome = body["nome"].(string)
		user.Tipo = in.Tipo
	}

	res := &Result{Token: token, Usuario: *user, RefreshToken: refresh, Expiry: m.expiryFor(token)}
	if err := m.persist(ctx, res); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.install(res)
	m.mu.Unlock()
	return res, nil
}

// RefreshToken renova o token com o refresh token persistido.
// Qualquer falha encerra a sessão e devolve *RefreshError.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.state = Refreshing
	m.mu.Unlock()

	token, err := m.refresh(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("erro ao atualizar token")
		m.forceLogout(ctx)
		return "", &RefreshError{Err: err}
	}
	return token, nil
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	stored, err := m.store.Get(ctx, m.key("refresh_token"))
	if errors.Is(err, storage.ErrNotFound) || (err == nil && stored == "") {
		return "", ErrNoRefreshToken
	}
	if err != nil {
		return "", err
	}

	raw, err := m.api.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": stored})
	if err != nil {
		return "", err
	}
	token, _, rotated, err := parseAuthResponse(raw, true)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrRefreshFailed
	}

	expiry := m.expiryFor(token)
	values := map[string]string{
		m.key("token"):        token,
		m.key("token_expiry"): strconv.FormatInt(expiry.UnixMilli(), 10),
	}
	if rotated != "" {
		values[m.key("refresh_token")] = rotated
	}
	if err := m.store.MultiSet(ctx, values); err != nil {
		return "", fmt.Errorf("salvar token: %w", err)
	}

	m.api.SetToken(token)
	m.mu.Lock()
	m.state = Authenticated
	m.expiry = expiry
	m.mu.Unlock()
	m.logger.Info().Time("expiry", expiry).Msg("token renovado")
	return token, nil
}

// CheckAuthStatus restaura a sessão persistida.
// Token válido é reinstalado sem refresh; token expirado tenta um refresh
// silencioso e, se falhar, a sessão é limpa.
func (m *Manager) CheckAuthStatus(ctx context.Context) bool {
	token, err := m.store.Get(ctx, m.key("token"))
	if err != nil {
		m.logStoreErr(err)
		return false
	}
	userData, err := m.store.Get(ctx, m.key("user"))
	if err != nil {
		m.logStoreErr(err)
		return false
	}
	if token == "" || userData == "" {
		return false
	}

	var user usuario.Usuario
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		m.logger.Error().Err(err).Msg("usuário persistido inválido")
		m.forceLogout(ctx)
		return false
	}

	var expiry time.Time
	if rawExpiry, err := m.store.Get(ctx, m.key("token_expiry")); err == nil {
		if ms, err := strconv.ParseInt(rawExpiry, 10, 64); err == nil {
			expiry = time.UnixMilli(ms)
		}
	}

	if m.now().Before(expiry) {
		m.api.SetToken(token)
		m.mu.Lock()
		m.state = Authenticated
		m.user = &user
		m.expiry = expiry
		m.mu.Unlock()
		return true
	}

	if _, err := m.RefreshToken(ctx); err != nil {
		return false
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return true
}

func (m *Manager) logStoreErr(err error) {
	if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Error().Err(err).Msg("erro ao verificar status de autenticação")
	}
}

func (m *Manager) persist(ctx context.Context, res *Result) error {
	userJSON, err := json.Marshal(res.Usuario)
	if err != nil {
		return err
	}
	values := map[string]string{
		m.key("token"):        res.Token,
		m.key("user"):         string(userJSON),
		m.key("token_expiry"): strconv.FormatInt(res.Expiry.UnixMilli(), 10),
	}
	if res.RefreshToken != "" {
		values[m.key("refresh_token")] = res.RefreshToken
	}
	if err := m.store.MultiSet(ctx, values); err != nil {
		m.logger.Error().Err(err).Msg("erro ao salvar dados de autenticação")
		return fmt.Errorf("salvar sessão: %w", err)
	}
	if res.RefreshToken == "" {
		if err := m.store.Remove(ctx, m.key("refresh_token")); err != nil {
			m.logger.Warn().Err(err).Msg("refresh token antigo não removido")
		}
	}
	return nil
}

// install deve ser chamado com m.mu travado.
func (m *Manager) install(res *Result) {
	m.api.SetToken(res.Token)
	user := res.Usuario
	m.user = &user
	m.expiry = res.Expiry
	m.state = Authenticated
}

// parseAuthResponse aceita o token como string JSON pura (quando allowBare)
// ou o objeto {token, usuario, refreshToken}.
func parseAuthResponse(raw json.RawMessage, allowBare bool) (string, *usuario.Usuario, string, error) {
	if len(raw) == 0 {
		return "", nil, "", nil
	}
	if raw[0] == '"' {
		if !allowBare {
			return "", nil, "", nil
		}
		var token string
		if err := json.Unmarshal(raw, &token); err != nil {
			return "", nil, "", fmt.Errorf("decodificar token: %w", err)
		}
		return strings.TrimSpace(token), nil, "", nil
	}
	var payload struct {
		Token        string           `json:"token"`
		Usuario      *usuario.Usuario `json:"usuario"`
		RefreshToken string           `json:"refreshToken"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", nil, "", fmt.Errorf("decodificar resposta: %w", err)
	}
	return payload.Token, payload.Usuario, payload.RefreshToken, nil
}

// State devolve a fase atual.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser devolve uma cópia do usuário logado, ou nil.
func (m *Manager) CurrentUser() *usuario.Usuario {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// IsLockedOut informa se novas tentativas de login estão bloqueadas.
func (m *Manager) IsLockedOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.lockoutUntil.IsZero() && m.now().Before(m.lockoutUntil)
}

func (m *Manager) LoginAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *Manager) Expiry() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiry
}
