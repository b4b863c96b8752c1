package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

type stubAPI struct {
	responses map[string]func(body any) (json.RawMessage, error)
	calls     map[string]int
	token     string
}

func newStubAPI() *stubAPI {
	return &stubAPI{responses: map[string]func(any) (json.RawMessage, error){}, calls: map[string]int{}}
}

func (s *stubAPI) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	s.calls[path]++
	if fn, ok := s.responses[path]; ok {
		return fn(body)
	}
	return nil, &api.RequestError{Status: 404, Message: "Recurso não encontrado."}
}

func (s *stubAPI) SetToken(token string) { s.token = token }
func (s *stubAPI) ClearToken()           { s.token = "" }

type failingStore struct {
	storage.Store
}

func (failingStore) Remove(ctx context.Context, keys ...string) error {
	return errors.New("disco cheio")
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newManager(t *testing.T, stub *stubAPI, store storage.Store) (*Manager, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(stub, store, Config{}, zerolog.Nop(), WithClock(c.Now))
	return m, c
}

func TestLoginWithBareToken(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/login"] = func(body any) (json.RawMessage, error) {
		creds := body.(map[string]string)
		if creds["email"] != "admin@thermoguard.com" || creds["senha"] != "admin" {
			t.Errorf("body = %v", creds)
		}
		return json.RawMessage(`"opaque-token"`), nil
	}
	store := storage.NewMemoryStore()
	m, c := newManager(t, stub, store)

	res, err := m.Login(context.Background(), "admin@thermoguard.com", "admin")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Usuario.Nome != "admin" || res.Usuario.Tipo != "ADMIN" || res.Usuario.ID != 1 {
		t.Fatalf("user = %+v", res.Usuario)
	}
	if !res.Expiry.Equal(c.now.Add(24 * time.Hour)) {
		t.Fatalf("expiry = %v", res.Expiry)
	}
	if stub.token != "opaque-token" || !m.IsAuthenticated() {
		t.Fatal("token not installed")
	}

	stored, _ := store.Get(context.Background(), "thermoguard_data_token_expiry")
	if stored != strconv.FormatInt(res.Expiry.UnixMilli(), 10) {
		t.Fatalf("stored expiry = %q", stored)
	}
}

func TestLoginUsesJWTExpiry(t *testing.T) {
	jwtMgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, exp, err := jwtMgr.GenerateAccessToken(3, "ana@x.com", "AGENTE", "thermoguard")
	if err != nil {
		t.Fatal(err)
	}

	stub := newStubAPI()
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) {
		return json.Marshal(map[string]any{
			"token":        token,
			"refreshToken": "r1",
			"usuario":      map[string]any{"id": 3, "nome": "Ana", "email": "ana@x.com", "tipo": "AGENTE"},
		})
	}
	store := storage.NewMemoryStore()
	m, _ := newManager(t, stub, store)

	res, err := m.Login(context.Background(), "ana@x.com", "segredo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Expiry.Unix() != exp.Unix() {
		t.Fatalf("expiry = %v, want %v", res.Expiry, exp)
	}
	if res.Usuario.Tipo != "AGENTE" || m.CurrentUser().Nome != "Ana" {
		t.Fatalf("user = %+v", res.Usuario)
	}
	if rt, _ := store.Get(context.Background(), "thermoguard_data_refresh_token"); rt != "r1" {
		t.Fatalf("refresh token = %q", rt)
	}
}

func TestLoginLockout(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) {
		return nil, &api.RequestError{Status: 401, Message: "Não autorizado. Faça login novamente."}
	}
	m, c := newManager(t, stub, storage.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := m.Login(ctx, "a@b.com", "x"); !api.IsStatus(err, 401) {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if stub.calls["/auth/login"] != 5 || !m.IsLockedOut() {
		t.Fatalf("calls = %d locked = %v", stub.calls["/auth/login"], m.IsLockedOut())
	}

	_, err := m.Login(ctx, "a@b.com", "x")
	var locked *LockedOutError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedOutError, got %v", err)
	}
	if stub.calls["/auth/login"] != 5 {
		t.Fatal("locked out login must not reach the network")
	}
	if locked.Minutes() != 15 || !strings.Contains(err.Error(), "15 minutos") {
		t.Fatalf("message = %q", err.Error())
	}

	c.Advance(14*time.Minute + 30*time.Second)
	_, err = m.Login(ctx, "a@b.com", "x")
	if !errors.As(err, &locked) || locked.Minutes() != 1 {
		t.Fatalf("expected 1 minute remaining, got %v", err)
	}

	c.Advance(time.Minute)
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) {
		return json.RawMessage(`"tok"`), nil
	}
	if _, err := m.Login(ctx, "a@b.com", "x"); err != nil {
		t.Fatalf("login after lockout: %v", err)
	}
	if m.LoginAttempts() != 0 || m.IsLockedOut() {
		t.Fatal("success should reset counter")
	}
}

func TestLoginRejectsEmptyResponse(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) { return nil, nil }
	m, _ := newManager(t, stub, storage.NewMemoryStore())

	if _, err := m.Login(context.Background(), "a@b.com", "x"); !errors.Is(err, ErrInvalidLoginResponse) {
		t.Fatalf("expected ErrInvalidLoginResponse, got %v", err)
	}
	if m.LoginAttempts() != 1 || m.State() != Unauthenticated {
		t.Fatalf("attempts = %d state = %v", m.LoginAttempts(), m.State())
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) { return json.RawMessage(`"tok"`), nil }
	store := storage.NewMemoryStore()
	m, _ := newManager(t, stub, store)
	ctx := context.Background()

	if _, err := m.Login(ctx, "a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if stub.token != "" || m.IsAuthenticated() || m.CurrentUser() != nil {
		t.Fatal("state not cleared")
	}
	if _, err := store.Get(ctx, "thermoguard_data_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("token still stored")
	}
}

func TestLogoutStorageFailureStillClearsState(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/login"] = func(any) (json.RawMessage, error) { return json.RawMessage(`"tok"`), nil }
	m, _ := newManager(t, stub, failingStore{Store: storage.NewMemoryStore()})
	ctx := context.Background()

	if _, err := m.Login(ctx, "a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(ctx); err == nil {
		t.Fatal("expected storage error")
	}
	if m.IsAuthenticated() || stub.token != "" {
		t.Fatal("logout must clear in-memory state even when storage fails")
	}
}

func seedSession(t *testing.T, store storage.Store, expiry time.Time, refresh string) {
	t.Helper()
	values := map[string]string{
		"thermoguard_data_token":        "persisted",
		"thermoguard_data_user":         `{"id":5,"nome":"Bia","email":"bia@x.com","tipo":"CIDADAO"}`,
		"thermoguard_data_token_expiry": strconv.FormatInt(expiry.UnixMilli(), 10),
	}
	if refresh != "" {
		values["thermoguard_data_refresh_token"] = refresh
	}
	if err := store.MultiSet(context.Background(), values); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAuthStatusRestoresValidSession(t *testing.T) {
	stub := newStubAPI()
	store := storage.NewMemoryStore()
	m, c := newManager(t, stub, store)
	seedSession(t, store, c.now.Add(time.Hour), "r1")

	for i := 0; i < 2; i++ {
		if !m.CheckAuthStatus(context.Background()) {
			t.Fatalf("call %d: expected restored session", i)
		}
	}
	if stub.token != "persisted" || m.CurrentUser().Nome != "Bia" {
		t.Fatal("session not restored")
	}
	if stub.calls["/auth/refresh"] != 0 {
		t.Fatal("valid session must not refresh")
	}
}

func TestCheckAuthStatusExpiredWithoutRefresh(t *testing.T) {
	stub := newStubAPI()
	store := storage.NewMemoryStore()
	m, c := newManager(t, stub, store)
	seedSession(t, store, c.now.Add(-time.Minute), "")

	if m.CheckAuthStatus(context.Background()) {
		t.Fatal("expected unauthenticated")
	}
	if _, err := store.Get(context.Background(), "thermoguard_data_token"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("persisted session should be cleared")
	}
	if stub.calls["/auth/refresh"] != 0 {
		t.Fatal("no refresh token means no network call")
	}
}

func TestCheckAuthStatusRefreshesExpiredSession(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/refresh"] = func(body any) (json.RawMessage, error) {
		if body.(map[string]string)["refreshToken"] != "r1" {
			t.Errorf("body = %v", body)
		}
		return json.RawMessage(`{"token":"novo","refreshToken":"r2"}`), nil
	}
	store := storage.NewMemoryStore()
	m, c := newManager(t, stub, store)
	seedSession(t, store, c.now.Add(-time.Minute), "r1")

	if !m.CheckAuthStatus(context.Background()) {
		t.Fatal("expected refreshed session")
	}
	if stub.token != "novo" || m.CurrentUser().Nome != "Bia" {
		t.Fatalf("token = %q", stub.token)
	}
	ctx := context.Background()
	if tok, _ := store.Get(ctx, "thermoguard_data_token"); tok != "novo" {
		t.Fatalf("stored token = %q", tok)
	}
	if rt, _ := store.Get(ctx, "thermoguard_data_refresh_token"); rt != "r2" {
		t.Fatalf("stored refresh = %q", rt)
	}
	if !m.Expiry().After(c.now) {
		t.Fatal("expiry not renewed")
	}
}

func TestRefreshFailureForcesLogout(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/refresh"] = func(any) (json.RawMessage, error) {
		return nil, &api.RequestError{Status: 401, Message: "Não autorizado. Faça login novamente."}
	}
	store := storage.NewMemoryStore()
	m, c := newManager(t, stub, store)
	seedSession(t, store, c.now.Add(time.Hour), "r1")
	if !m.CheckAuthStatus(context.Background()) {
		t.Fatal("setup: expected session")
	}

	_, err := m.RefreshToken(context.Background())
	var rerr *RefreshError
	if !errors.As(err, &rerr) || !api.IsStatus(err, 401) {
		t.Fatalf("expected RefreshError wrapping 401, got %v", err)
	}
	if m.IsAuthenticated() || stub.token != "" {
		t.Fatal("refresh failure must log out")
	}
}

func TestRefreshWithoutToken(t *testing.T) {
	m, _ := newManager(t, newStubAPI(), storage.NewMemoryStore())
	_, err := m.RefreshToken(context.Background())
	if !errors.Is(err, ErrNoRefreshToken) {
		t.Fatalf("expected ErrNoRefreshToken, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/register"] = func(body any) (json.RawMessage, error) {
		b := body.(map[string]any)
		if _, ok := b["confirmarSenha"]; ok {
			t.Error("confirmation must not be sent")
		}
		return json.RawMessage(`{"token":"t","usuario":{"id":9,"nome":"Caio","email":"caio@x.com","tipo":"CIDADAO"}}`), nil
	}
	m, _ := newManager(t, stub, storage.NewMemoryStore())

	_, err := m.Register(context.Background(), RegisterInput{Nome: "Caio", Email: "caio@x.com", Senha: "123", ConfirmarSenha: "124", Tipo: "CIDADAO"})
	var verr *util.ValidationError
	if !errors.As(err, &verr) || len(verr.Errors) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", err)
	}

	res, err := m.Register(context.Background(), RegisterInput{Nome: "Caio", Email: "caio@x.com", Senha: "123456", ConfirmarSenha: "123456", Tipo: "CIDADAO"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Usuario.ID != 9 || !m.IsAuthenticated() {
		t.Fatalf("res = %+v", res)
	}
}

func TestRegisterRejectsBareToken(t *testing.T) {
	stub := newStubAPI()
	stub.responses["/auth/register"] = func(any) (json.RawMessage, error) { return json.RawMessage(`"t"`), nil }
	m, _ := newManager(t, stub, storage.NewMemoryStore())
	_, err := m.Register(context.Background(), RegisterInput{Nome: "A", Email: "a@b.com", Senha: "123456", ConfirmarSenha: "123456", Tipo: "ADMIN"})
	if !errors.Is(err, ErrInvalidRegisterResponse) {
		t.Fatalf("expected ErrInvalidRegisterResponse, got %v", err)
	}
}

func TestValidateLoginData(t *testing.T) {
	if errs := ValidateLoginData("admin@thermoguard.com", "admin"); len(errs) != 0 {
		t.Fatalf("unexpected: %v", errs)
	}
	errs := ValidateLoginData("invalido", " ")
	if len(errs) != 2 || errs[0] != "Email deve ter um formato válido" || errs[1] != "Senha é obrigatória" {
		t.Fatalf("errs = %v", errs)
	}
}
