package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antonio-Junior1/thermoguard/internal/api"
	"github.com/Antonio-Junior1/thermoguard/internal/config"
	"github.com/Antonio-Junior1/thermoguard/internal/leitura"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/session"
	"github.com/Antonio-Junior1/thermoguard/internal/storage"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

const (
	adminEmail    = "admin@thermoguard.com"
	adminPassword = "admin123"
)

type harness struct {
	srv     *Server
	ts      *httptest.Server
	client  *api.Client
	session *session.Manager
}

func newHarness(t *testing.T, loginResponse string, seed bool) *harness {
	t.Helper()
	cfg := &config.MockAPIConfig{
		Prefix:        "/api",
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTAccessTTL:  15 * time.Minute,
		JWTRefreshTTL: time.Hour,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		LoginResponse: loginResponse,
		SeedDemo:      seed,
	}
	srv, err := NewServer(cfg, storage.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	client := api.New(api.Config{BaseURL: ts.URL, Prefix: "/api", Timeout: 5 * time.Second}, zerolog.Nop())
	mgr := session.NewManager(client, storage.NewMemoryStore(), session.Config{
		StorageKey:       "thermoguard_data",
		TokenTTL:         24 * time.Hour,
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
	}, zerolog.Nop())

	return &harness{srv: srv, ts: ts, client: client, session: mgr}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.session.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
}

func f64(v float64) *float64 { return &v }

func TestHealthWithoutAuth(t *testing.T) {
	h := newHarness(t, "bare", false)
	assert.True(t, h.client.CheckHealth(context.Background()))
}

func TestRequiresToken(t *testing.T) {
	h := newHarness(t, "bare", false)
	_, err := regiao.NewService(regiao.NewRepository(h.client)).ListAll(context.Background())

	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Não autorizado. Faça login novamente.", reqErr.Message)
}

func TestLoginBareToken(t *testing.T) {
	h := newHarness(t, "bare", false)
	ctx := context.Background()

	res, err := h.session.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.Empty(t, res.RefreshToken)
	assert.Equal(t, "admin", res.Usuario.Nome)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), res.Expiry, 5*time.Second)

	_, err = h.session.Login(ctx, adminEmail, "errada")
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, 1, h.session.LoginAttempts())
}

func TestCrudFlow(t *testing.T) {
	h := newHarness(t, "bare", false)
	h.login(t)
	ctx := context.Background()

	regioes := regiao.NewService(regiao.NewRepository(h.client))
	sensores := sensor.NewService(sensor.NewRepository(h.client))

	created, err := regioes.Create(ctx, regiao.Input{Nome: "Zona Sul", Latitude: f64(-23.6), Longitude: f64(-46.7)})
	require.NoError(t, err)
	assert.Nil(t, created, "201 não devolve corpo ao app")

	list, err := regioes.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].Vulnerabilidade)
	regiaoID := list[0].ID

	_, err = sensores.Create(ctx, sensor.Input{IDRegiao: 999, Modelo: "DHT22", Status: sensor.StatusAtivo, DataInstalacao: "2024-01-10"})
	assert.True(t, api.IsStatus(err, http.StatusUnprocessableEntity))

	_, err = sensores.Create(ctx, sensor.Input{IDRegiao: regiaoID, Modelo: "DHT22", Status: sensor.StatusAtivo, DataInstalacao: "2024-01-10"})
	require.NoError(t, err)
	sensorList, err := sensores.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, sensorList, 1)
	assert.Equal(t, regiaoID, sensorList[0].IDRegiao)

	updated, err := sensores.Update(ctx, sensorList[0].ID, sensor.Input{IDRegiao: regiaoID, Modelo: "DHT22 v2", Status: sensor.StatusManutencao, DataInstalacao: "2024-01-10"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "DHT22 v2", updated.Modelo)

	err = regioes.Delete(ctx, regiaoID)
	assert.True(t, api.IsStatus(err, http.StatusConflict), "região com sensor não pode ser removida")

	require.NoError(t, sensores.Delete(ctx, sensorList[0].ID))
	sensorList, err = sensores.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sensorList)
	require.NoError(t, regioes.Delete(ctx, regiaoID))

	_, err = regioes.GetByID(ctx, regiaoID)
	assert.True(t, api.IsStatus(err, http.StatusNotFound))
}

func TestCidadaoCannotCreate(t *testing.T) {
	h := newHarness(t, "bare", false)
	ctx := context.Background()

	res, err := h.session.Register(ctx, session.RegisterInput{
		Nome: "Maria", Email: "maria@x.com", Senha: "segredo", ConfirmarSenha: "segredo", Tipo: usuario.TipoCidadao,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, usuario.TipoCidadao, res.Usuario.Tipo)

	regioes := regiao.NewService(regiao.NewRepository(h.client))
	_, err = regioes.ListAll(ctx)
	require.NoError(t, err)

	_, err = regioes.Create(ctx, regiao.Input{Nome: "X", Latitude: f64(0), Longitude: f64(0)})
	assert.True(t, api.IsStatus(err, http.StatusForbidden))

	_, err = usuario.NewService(usuario.NewRepository(h.client)).ListAll(ctx)
	assert.True(t, api.IsStatus(err, http.StatusForbidden))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t, "bare", false)
	_, err := h.session.Register(context.Background(), session.RegisterInput{
		Nome: "Outro", Email: adminEmail, Senha: "segredo", ConfirmarSenha: "segredo", Tipo: usuario.TipoAgente,
	})
	assert.True(t, api.IsStatus(err, http.StatusConflict))
}

func TestRefreshRotation(t *testing.T) {
	h := newHarness(t, "object", false)
	ctx := context.Background()

	res, err := h.session.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, res.RefreshToken)

	token, err := h.session.RefreshToken(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, h.session.IsAuthenticated())

	body, _ := json.Marshal(map[string]string{"refreshToken": res.RefreshToken})
	resp, err := http.Post(h.ts.URL+"/api/auth/refresh", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "refresh token usado não pode ser reaproveitado")
}

func TestPagingAndAverages(t *testing.T) {
	h := newHarness(t, "bare", true)
	h.login(t)
	ctx := context.Background()

	sensores := sensor.NewService(sensor.NewRepository(h.client))
	page, err := sensores.ListPaged(ctx, 0, 2, "modelo")
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "DHT11", page.Content[0].Modelo)

	filtered, err := sensores.FilterByStatus(ctx, sensor.StatusAtivo, 0, 10, "")
	require.NoError(t, err)
	require.Len(t, filtered.Content, 1)
	assert.Equal(t, "DHT22", filtered.Content[0].Modelo)

	medias, err := leitura.NewService(leitura.NewRepository(h.client)).AverageTemperatureByRegion(ctx)
	require.NoError(t, err)
	require.Len(t, medias, 2)
	assert.Equal(t, "Zona Sul", medias[0].NomeRegiao)
	assert.InDelta(t, 37.35, medias[0].TemperaturaMedia, 0.06)
}

func TestStorePageClampsHugeValues(t *testing.T) {
	store := NewStore()
	seedDemo(store, time.Now())

	page := store.PageSensores("", math.MaxInt, math.MaxInt, "")
	assert.Empty(t, page.Content)
	assert.EqualValues(t, 3, page.TotalElements)
	assert.Equal(t, maxPageSize, page.Size)

	page = store.PageSensores("", math.MaxInt/2, 2, "modelo")
	assert.Empty(t, page.Content)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Number)
}

func TestStoreAverageSkipsEmptyRegions(t *testing.T) {
	store := NewStore()
	r := store.CreateRegiao(regiao.Regiao{Nome: "Vazia"})
	assert.Empty(t, store.AverageByRegion())
	assert.NoError(t, store.DeleteRegiao(r.ID))
	assert.ErrorIs(t, store.DeleteRegiao(r.ID), ErrNotFound)
}
