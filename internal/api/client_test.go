package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Prefix: "/api", Timeout: timeout}, zerolog.Nop())
}

func TestDoSendsHeaders(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"nome":"Centro"}]`))
	}, time.Second)
	client.SetToken("abc")

	raw, err := client.Get(context.Background(), "/regioes")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL.Path != "/api/regioes" {
		t.Fatalf("path = %s", got.URL.Path)
	}
	if got.Header.Get("Authorization") != "Bearer abc" {
		t.Fatalf("authorization = %q", got.Header.Get("Authorization"))
	}
	if got.Header.Get("Accept") != "application/json" {
		t.Fatalf("accept = %q", got.Header.Get("Accept"))
	}
	if got.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing request id")
	}

	var items []map[string]any
	ok, err := Decode(raw, &items)
	if err != nil || !ok || len(items) != 1 {
		t.Fatalf("decode = %v %v %v", ok, err, items)
	}
}

func TestDoWithoutTokenOmitsAuthorization(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected authorization header")
		}
		_, _ = w.Write([]byte(`{}`))
	}, time.Second)
	client.SetToken("x")
	client.ClearToken()
	if client.HasToken() {
		t.Fatal("token should be cleared")
	}
	if _, err := client.Get(context.Background(), "/alertas"); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestStatusMessages(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{401, `{"message":"ignorada"}`, "Não autorizado. Faça login novamente."},
		{403, ``, "Acesso negado. Você não tem permissão para esta ação."},
		{404, ``, "Recurso não encontrado."},
		{422, ``, "Dados inválidos. Verifique as informações enviadas."},
		{500, ``, "Erro interno do servidor. Tente novamente mais tarde."},
		{503, ``, "Serviço temporariamente indisponível."},
		{409, `{"message":"Região já existe"}`, "Região já existe"},
		{400, `{"error":"campo ausente"}`, "campo ausente"},
		{418, `não json`, "erro HTTP: status 418"},
	}
	for _, tc := range cases {
		tc := tc
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}, time.Second)

		_, err := client.Get(context.Background(), "/x")
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("status %d: expected RequestError, got %v", tc.status, err)
		}
		if reqErr.Status != tc.status || reqErr.Message != tc.want {
			t.Errorf("status %d: got %d %q, want %q", tc.status, reqErr.Status, reqErr.Message, tc.want)
		}
		if !IsStatus(err, tc.status) {
			t.Errorf("IsStatus(%d) = false", tc.status)
		}
	}
}

func TestEmptyResults(t *testing.T) {
	cases := []struct {
		method string
		status int
		body   string
	}{
		{http.MethodPost, http.StatusCreated, `{"id":9}`},
		{http.MethodPost, http.StatusNoContent, ``},
		{http.MethodDelete, http.StatusNoContent, ``},
		{http.MethodPut, http.StatusOK, ``},
	}
	for _, tc := range cases {
		tc := tc
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}, time.Second)

		raw, err := client.Do(context.Background(), tc.method, "/regioes/1", map[string]any{"nome": "x"})
		if err != nil {
			t.Fatalf("%s %d: %v", tc.method, tc.status, err)
		}
		if raw != nil {
			t.Errorf("%s %d: expected nil result, got %s", tc.method, tc.status, raw)
		}
		ok, err := Decode(raw, &struct{}{})
		if ok || err != nil {
			t.Errorf("Decode(nil) = %v %v", ok, err)
		}
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "a@b.com" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`"token"`))
	}, time.Second)

	raw, err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com", "senha": "123456"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if string(raw) != `"token"` {
		t.Fatalf("raw = %s", raw)
	}
}

func TestTimeout(t *testing.T) {
	block := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(block)

	_, err := client.Get(context.Background(), "/regioes")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if err.Error() != "Tempo limite da requisição excedido" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCheckHealthSkipsPrefixAndToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("health must not send token")
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}, time.Second)
	client.SetToken("abc")

	if !client.CheckHealth(context.Background()) {
		t.Fatal("expected healthy")
	}
	info := client.Info()
	if !info.HasToken || info.Timeout != time.Second {
		t.Fatalf("info = %+v", info)
	}
}

func TestConnectionFailure(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zerolog.Nop())
	if _, err := client.Get(context.Background(), "/regioes"); err == nil {
		t.Fatal("expected connection error")
	}
	if client.CheckHealth(context.Background()) {
		t.Fatal("expected unhealthy")
	}
}
