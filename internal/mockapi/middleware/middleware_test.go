package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthRejectsMissingToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Minute)
	rec := httptest.NewRecorder()
	Auth(jwtManager)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/regioes", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthAndPermission(t *testing.T) {
	jwtManager := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Minute)
	token, _, err := jwtManager.GenerateAccessToken(3, "cidadao@x.com", usuario.TipoCidadao, "thermoguard")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	h := Auth(jwtManager)(Permission(okHandler))

	cases := map[string]int{
		http.MethodGet:    http.StatusOK,
		http.MethodPost:   http.StatusForbidden,
		http.MethodDelete: http.StatusForbidden,
	}
	for method, want := range cases {
		req := httptest.NewRequest(method, "/api/regioes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("%s status = %d, want %d", method, rec.Code, want)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:8081", "*.thermoguard.com"})(okHandler)

	cases := map[string]bool{
		"http://localhost:8081":       true,
		"https://app.thermoguard.com": true,
		"https://thermoguard.com":     false,
		"https://evil.com":            false,
	}
	for origin, allowed := range cases {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		got := rec.Header().Get("Access-Control-Allow-Origin") == origin
		if got != allowed {
			t.Errorf("origin %s allowed = %v, want %v", origin, got, allowed)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/regioes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
}

func TestIPRateLimit(t *testing.T) {
	h := IPRateLimit(NewRateLimiter(0.001, 2))(okHandler)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	Recover(zerolog.Nop())(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
