package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyEmail   contextKey = "email"
	ContextKeyTipo    contextKey = "tipo"
)

// Auth valida o JWT de acesso e injeta os claims no contexto.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)
			ctx = context.WithValue(ctx, ContextKeyTipo, claims.Tipo)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject recupera o id do usuário autenticado.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetEmail recupera o e-mail do token.
func GetEmail(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyEmail).(string)
	return val
}

// GetTipo recupera o perfil do usuário (CIDADAO, AGENTE, ADMIN).
func GetTipo(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyTipo).(string)
	return val
}

// Permission exige que o perfil autenticado possa executar a ação do método HTTP.
// GET visualizar, POST criar, PUT editar, DELETE deletar.
func Permission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acao, ok := methodAction(r.Method)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if !usuario.TemPermissao(GetTipo(r.Context()), acao) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "perfil sem permissão para "+acao)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAction exige que o perfil autenticado possa executar a ação informada.
func RequireAction(acao string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !usuario.TemPermissao(GetTipo(r.Context()), acao) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "perfil sem permissão para "+acao)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func methodAction(method string) (string, bool) {
	switch method {
	case http.MethodGet, http.MethodHead:
		return usuario.AcaoVisualizar, true
	case http.MethodPost:
		return usuario.AcaoCriar, true
	case http.MethodPut, http.MethodPatch:
		return usuario.AcaoEditar, true
	case http.MethodDelete:
		return usuario.AcaoDeletar, true
	default:
		return "", false
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
