package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
	"github.com/Antonio-Junior1/thermoguard/internal/usuario"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type registerRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Tipo     string `json:"tipo"`
	IDRegiao int64  `json:"idRegiao"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Token        string           `json:"token"`
	Usuario      *usuario.Usuario `json:"usuario,omitempty"`
	RefreshToken string           `json:"refreshToken,omitempty"`
}

// Login autentica por e-mail e senha. No modo "bare" a resposta é só o JWT
// como string JSON, sem refresh token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Senha == "" {
		writeValidation(w, []string{"Email e senha são obrigatórios"})
		return
	}

	user, hash, ok := s.store.Credentials(req.Email)
	if !ok || hash == "" {
		writeError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas", nil)
		return
	}
	if !auth.Verify(req.Senha, hash) {
		writeError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas", nil)
		return
	}

	token, _, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Tipo, tokenAudience)
	if err != nil {
		s.logger.Error().Err(err).Msg("erro ao gerar token")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}

	if s.cfg.LoginResponse != "object" {
		writeJSON(w, http.StatusOK, token)
		return
	}

	refresh, err := s.refresh.Issue(r.Context(), user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("erro ao gravar refresh token")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Usuario: &user, RefreshToken: refresh})
}

// Register cria a conta e devolve a sessão completa.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	in := usuario.Input{Nome: req.Nome, Email: req.Email, Tipo: req.Tipo, IDRegiao: req.IDRegiao}
	errs := usuario.Validate(in)
	if len(req.Senha) < 6 {
		errs = append(errs, "Senha deve ter pelo menos 6 caracteres")
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	hash, err := auth.Hash(req.Senha)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}
	user, err := s.store.CreateUsuario(usuario.Usuario{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    req.Email,
		Tipo:     req.Tipo,
		IDRegiao: req.IDRegiao,
	}, hash)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.writeSession(w, r, user)
}

// Refresh troca o refresh token por um novo par. O token usado é invalidado.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(w, r, &req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION", "refreshToken obrigatório", nil)
		return
	}

	id, err := s.refresh.Consume(r.Context(), req.RefreshToken)
	if errors.Is(err, auth.ErrInvalidRefresh) {
		writeError(w, http.StatusUnauthorized, "AUTH", err.Error(), nil)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("erro no refresh token")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}
	user, err := s.store.GetUsuario(id)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH", auth.ErrInvalidRefresh.Error(), nil)
		return
	}

	s.writeSession(w, r, user)
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, user usuario.Usuario) {
	token, _, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Tipo, tokenAudience)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}
	refresh, err := s.refresh.Issue(r.Context(), user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("erro ao gravar refresh token")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Usuario: &user, RefreshToken: refresh})
}
