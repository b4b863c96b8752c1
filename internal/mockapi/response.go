package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// writeJSON escreve o corpo sem envelope, no formato que o app consome.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Data:  nil,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

func writeValidation(w http.ResponseWriter, errs []string) {
	writeError(w, http.StatusUnprocessableEntity, "VALIDATION", "Dados inválidos", errs)
}

// writeStoreError traduz erros do store para status HTTP.
func writeStoreError(w http.ResponseWriter, err error) {
	var fk *ForeignKeyError
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Recurso não encontrado", nil)
	case errors.As(err, &fk):
		writeError(w, http.StatusUnprocessableEntity, "FOREIGN_KEY", fk.Error(), nil)
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusConflict, "CONFLICT", "Email já cadastrado", nil)
	case errors.Is(err, ErrInUse):
		writeError(w, http.StatusConflict, "IN_USE", "Registro possui vínculos e não pode ser removido", nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(out)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return 0, false
	}
	return id, true
}

func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
