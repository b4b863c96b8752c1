package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrTimeout indica que o prazo da requisição expirou antes da resposta.
var ErrTimeout = errors.New("Tempo limite da requisição excedido")

var statusMessages = map[int]string{
	http.StatusUnauthorized:        "Não autorizado. Faça login novamente.",
	http.StatusForbidden:           "Acesso negado. Você não tem permissão para esta ação.",
	http.StatusNotFound:            "Recurso não encontrado.",
	http.StatusUnprocessableEntity: "Dados inválidos. Verifique as informações enviadas.",
	http.StatusInternalServerError: "Erro interno do servidor. Tente novamente mais tarde.",
	http.StatusServiceUnavailable:  "Serviço temporariamente indisponível.",
}

// RequestError representa uma resposta fora da faixa 2xx.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsStatus informa se err é um RequestError com o status indicado.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}

// newRequestError escolhe a mensagem: primeiro a tabela fixa, depois os
// campos message/error do corpo JSON, por fim um texto genérico.
func newRequestError(status int, body []byte) *RequestError {
	if msg, ok := statusMessages[status]; ok {
		return &RequestError{Status: status, Message: msg}
	}
	if msg := messageFromBody(body); msg != "" {
		return &RequestError{Status: status, Message: msg}
	}
	return &RequestError{Status: status, Message: fmt.Sprintf("erro HTTP: status %d", status)}
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	if len(payload.Error) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(payload.Error, &text) == nil {
		return strings.TrimSpace(text)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload.Error, &nested) == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}
