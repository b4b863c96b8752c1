package util

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError agrega mensagens de validação de formulário.
// Nunca chega à rede: é devolvido antes de qualquer requisição.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "dados inválidos"
	}
	return strings.Join(e.Errors, "; ")
}

// Check devolve *ValidationError quando há mensagens, nil caso contrário.
func Check(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// IsBlank indica string vazia ou só com espaços.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsValidEmail verifica o formato básico usuario@dominio.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// TooLong compara pelo número de caracteres, não de bytes.
func TooLong(value string, max int) bool {
	return utf8.RuneCountInString(value) > max
}

// OneOf verifica se value está entre as opções permitidas.
func OneOf(value string, options ...string) bool {
	for _, opt := range options {
		if value == opt {
			return true
		}
	}
	return false
}

// IsFinite rejeita NaN e infinitos.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FieldErrors associa cada mensagem a um único campo: o primeiro, em ordem
// alfabética de nome, cujo rótulo ela menciona. Mensagens sem campo
// correspondente ficam de fora; cada campo guarda a primeira mensagem.
func FieldErrors(errs []string, labels map[string]string) map[string]string {
	fields := make([]string, 0, len(labels))
	for field := range labels {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make(map[string]string, len(errs))
	for _, msg := range errs {
		for _, field := range fields {
			if strings.Contains(msg, labels[field]) {
				if _, exists := out[field]; !exists {
					out[field] = msg
				}
				break
			}
		}
	}
	return out
}

// Option é um par rótulo/valor exibido em seletores.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
