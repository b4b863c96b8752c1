package auth

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// ErrEmptyPassword é devolvido ao tentar gerar hash de senha vazia.
var ErrEmptyPassword = errors.New("senha vazia")

var hashParams = argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash gera o hash Argon2id guardado pela API falsa no lugar da senha.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	return argon2id.CreateHash(password, &hashParams)
}

// Verify informa se a senha confere. Hash malformado conta como senha errada.
func Verify(password, encodedHash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, encodedHash)
	return err == nil && ok
}
