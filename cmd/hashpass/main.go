package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Antonio-Junior1/thermoguard/internal/auth"
)

// hashpass gera o hash argon2id da senha do administrador da API falsa.
// Sem argumento, lê a senha da entrada padrão.
func main() {
	var password string
	if len(os.Args) >= 2 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "uso: hashpass <senha>  (ou envie a senha pela entrada padrão)")
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "senha vazia")
		os.Exit(1)
	}

	hash, err := auth.Hash(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao gerar hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("MOCK_ADMIN_PASSWORD_HASH=%s\n", hash)
}
