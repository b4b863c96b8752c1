package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Antonio-Junior1/thermoguard/internal/app"
	"github.com/Antonio-Junior1/thermoguard/internal/config"
	"github.com/Antonio-Junior1/thermoguard/internal/logging"
	"github.com/Antonio-Junior1/thermoguard/internal/regiao"
	"github.com/Antonio-Junior1/thermoguard/internal/report"
	"github.com/Antonio-Junior1/thermoguard/internal/screen"
	"github.com/Antonio-Junior1/thermoguard/internal/sensor"
	"github.com/Antonio-Junior1/thermoguard/internal/session"
	"github.com/Antonio-Junior1/thermoguard/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "erro:", screen.AlertMessage(err, err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "tui"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		usage()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// a TUI ocupa o terminal, então o log vai para arquivo
	if cmd == "tui" && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Session.File), "thermoguard.log")
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "tui":
		return tui.Run(a)
	case "health":
		return runHealth(ctx, a)
	case "login":
		return runLogin(ctx, a, args)
	case "register":
		return runRegister(ctx, a, args)
	case "logout":
		a.Session.CheckAuthStatus(ctx)
		if err := a.Session.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Sessão encerrada")
		return nil
	case "status":
		return runStatus(ctx, a)
	}

	if !a.Session.CheckAuthStatus(ctx) {
		return errors.New("sessão ausente ou expirada; execute thermoguard login")
	}
	switch cmd {
	case "regioes":
		list, err := a.Regioes.ListAll(ctx)
		if err != nil {
			return err
		}
		return printJSON(list, "nenhuma região cadastrada")
	case "sensores":
		return runSensores(ctx, a, args)
	case "leituras":
		return runLeituras(ctx, a, args)
	case "alertas":
		list, err := a.Alertas.ListAll(ctx)
		if err != nil {
			return err
		}
		return printJSON(list, "nenhum alerta cadastrado")
	case "usuarios":
		list, err := a.Usuarios.ListAll(ctx)
		if err != nil {
			return err
		}
		return printJSON(list, "nenhum usuário cadastrado")
	case "export":
		return runExport(ctx, a, args)
	}

	usage()
	return fmt.Errorf("comando desconhecido: %s", cmd)
}

func usage() {
	fmt.Fprintln(os.Stderr, "thermoguard CLI")
	fmt.Fprintln(os.Stderr, "uso:")
	fmt.Fprintln(os.Stderr, "  thermoguard [tui]")
	fmt.Fprintln(os.Stderr, "  thermoguard login --email admin@thermoguard.com [--senha ...]")
	fmt.Fprintln(os.Stderr, "  thermoguard register --nome \"Maria\" --email maria@x.com --tipo CIDADAO [--regiao 1]")
	fmt.Fprintln(os.Stderr, "  thermoguard logout | status | health")
	fmt.Fprintln(os.Stderr, "  thermoguard regioes | alertas | usuarios")
	fmt.Fprintln(os.Stderr, "  thermoguard sensores [--status ATIVO] [--page 0 --size 10 --sort modelo]")
	fmt.Fprintln(os.Stderr, "  thermoguard leituras [--medias]")
	fmt.Fprintln(os.Stderr, "  thermoguard export --tipo regioes|sensores --out relatorio.xlsx")
}

func runHealth(ctx context.Context, a *app.App) error {
	info := a.Client.Info()
	if !a.Client.CheckHealth(ctx) {
		return fmt.Errorf("API indisponível em %s", info.BaseURL)
	}
	fmt.Printf("API disponível em %s\n", info.BaseURL)
	return nil
}

func runLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	email := fs.String("email", "", "email do usuário")
	senha := fs.String("senha", "", "senha (lida da entrada padrão se omitida)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *senha == "" {
		pw, err := readSecret("Senha: ")
		if err != nil {
			return err
		}
		*senha = pw
	}

	form := screen.NewLoginForm(a.Session, a.Router, a.Logger)
	form.Email, form.Senha = *email, *senha
	res, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Login realizado com sucesso! %s (%s), sessão até %s\n",
		res.Usuario.Nome, res.Usuario.Email, res.Expiry.Format(time.RFC3339))
	return nil
}

func runRegister(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	nome := fs.String("nome", "", "nome completo")
	email := fs.String("email", "", "email")
	tipo := fs.String("tipo", "CIDADAO", "tipo do usuário")
	regiao := fs.Int64("regiao", 0, "id da região (opcional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	senha, err := readSecret("Senha: ")
	if err != nil {
		return err
	}
	confirmar, err := readSecret("Confirmar senha: ")
	if err != nil {
		return err
	}

	res, err := a.Session.Register(ctx, session.RegisterInput{
		Nome:           *nome,
		Email:          *email,
		Senha:          senha,
		ConfirmarSenha: confirmar,
		Tipo:           strings.ToUpper(*tipo),
		IDRegiao:       *regiao,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Cadastro realizado: %s (%s)\n", res.Usuario.Nome, res.Usuario.Email)
	return nil
}

func runStatus(ctx context.Context, a *app.App) error {
	ok := a.Session.CheckAuthStatus(ctx)
	if !ok {
		fmt.Println("não autenticado")
		return nil
	}
	out := map[string]any{
		"estado":  a.Session.State().String(),
		"usuario": a.Session.CurrentUser(),
		"expira":  a.Session.Expiry().Format(time.RFC3339),
		"api":     a.Client.Info(),
	}
	return printJSON(out, "")
}

func runSensores(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("sensores", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	status := fs.String("status", "", "filtra por status")
	page := fs.Int("page", -1, "página (ativa a listagem paginada)")
	size := fs.Int("size", 10, "itens por página")
	sortBy := fs.String("sort", "", "campo de ordenação")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *status != "":
		p := *page
		if p < 0 {
			p = 0
		}
		res, err := a.Sensores.FilterByStatus(ctx, strings.ToUpper(*status), p, *size, *sortBy)
		if err != nil {
			return err
		}
		return printJSON(res, "")
	case *page >= 0:
		res, err := a.Sensores.ListPaged(ctx, *page, *size, *sortBy)
		if err != nil {
			return err
		}
		return printJSON(res, "")
	}
	list, err := a.Sensores.ListAll(ctx)
	if err != nil {
		return err
	}
	return printJSON(list, "nenhum sensor cadastrado")
}

func runLeituras(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("leituras", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	medias := fs.Bool("medias", false, "temperatura média por região")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *medias {
		list, err := a.Leituras.AverageTemperatureByRegion(ctx)
		if err != nil {
			return err
		}
		return printJSON(list, "nenhuma leitura registrada")
	}
	list, err := a.Leituras.ListAll(ctx)
	if err != nil {
		return err
	}
	return printJSON(list, "nenhuma leitura registrada")
}

func runExport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	tipo := fs.String("tipo", "regioes", "regioes ou sensores")
	out := fs.String("out", "", "arquivo .xlsx de saída")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		*out = *tipo + ".xlsx"
	}

	if *tipo != "regioes" && *tipo != "sensores" {
		return fmt.Errorf("tipo de relatório inválido: %s", *tipo)
	}

	var (
		regioes  []regiao.Regiao
		sensores []sensor.Sensor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		regioes, err = a.Regioes.ListAll(gctx)
		return err
	})
	if *tipo == "sensores" {
		g.Go(func() (err error) {
			sensores, err = a.Sensores.ListAll(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if *tipo == "sensores" {
		data, err = report.Sensores(sensores, regioes)
	} else {
		data, err = report.Regioes(regioes)
	}
	if err != nil {
		return fmt.Errorf("relatório: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("gravar relatório: %w", err)
	}
	log.Info().Str("arquivo", *out).Msg("relatório gerado")
	fmt.Printf("Relatório salvo em %s\n", *out)
	return nil
}

func printJSON(v any, empty string) error {
	if empty != "" {
		raw, _ := json.Marshal(v)
		if string(raw) == "[]" || string(raw) == "null" {
			fmt.Println(empty)
			return nil
		}
	}
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

var stdin = bufio.NewReader(os.Stdin)

func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
