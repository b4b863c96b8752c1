package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Antonio-Junior1/thermoguard/internal/util"
)

const defaultTimeout = 30 * time.Second

// Config descreve como alcançar a API REST.
type Config struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

// Info resume a configuração ativa para diagnóstico.
type Info struct {
	BaseURL  string
	Timeout  time.Duration
	HasToken bool
}

// Client encapsula chamadas à API ThermoGuard.
// O token bearer é compartilhado por todos os serviços do processo.
type Client struct {
	http    *resty.Client
	baseURL string
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New cria um cliente com timeout fixo e cabeçalhos JSON.
func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	logger = logger.With().Str("component", "api").Logger()

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetLogger(restyLogger{logger: logger}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		prefix:  strings.TrimRight(cfg.Prefix, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// SetToken instala o token enviado em Authorization.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken remove o token; as próximas requisições saem sem Authorization.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// HasToken informa se há token instalado.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Info devolve URL base (com prefixo), timeout e presença de token.
func (c *Client) Info() Info {
	return Info{BaseURL: c.baseURL + c.prefix, Timeout: c.timeout, HasToken: c.HasToken()}
}

// Get executa GET no caminho relativo ao prefixo da API.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post executa POST com corpo JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put executa PUT com corpo JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete executa DELETE.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do envia a requisição e devolve o corpo JSON bruto.
// Resultado nil significa resposta vazia (201/204 em POST, 204 em DELETE
// ou corpo sem conteúdo).
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.execute(ctx, method, c.prefix+path, body, true)
}

// CheckHealth consulta /health na raiz do servidor, sem token.
func (c *Client) CheckHealth(ctx context.Context) bool {
	_, err := c.execute(ctx, http.MethodGet, "/health", nil, false)
	return err == nil
}

func (c *Client) execute(ctx context.Context, method, path string, body any, withAuth bool) (json.RawMessage, error) {
	requestID := util.NewRequestID()
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if body != nil {
		req.SetBody(body)
	}
	if withAuth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if isTimeout(ctx, err) {
			c.logger.Error().Str("method", method).Str("path", path).Str("request_id", requestID).Msg("requisição expirou")
			return nil, ErrTimeout
		}
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("falha na requisição")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		reqErr := newRequestError(status, resp.Body())
		c.logger.Warn().Int("status", status).Str("method", method).Str("path", path).Str("request_id", requestID).Msg(reqErr.Message)
		return nil, reqErr
	}

	switch {
	case method == http.MethodPost && (status == http.StatusCreated || status == http.StatusNoContent):
		return nil, nil
	case method == http.MethodDelete && status == http.StatusNoContent:
		return nil, nil
	}

	raw := bytes.TrimSpace(resp.Body())
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		c.logger.Error().Int("status", status).Str("path", path).Msg("resposta não é JSON")
		return nil, fmt.Errorf("%s %s: resposta inválida", method, path)
	}
	return json.RawMessage(raw), nil
}

// Decode converte o corpo bruto em out. Devolve false quando não há corpo.
func Decode(raw json.RawMessage, out any) (bool, error) {
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decodificar resposta: %w", err)
	}
	return true, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.logger.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.logger.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.logger.Debug().Msgf(format, v...) }
