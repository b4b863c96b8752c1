package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDevAPIURL  = "http://10.0.2.2:8080"
	defaultProdAPIURL = "https://api.thermoguard.com"
)

// Config centraliza a configuração do cliente carregada do ambiente.
type Config struct {
	Env         string
	API         APIConfig
	Session     SessionConfig
	Log         LogConfig
	Location    LocationConfig
	Temperature TemperatureLimits
}

// APIConfig descreve como alcançar a API REST.
type APIConfig struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

// SessionConfig reúne armazenamento e regras de segurança da sessão.
type SessionConfig struct {
	Store            string
	File             string
	RedisURL         string
	StorageKey       string
	TokenTTL         time.Duration
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

// LogConfig controla nível, formato e destino dos logs.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LocationConfig simula o serviço de localização do dispositivo.
type LocationConfig struct {
	PermissionGranted bool
	Latitude          float64
	Longitude         float64
}

// TemperatureLimits define as faixas de classificação de temperatura (°C).
type TemperatureLimits struct {
	CriticalHigh float64
	WarningHigh  float64
	WarningLow   float64
	CriticalLow  float64
}

// MockAPIConfig configura a API falsa usada em demonstrações e testes.
type MockAPIConfig struct {
	Port            int
	Prefix          string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	JWTRefreshTTL   time.Duration
	AdminEmail      string
	AdminPassword   string
	AdminHash       string
	AllowOrigins    []string
	RedisURL        string
	RateLimitPerSec float64
	RateLimitBurst  int
	LoginResponse   string
	SeedDemo        bool
	Log             LogConfig
}

// Load carrega variáveis de ambiente do cliente e aplica defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Env: strings.ToLower(getEnv("APP_ENV", "development"))}

	baseURL := strings.TrimSpace(getEnv("API_BASE_URL", ""))
	if baseURL == "" {
		baseURL = defaultDevAPIURL
		if cfg.Env == "production" {
			baseURL = defaultProdAPIURL
		}
	}
	cfg.API.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.API.Prefix = normalizePrefix(getEnv("API_PREFIX", "/api"))

	timeout, err := parseDurationEnv("API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.API.Timeout = timeout

	cfg.Session.Store = strings.ToLower(getEnv("SESSION_STORE", "file"))
	switch cfg.Session.Store {
	case "file", "redis", "memory":
	default:
		return nil, errors.New("SESSION_STORE deve ser file, redis ou memory")
	}
	cfg.Session.File = getEnv("SESSION_FILE", defaultSessionFile())
	cfg.Session.RedisURL = getEnv("REDIS_URL", "")
	if cfg.Session.Store == "redis" && cfg.Session.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório quando SESSION_STORE=redis")
	}
	cfg.Session.StorageKey = getEnv("STORAGE_KEY", "thermoguard_data")

	if cfg.Session.TokenTTL, err = parseDurationEnv("TOKEN_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.LockoutDuration, err = parseDurationEnv("LOCKOUT_TIME", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Session.MaxLoginAttempts, err = getEnvInt("MAX_LOGIN_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.Session.MaxLoginAttempts <= 0 {
		return nil, errors.New("MAX_LOGIN_ATTEMPTS deve ser positivo")
	}

	cfg.Log = loadLogConfig()

	cfg.Location.PermissionGranted = strings.EqualFold(getEnv("LOCATION_PERMISSION", "granted"), "granted")
	if cfg.Location.Latitude, err = getEnvFloat("DEVICE_LATITUDE", -23.5505); err != nil {
		return nil, err
	}
	if cfg.Location.Longitude, err = getEnvFloat("DEVICE_LONGITUDE", -46.6333); err != nil {
		return nil, err
	}

	limits := TemperatureLimits{}
	if limits.CriticalHigh, err = getEnvFloat("TEMP_CRITICAL_HIGH", 35); err != nil {
		return nil, err
	}
	if limits.WarningHigh, err = getEnvFloat("TEMP_WARNING_HIGH", 30); err != nil {
		return nil, err
	}
	if limits.WarningLow, err = getEnvFloat("TEMP_WARNING_LOW", 10); err != nil {
		return nil, err
	}
	if limits.CriticalLow, err = getEnvFloat("TEMP_CRITICAL_LOW", 5); err != nil {
		return nil, err
	}
	if !(limits.CriticalLow <= limits.WarningLow && limits.WarningLow <= limits.WarningHigh && limits.WarningHigh <= limits.CriticalHigh) {
		return nil, errors.New("limites de temperatura fora de ordem")
	}
	cfg.Temperature = limits

	return cfg, nil
}

// LoadMockAPI carrega a configuração da API falsa.
func LoadMockAPI() (*MockAPIConfig, error) {
	_ = godotenv.Load()

	cfg := &MockAPIConfig{}

	port, err := getEnvInt("PORT", 8080)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port
	cfg.Prefix = normalizePrefix(getEnv("API_PREFIX", "/api"))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTRefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(getEnv("MOCK_ADMIN_EMAIL", "admin@thermoguard.com")))
	cfg.AdminHash = strings.TrimSpace(getEnv("MOCK_ADMIN_PASSWORD_HASH", ""))
	if cfg.AdminHash == "" {
		cfg.AdminPassword = getEnv("MOCK_ADMIN_PASSWORD", "admin")
	}

	for _, origin := range strings.Split(getEnv("ALLOW_ORIGINS", ""), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}
	cfg.RedisURL = getEnv("REDIS_URL", "")

	if cfg.RateLimitPerSec, err = getEnvFloat("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	cfg.LoginResponse = strings.ToLower(getEnv("MOCK_LOGIN_RESPONSE", "bare"))
	if cfg.LoginResponse != "bare" && cfg.LoginResponse != "object" {
		return nil, errors.New("MOCK_LOGIN_RESPONSE deve ser bare ou object")
	}
	cfg.SeedDemo = !strings.EqualFold(getEnv("MOCK_SEED_DEMO", "true"), "false")

	cfg.Log = loadLogConfig()
	return cfg, nil
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		File:   getEnv("LOG_FILE", ""),
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".thermoguard-session.json")
	}
	return filepath.Join(dir, "thermoguard", "session.json")
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}

func getEnvInt(key string, def int) (int, error) {
	val := strings.TrimSpace(getEnv(key, ""))
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	val := strings.TrimSpace(getEnv(key, ""))
	if val == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return f, nil
}
