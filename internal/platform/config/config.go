// Pacote config centraliza o carregamento das variáveis de ambiente usadas pelo binário da API.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config agrega todos os parâmetros de execução da API de eleições.
type Config struct {
	HTTPAddress string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	TravaKeyPrefix     string
	TravaTTLSegundos   int
	RateLimitEnabled   bool
	RateLimitMaxVotos  int
	RateLimitJanelaSeg int
	RateLimitKeyPrefix string

	AutoMigrate bool
}

func Load() (Config, error) {
	// .env é opcional: em Docker/K8s as variáveis chegam pelo ambiente.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:        getEnv("HTTP_ADDRESS", ":8080"),
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:       getEnv("POSTGRES_USER", "eleicoes"),
		PostgresPassword:   getEnv("POSTGRES_PASSWORD", "eleicoes"),
		PostgresDB:         getEnv("POSTGRES_DB", "eleicoes_diretoria"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TravaKeyPrefix:     getEnv("REDIS_LOCK_PREFIX", "trava:eleicao"),
		TravaTTLSegundos:   getEnvAsInt("REDIS_LOCK_TTL", 10),
		RateLimitEnabled:   getEnvAsBool("RATE_LIMIT_ENABLED", true),
		RateLimitMaxVotos:  getEnvAsInt("RATE_LIMIT_MAX", 10),
		RateLimitJanelaSeg: getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitKeyPrefix: getEnv("RATE_LIMIT_PREFIX", "ratelimit:voto"),
		AutoMigrate:        getEnvAsBool("DB_AUTO_MIGRATE", true),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET obrigatorio")
	}

	dbStr := getEnv("REDIS_DB", "0")
	dbInt, err := strconv.Atoi(dbStr)
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB invalido: %w", err)
	}
	cfg.RedisDB = dbInt

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
