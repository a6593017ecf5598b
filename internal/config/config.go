package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultLogLevel      = "info"
	defaultAttemptFactor = 200
)

type Config struct {
	PostgresDSN           string
	PostgresMigrationsDir string
	DBPath                string
	DBMigrationsDir       string
	HTTPAddr              string
	LogLevel              string
	LogFormat             string
	AttemptFactor         int
	LambdaFunctionName    string
}

// OnLambda reports whether the process runs inside AWS Lambda.
func (c Config) OnLambda() bool {
	return c.LambdaFunctionName != ""
}

// Load reads .env files outside Lambda, then the process environment.
func Load() (Config, error) {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		PostgresDSN:           get("POSTGRES_DSN"),
		PostgresMigrationsDir: get("POSTGRES_MIGRATIONS_DIR"),
		DBPath:                get("DB_PATH"),
		DBMigrationsDir:       get("DB_MIGRATIONS_DIR"),
		HTTPAddr:              get("HTTP_ADDR"),
		LogLevel:              get("LOG_LEVEL"),
		LogFormat:             get("LOG_FORMAT"),
		AttemptFactor:         defaultAttemptFactor,
		LambdaFunctionName:    get("AWS_LAMBDA_FUNCTION_NAME"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if raw := get("GENERATE_ATTEMPT_FACTOR"); raw != "" {
		factor, err := strconv.Atoi(raw)
		if err != nil || factor <= 0 {
			return Config{}, fmt.Errorf("GENERATE_ATTEMPT_FACTOR must be a positive integer, got %q", raw)
		}
		cfg.AttemptFactor = factor
	}
	return cfg, nil
}
