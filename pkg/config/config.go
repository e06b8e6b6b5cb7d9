package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Model    ModelConfig
	Explain  ExplainConfig
	JWT      JWTConfig
	Audit    AuditConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type ModelConfig struct {
	// Path to the model artifact JSON consumed at startup and on reload.
	Path string
}

type ExplainConfig struct {
	TopK          int
	ExplainBudget time.Duration
	RequestBudget time.Duration
}

type JWTConfig struct {
	SecretKey string
}

type AuditConfig struct {
	Enabled bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	topK, err := getEnvInt("EXPLAIN_TOP_K", 5)
	if err != nil {
		return nil, errors.New("invalid EXPLAIN_TOP_K")
	}

	explainBudgetMs, err := getEnvInt("EXPLAIN_BUDGET_MS", 100)
	if err != nil {
		return nil, errors.New("invalid EXPLAIN_BUDGET_MS")
	}

	requestBudgetMs, err := getEnvInt("REQUEST_BUDGET_MS", 200)
	if err != nil {
		return nil, errors.New("invalid REQUEST_BUDGET_MS")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Credit Risk Decision Engine"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Model: ModelConfig{
			Path: getEnv("MODEL_PATH", "data/models/credit_risk_v1.json"),
		},
		Explain: ExplainConfig{
			TopK:          topK,
			ExplainBudget: time.Duration(explainBudgetMs) * time.Millisecond,
			RequestBudget: time.Duration(requestBudgetMs) * time.Millisecond,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Audit: AuditConfig{
			Enabled: getEnv("AUDIT_DB_ENABLED", "false") == "true",
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "credit_risk"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
	}

	if cfg.Explain.TopK <= 0 {
		return nil, errors.New("EXPLAIN_TOP_K must be positive")
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Audit.Enabled && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}
