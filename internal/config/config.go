package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr    string
	DBURL       string
	DBMaxConns  int32
	AdminToken  string
	UserToken   string
	Migrate     bool
	Environment string
}

func Load() Config {
	return Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DBURL:       getEnv("DB_URL", "postgres://postgres:postgres@db:5432/serve_stats?sslmode=disable"),
		DBMaxConns:  int32(getEnvInt("DB_MAX_CONNS", 10)),
		AdminToken:  getEnv("ADMIN_TOKEN", "admin-secret"),
		UserToken:   getEnv("USER_TOKEN", "user-secret"),
		Migrate:     getEnv("RUN_MIGRATIONS", "true") == "true",
		Environment: getEnv("ENVIRONMENT", "local"),
	}
}

func getEnv(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// getEnvInt falls back to def when the variable is unset or not an integer.
func getEnvInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}
