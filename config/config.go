package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything read from the environment. Defaults are chosen so
// a bare `go run .` serves compile requests against a local xelatex install.
type Config struct {
	Port           string
	Env            string
	AllowedOrigins []string

	LatexBin       string
	AssetsDir      string
	ScratchDir     string
	CompileTimeout time.Duration

	CompileRatePerMin int
	GeneralRatePerMin int

	DraftStore    string
	DraftFile     string
	DBDSN         string
	DraftDebounce time.Duration
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3001"),
		Env:            getEnv("APP_ENV", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		LatexBin:       getEnv("LATEX_BIN", "xelatex"),
		AssetsDir:      getEnv("ASSETS_DIR", "./assets"),
		ScratchDir:     getEnv("SCRATCH_DIR", ""),
		CompileTimeout: time.Duration(getEnvInt("COMPILE_TIMEOUT", 90)) * time.Second,

		CompileRatePerMin: getEnvInt("COMPILE_RATE_PER_MIN", 10),
		GeneralRatePerMin: getEnvInt("GENERAL_RATE_PER_MIN", 100),

		DraftStore:    getEnv("DRAFT_STORE", "file"),
		DraftFile:     getEnv("DRAFT_FILE", "./data/draft.json"),
		DBDSN:         getEnv("DB_DSN", ""),
		DraftDebounce: time.Duration(getEnvInt("DRAFT_DEBOUNCE_MS", 750)) * time.Millisecond,
	}
}

// IsProduction reports whether the service runs in production mode, which
// suppresses engine logs in error responses and disables CORS headers.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
