package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Settings holds everything the server reads from the environment.
// The workbook is the only data source; there is no database.
type Settings struct {
	Port         string   `validate:"required,numeric"`
	WorkbookPath string   `validate:"required"`
	CorsOrigins  []string `validate:"required,min=1"`

	ReportCacheEnabled    bool
	ReportCacheTTLSeconds int `validate:"min=1"`
	ReportSlowMs          int `validate:"min=1"`
}

var settings *Settings

func GetSettings() *Settings {
	return settings
}

func init() {
	// Load env from .env (missing file is fine, real env wins).
	godotenv.Load()
}

// LoadSettings reads and validates the environment. Call from main() before
// anything else; an invalid environment is a startup failure, not a request
// failure.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Port:                  envOr("API_PORT", "8080"),
		WorkbookPath:          envOr("WORKBOOK_PATH", "Dados/dados_moleka_2022.xlsx"),
		CorsOrigins:           splitCsv(envOr("CORS_ORIGINS", "http://localhost:5173")),
		ReportCacheEnabled:    envBool("ENABLE_REPORT_CACHE"),
		ReportCacheTTLSeconds: envInt("REPORT_CACHE_TTL_SECONDS", 120),
		ReportSlowMs:          envInt("REPORT_SLOW_MS", 500),
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, err
	}

	settings = s
	return s, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitCsv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
