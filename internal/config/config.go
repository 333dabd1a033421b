package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSOrigins []string

	// Role resolution and admin registration. Deployments customize these
	// lists instead of editing code.
	StudentDomains []string
	AdminDomains   []string
	AdminKeys      []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "internhub-backend"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		StudentDomains: parseCSV(fallback(os.Getenv("STUDENT_EMAIL_DOMAINS"),
			"unza.zm,cs.unza.zm")),
		AdminDomains: parseCSV(fallback(os.Getenv("ADMIN_EMAIL_DOMAINS"),
			"admin.university.edu,it.university.edu,careers.university.edu,internship.university.edu")),
		AdminKeys: parseCSV(fallback(os.Getenv("ADMIN_REGISTRATION_KEYS"),
			"UNI_ADMIN_2024,CS_DEPT_KEY,INTERNSHIP_ADMIN")),
	}

	hours := fallback(os.Getenv("JWT_TTL_HOURS"), "24")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.JWTTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.JWTTTL = 24 * time.Hour
	}

	cost := fallback(os.Getenv("BCRYPT_COST"), "12")
	if c, err := strconv.Atoi(cost); err == nil && c >= 4 && c <= 31 {
		cfg.BcryptCost = c
	} else {
		cfg.BcryptCost = 12
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
