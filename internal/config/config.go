package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCatalogURL     = "https://dummyjson.com"
	DefaultCatalogTimeout = 10 * time.Second
)

// DefaultKeywords is the beauty allow-list the storefront ships with.
var DefaultKeywords = []string{
	"essence", "mascara", "lipstick", "foundation", "concealer", "eyeliner",
	"eyeshadow", "blush", "bronzer", "highlighter", "powder", "cream",
	"serum", "moisturizer", "cleanser", "toner", "mask", "scrub",
	"perfume", "cologne", "fragrance", "beauty", "cosmetic", "makeup",
	"skincare", "hair", "nail", "brush", "sponge", "mirror",
}

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogKeywords []string

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool
	InstanceLimit int

	KafkaBrokers []string

	DatabaseURL        string
	AccountsSQLitePath string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	return &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		CatalogBaseURL:  strings.TrimRight(EnvDefault("CATALOG_BASE_URL", DefaultCatalogURL), "/"),
		CatalogTimeout:  EnvDurationDefault("CATALOG_TIMEOUT", DefaultCatalogTimeout),
		CatalogKeywords: Keywords(os.Getenv("CATALOG_KEYWORDS")),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", 24*time.Hour),
		CookieSecure:  !strings.EqualFold(os.Getenv("COOKIE_SECURE"), "false"),
		InstanceLimit: EnvIntDefault("INSTANCE_LIMIT", 10000),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AccountsSQLitePath: os.Getenv("ACCOUNTS_SQLITE_PATH"),
	}
}

// Keywords parses CATALOG_KEYWORDS. Unset means the default list, "none"
// switches filtering off.
func Keywords(v string) []string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return append([]string(nil), DefaultKeywords...)
	case strings.EqualFold(v, "none"):
		return nil
	default:
		return CSV(v)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
