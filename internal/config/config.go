package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"msgsource/internal/domain"
)

// Message catalog sources.
const (
	SourceFiles    = "files"
	SourceDatabase = "database"
)

type Config struct {
	MessagesDir      string
	Basenames        []string
	Source           string
	DatabaseURL      string
	UseCodeAsDefault bool
	LanguageFallback bool
	FormatCacheSize  int
	LogLevel         string
	LogFormat        string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		MessagesDir: os.Getenv("MESSAGES_DIR"),
		Basenames:   splitList(os.Getenv("MESSAGES_BASENAME")),
		Source:      strings.ToLower(strings.TrimSpace(os.Getenv("MESSAGES_SOURCE"))),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}

	var err error
	if cfg.UseCodeAsDefault, err = boolEnv("MESSAGES_USE_CODE_AS_DEFAULT", false); err != nil {
		return nil, err
	}
	if cfg.LanguageFallback, err = boolEnv("MESSAGES_LANGUAGE_FALLBACK", true); err != nil {
		return nil, err
	}
	if cfg.FormatCacheSize, err = intEnv("MESSAGES_FORMAT_CACHE_SIZE", 256); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate fills defaults and checks the loaded values.
func (c *Config) validate() error {
	if strings.TrimSpace(c.MessagesDir) == "" {
		c.MessagesDir = "."
	}
	if len(c.Basenames) == 0 {
		c.Basenames = []string{"messages"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	switch c.Source {
	case "":
		c.Source = SourceFiles
	case SourceFiles, SourceDatabase:
	default:
		return fmt.Errorf("config: MESSAGES_SOURCE must be %q or %q, got %q: %w", SourceFiles, SourceDatabase, c.Source, domain.ErrUnknownSource)
	}

	if c.FormatCacheSize < 0 {
		return fmt.Errorf("config: MESSAGES_FORMAT_CACHE_SIZE must not be negative")
	}

	if c.Source == SourceDatabase && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required when MESSAGES_SOURCE is %q", SourceDatabase)
	}
	if c.DatabaseURL != "" {
		if err := validateDatabaseURL(c.DatabaseURL); err != nil {
			return err
		}
	}

	return nil
}

// Validate re-runs validation after flags have overridden fields.
func (c *Config) Validate() error {
	return c.validate()
}

func validateDatabaseURL(dsn string) error {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", dsn, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", dsn)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}
