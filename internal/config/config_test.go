package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgsource/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MESSAGES_DIR", "MESSAGES_BASENAME", "MESSAGES_SOURCE", "DATABASE_URL",
		"MESSAGES_USE_CODE_AS_DEFAULT", "MESSAGES_LANGUAGE_FALLBACK",
		"MESSAGES_FORMAT_CACHE_SIZE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.MessagesDir)
	assert.Equal(t, []string{"messages"}, cfg.Basenames)
	assert.Equal(t, SourceFiles, cfg.Source)
	assert.False(t, cfg.UseCodeAsDefault)
	assert.True(t, cfg.LanguageFallback)
	assert.Equal(t, 256, cfg.FormatCacheSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MESSAGES_DIR", "/srv/i18n")
	t.Setenv("MESSAGES_BASENAME", "messages, errors ,")
	t.Setenv("MESSAGES_SOURCE", "Database")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/msg?sslmode=disable")
	t.Setenv("MESSAGES_USE_CODE_AS_DEFAULT", "true")
	t.Setenv("MESSAGES_LANGUAGE_FALLBACK", "0")
	t.Setenv("MESSAGES_FORMAT_CACHE_SIZE", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/i18n", cfg.MessagesDir)
	assert.Equal(t, []string{"messages", "errors"}, cfg.Basenames)
	assert.Equal(t, SourceDatabase, cfg.Source)
	assert.True(t, cfg.UseCodeAsDefault)
	assert.False(t, cfg.LanguageFallback)
	assert.Equal(t, 0, cfg.FormatCacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown source", map[string]string{"MESSAGES_SOURCE": "redis"}, "MESSAGES_SOURCE"},
		{"database without url", map[string]string{"MESSAGES_SOURCE": "database"}, "DATABASE_URL is required"},
		{"url without host", map[string]string{"DATABASE_URL": "postgres:///msg"}, "missing scheme or host"},
		{"bad bool", map[string]string{"MESSAGES_LANGUAGE_FALLBACK": "maybe"}, "MESSAGES_LANGUAGE_FALLBACK"},
		{"bad int", map[string]string{"MESSAGES_FORMAT_CACHE_SIZE": "lots"}, "MESSAGES_FORMAT_CACHE_SIZE"},
		{"negative cache", map[string]string{"MESSAGES_FORMAT_CACHE_SIZE": "-1"}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UnknownSourceIsDomainError(t *testing.T) {
	clearEnv(t)
	t.Setenv("MESSAGES_SOURCE", "redis")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestValidate_AfterOverride(t *testing.T) {
	cfg := &Config{Source: SourceDatabase}
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://db:5432/msg"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"messages"}, cfg.Basenames)
}
