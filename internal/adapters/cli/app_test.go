package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"MESSAGES_BASENAME", "MESSAGES_SOURCE", "DATABASE_URL",
		"MESSAGES_USE_CODE_AS_DEFAULT", "MESSAGES_LANGUAGE_FALLBACK",
		"MESSAGES_FORMAT_CACHE_SIZE", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("MESSAGES_DIR", "testdata")
	t.Setenv("LOG_LEVEL", "error")
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestResolve(t *testing.T) {
	setEnv(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"locale catalog", []string{"resolve", "hello", "--locale", "en"}, "hello\n"},
		{"default catalog", []string{"resolve", "hello"}, "안녕\n"},
		{"language fallback", []string{"resolve", "hello.name", "Kim", "--locale", "en_US"}, "Hello, Kim!\n"},
		{"default catalog fallback", []string{"resolve", "farewell", "-l", "en"}, "잘가\n"},
		{"unknown locale", []string{"resolve", "hello", "--locale", "de"}, "안녕\n"},
		{"no args keeps template", []string{"resolve", "hello.name", "--locale", "en"}, "Hello, {0}!\n"},
		{"default message is literal", []string{"resolve", "missing", "x", "--default", "fallback {0}"}, "fallback {0}\n"},
		{"empty default message", []string{"resolve", "missing", "--default", ""}, "\n"},
		{"lenient", []string{"resolve", "missing", "--lenient"}, "missing\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, tt.args...)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	setEnv(t, nil)

	code, out, errOut := run(t, "resolve", "missing", "--locale", "en")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Equal(t, "No message found under code 'missing' for locale 'en'.\n", errOut)

	code, _, errOut = run(t, "resolve", "missing", "--locale", "ko", "--lang", "ko")
	assert.Equal(t, 1, code)
	assert.Equal(t, "코드 'missing'에 해당하는 메시지가 없습니다 (로케일 'ko').\n", errOut)
}

func TestResolve_ConfigFromEnvironment(t *testing.T) {
	setEnv(t, map[string]string{
		"MESSAGES_USE_CODE_AS_DEFAULT": "true",
		"MESSAGES_LANGUAGE_FALLBACK":   "false",
		"MESSAGES_FORMAT_CACHE_SIZE":   "0",
	})

	_, out, _ := run(t, "resolve", "missing")
	assert.Equal(t, "missing\n", out)

	_, out, _ = run(t, "resolve", "hello.name", "Kim", "--locale", "en-US")
	assert.Equal(t, "안녕 Kim\n", out)
}

func TestResolve_BasenameFlag(t *testing.T) {
	setEnv(t, nil)

	code, _, errOut := run(t, "resolve", "hello", "--basename", "nowhere/messages")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

func TestList(t *testing.T) {
	setEnv(t, nil)

	code, out, errOut := run(t, "list", "--locale", "en")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "en (messages: 2)\n  hello = hello\n  hello.name = Hello, {0}!\n", out)

	code, out, _ = run(t, "list", "--locale", "", "--lang", "fr")
	require.Equal(t, 0, code)
	assert.Equal(t, "défaut (messages : 3)\n  farewell = 잘가\n  hello = 안녕\n  hello.name = 안녕 {0}\n", out)

	code, out, _ = run(t, "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "default (messages: 3)\n")
	assert.Contains(t, out, "en (messages: 2)\n")
	assert.Contains(t, out, "fr (messages: 1)\n")

	code, out, _ = run(t, "list", "--locale", "fr", "--lang", "ko")
	require.Equal(t, 0, code)
	assert.Equal(t, "fr (메시지 1개)\n  hello = bonjour\n", out)

	code, _, errOut = run(t, "list", "--locale", "ja")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `no catalog for locale "ja"`)
}

func TestUnknownSource(t *testing.T) {
	setEnv(t, nil)

	code, _, errOut := run(t, "resolve", "hello", "--source", "redis")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Unknown message source.\n", errOut)

	_, _, errOut = run(t, "list", "--source", "redis", "--lang", "fr")
	assert.Equal(t, "Source de messages inconnue.\n", errOut)
}

func TestDatabaseCommandsRequireURL(t *testing.T) {
	setEnv(t, nil)

	for _, cmd := range []string{"import", "migrate"} {
		code, _, errOut := run(t, cmd)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "DATABASE_URL is required")
	}
}

func TestMetricsFlag(t *testing.T) {
	setEnv(t, nil)

	code, out, errOut := run(t, "resolve", "hello", "--locale", "en_GB", "--metrics")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "hello\n")
	assert.Contains(t, out, `msgsource_messages_resolved_total{locale="en"} 1`)
	assert.Contains(t, out, `msgsource_locale_fallbacks_total{requested="en-GB",served="en"} 1`)
	assert.Contains(t, out, "msgsource_messages_missing_total 0")
}
