package i18n

import (
	"errors"

	"go.uber.org/zap"

	"msgsource/internal/domain"
	"msgsource/internal/domain/entities"
	"msgsource/internal/ports/input"
	"msgsource/internal/ports/output"
)

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a lenient wrapper around a MessageSource for UI code that
// must always render something.
type Translator struct {
	source        input.MessageSource
	defaultLocale string
	logger        *zap.Logger
}

// NewTranslator builds a Translator over source. defaultLocale is used when
// T is called with an empty locale; it may itself be empty.
func NewTranslator(source input.MessageSource, defaultLocale string, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{
		source:        source,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// T renders the message identified by key for the given locale.
// If the key cannot be resolved anywhere in the fallback chain, the key
// itself is returned.
func (t *Translator) T(locale, key string, args ...any) string {
	if key == "" {
		return ""
	}
	if locale == "" {
		locale = t.defaultLocale
	}

	msg, err := t.source.Resolve(entities.ResolutionRequest{Code: key, Locale: locale, Args: args})
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			t.logger.Warn("i18n: message not found", zap.String("key", key), zap.String("locale", locale))
		} else {
			t.logger.Error("i18n: localize failed", zap.String("key", key), zap.String("locale", locale), zap.Error(err))
		}
		return key
	}
	return msg
}

// Error renders err through its domain code, falling back to err.Error()
// for errors without one.
func (t *Translator) Error(locale string, err error) string {
	if err == nil {
		return ""
	}
	code := domain.Code(err)
	if code == "" {
		return err.Error()
	}
	var args []any
	var notFound *domain.MessageNotFoundError
	if errors.As(err, &notFound) {
		args = []any{notFound.Code, notFound.Locale}
	}
	msg := t.T(locale, code, args...)
	if msg == code {
		return err.Error()
	}
	return msg
}
