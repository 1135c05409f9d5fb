package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrMessageNotFound    = errors.New("message not found")
	ErrUnsupportedFormat  = errors.New("unsupported catalog format")
	ErrInvalidCatalogFile = errors.New("invalid catalog file")
	ErrUnknownSource      = errors.New("unknown message source")
)

// MessageNotFoundError reports that no catalog in the fallback chain holds
// Code and no default message was supplied.
type MessageNotFoundError struct {
	Code   string
	Locale string
}

func (e *MessageNotFoundError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("no message found under code %q", e.Code)
	}
	return fmt.Sprintf("no message found under code %q for locale %q", e.Code, e.Locale)
}

// Is makes errors.Is(err, ErrMessageNotFound) match.
func (e *MessageNotFoundError) Is(target error) bool {
	return target == ErrMessageNotFound
}

// Code maps a domain error to a stable message code, or "" for foreign errors.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMessageNotFound):
		return "error.message_not_found"
	case errors.Is(err, ErrUnsupportedFormat):
		return "error.unsupported_format"
	case errors.Is(err, ErrInvalidCatalogFile):
		return "error.invalid_catalog_file"
	case errors.Is(err, ErrUnknownSource):
		return "error.unknown_source"
	default:
		return ""
	}
}
