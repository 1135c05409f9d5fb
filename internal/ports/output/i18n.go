package output

// T exposes a lenient i18n contract for user-facing text.
// Implementations never fail; unresolved keys render as themselves.
type T interface {
	// T renders the message identified by key for the given locale.
	// args fill positional placeholders {0}, {1}, ...
	T(locale, key string, args ...any) string
}
