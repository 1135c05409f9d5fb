package application

import (
	"errors"

	"go.uber.org/zap"

	"msgsource/internal/domain"
	"msgsource/internal/domain/entities"
	"msgsource/internal/ports/input"
	"msgsource/internal/ports/output"
	"msgsource/pkg/locale"
	"msgsource/pkg/msgformat"
)

var _ input.MessageSource = (*MessageCatalogResolver)(nil)

// ServedByParent is the servedBy value reported to observers when the parent
// source answered.
const ServedByParent = "parent"

// MessageCatalogResolver resolves codes against a CatalogSet. It holds no
// mutable state, so one instance can serve any number of goroutines.
type MessageCatalogResolver struct {
	catalogs         *entities.CatalogSet
	formatter        output.MessageFormatter
	observer         output.ResolutionObserver
	parent           input.MessageSource
	logger           *zap.Logger
	useCodeAsDefault bool
	languageFallback bool
}

// Option configures a MessageCatalogResolver.
type Option func(*MessageCatalogResolver)

// WithLogger sets the logger used for fallback and miss diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *MessageCatalogResolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFormatter replaces the placeholder formatter.
func WithFormatter(f output.MessageFormatter) Option {
	return func(r *MessageCatalogResolver) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithObserver registers an observer for resolution outcomes.
func WithObserver(o output.ResolutionObserver) Option {
	return func(r *MessageCatalogResolver) {
		r.observer = o
	}
}

// WithParent sets a source consulted when no local catalog holds a code,
// before the default message applies.
func WithParent(p input.MessageSource) Option {
	return func(r *MessageCatalogResolver) {
		r.parent = p
	}
}

// WithUseCodeAsDefaultMessage makes unresolved codes render as the code
// itself instead of failing.
func WithUseCodeAsDefaultMessage(enabled bool) Option {
	return func(r *MessageCatalogResolver) {
		r.useCodeAsDefault = enabled
	}
}

// WithLanguageFallback controls whether "en-US" also consults the "en"
// catalog before the default one. Enabled by default.
func WithLanguageFallback(enabled bool) Option {
	return func(r *MessageCatalogResolver) {
		r.languageFallback = enabled
	}
}

// NewMessageCatalogResolver builds a resolver over catalogs. A nil set
// behaves as an empty one.
func NewMessageCatalogResolver(catalogs *entities.CatalogSet, opts ...Option) *MessageCatalogResolver {
	if catalogs == nil {
		catalogs = entities.NewCatalogSet()
	}
	r := &MessageCatalogResolver{
		catalogs:         catalogs,
		formatter:        msgformat.Formatter{},
		logger:           zap.NewNop(),
		languageFallback: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalogs returns the catalog set the resolver reads from.
func (r *MessageCatalogResolver) Catalogs() *entities.CatalogSet {
	return r.catalogs
}

// Resolve returns the message for req.Code. The locale catalog is consulted
// first, then the default catalog, then the parent source. A supplied default
// message is returned as is; otherwise a *domain.MessageNotFoundError is
// returned.
func (r *MessageCatalogResolver) Resolve(req entities.ResolutionRequest) (string, error) {
	msg, found, err := r.resolveCode(req.Code, req.Locale, req.Args)
	if err != nil || found {
		return msg, err
	}
	return r.fallback(req.Code, req.Locale, req.DefaultMessage)
}

// ResolveResolvable tries each code of res in order across the full fallback
// chain, then applies res.DefaultMessage.
func (r *MessageCatalogResolver) ResolveResolvable(res entities.Resolvable, loc string) (string, error) {
	for _, code := range res.Codes {
		msg, found, err := r.resolveCode(code, loc, res.Args)
		if err != nil || found {
			return msg, err
		}
	}
	last := ""
	if len(res.Codes) > 0 {
		last = res.Codes[len(res.Codes)-1]
	}
	return r.fallback(last, loc, res.DefaultMessage)
}

// Message resolves code without a default message.
func (r *MessageCatalogResolver) Message(code, loc string, args ...any) (string, error) {
	return r.Resolve(entities.ResolutionRequest{Code: code, Locale: loc, Args: args})
}

// MessageOrDefault resolves code, returning defaultMessage when it is unknown.
func (r *MessageCatalogResolver) MessageOrDefault(code, loc, defaultMessage string, args ...any) string {
	msg, err := r.Resolve(entities.ResolutionRequest{Code: code, Locale: loc, Args: args}.WithDefault(defaultMessage))
	if err != nil {
		// nested Resolvable argument or parent source failure
		return defaultMessage
	}
	return msg
}

// resolveCode looks code up through the local chain and the parent source.
// found is false when neither holds the code.
func (r *MessageCatalogResolver) resolveCode(code, loc string, args []any) (string, bool, error) {
	template, servedBy, ok := r.lookup(code, loc)
	if ok {
		if r.observer != nil {
			r.observer.Resolved(code, loc, servedBy)
		}
		resolvedArgs, err := r.resolveArgs(args, loc)
		if err != nil {
			return "", false, err
		}
		return r.formatter.Format(template, resolvedArgs), true, nil
	}

	if r.parent != nil {
		msg, err := r.parent.Resolve(entities.ResolutionRequest{Code: code, Locale: loc, Args: args})
		switch {
		case err == nil:
			if r.observer != nil {
				r.observer.Resolved(code, loc, ServedByParent)
			}
			return msg, true, nil
		case !errors.Is(err, domain.ErrMessageNotFound):
			return "", false, err
		}
	}
	return "", false, nil
}

func (r *MessageCatalogResolver) fallback(code, loc string, defaultMessage *string) (string, error) {
	if defaultMessage != nil {
		if r.observer != nil {
			r.observer.Defaulted(code, loc)
		}
		return *defaultMessage, nil
	}
	if r.observer != nil {
		r.observer.Missing(code, loc)
	}
	if r.useCodeAsDefault {
		return code, nil
	}
	r.logger.Debug("message not found", zap.String("code", code), zap.String("locale", loc))
	return "", &domain.MessageNotFoundError{Code: code, Locale: loc}
}

// lookup walks the locale candidates then the default catalog.
func (r *MessageCatalogResolver) lookup(code, loc string) (template, servedBy string, ok bool) {
	for _, candidate := range locale.Candidates(loc, r.languageFallback) {
		catalog, exists := r.catalogs.Catalog(candidate)
		if !exists {
			continue
		}
		if t, found := catalog.Lookup(code); found {
			return t, candidate, true
		}
	}
	if t, found := r.catalogs.Default().Lookup(code); found {
		if loc != "" {
			r.logger.Debug("message served by default catalog",
				zap.String("code", code), zap.String("locale", loc))
		}
		return t, "", true
	}
	return "", "", false
}

// resolveArgs replaces Resolvable arguments by their message in loc.
func (r *MessageCatalogResolver) resolveArgs(args []any, loc string) ([]any, error) {
	var out []any
	for i, arg := range args {
		res, ok := arg.(entities.Resolvable)
		if !ok {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		msg, err := r.ResolveResolvable(res, loc)
		if err != nil {
			return nil, err
		}
		out[i] = msg
	}
	if out == nil {
		return args, nil
	}
	return out, nil
}
