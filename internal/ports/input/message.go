package input

import "msgsource/internal/domain/entities"

// MessageSource resolves message codes to display text.
type MessageSource interface {
	// Resolve returns the interpolated template for req, its default message,
	// or a *domain.MessageNotFoundError.
	Resolve(req entities.ResolutionRequest) (string, error)
	// ResolveResolvable tries each code of r in order within locale.
	ResolveResolvable(r entities.Resolvable, locale string) (string, error)
}
