package entities

// ResolutionRequest describes a single message lookup.
type ResolutionRequest struct {
	Code string
	// Locale is optional; empty means only the default catalog is consulted.
	Locale string
	Args   []any
	// DefaultMessage is returned unmodified when Code cannot be resolved.
	// nil means no default; a pointer to "" is a valid empty default.
	DefaultMessage *string
}

// WithDefault returns a copy of r carrying msg as its default message.
func (r ResolutionRequest) WithDefault(msg string) ResolutionRequest {
	r.DefaultMessage = &msg
	return r
}

// Resolvable is a message described by several candidate codes, tried in
// order. It may also be passed as an argument to another message, in which
// case it is resolved in the same locale before substitution.
type Resolvable struct {
	Codes          []string
	Args           []any
	DefaultMessage *string
}

// NewResolvable builds a Resolvable for codes with positional args.
func NewResolvable(codes []string, args ...any) Resolvable {
	return Resolvable{Codes: codes, Args: args}
}

// WithDefault returns a copy of r carrying msg as its default message.
func (r Resolvable) WithDefault(msg string) Resolvable {
	r.DefaultMessage = &msg
	return r
}
