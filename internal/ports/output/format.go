package output

// MessageFormatter substitutes positional arguments into a template.
type MessageFormatter interface {
	Format(template string, args []any) string
}

// ResolutionObserver is notified of resolution outcomes. servedBy is the
// locale of the catalog that held the code, "" for the default catalog.
type ResolutionObserver interface {
	Resolved(code, requested, servedBy string)
	Defaulted(code, requested string)
	Missing(code, requested string)
}
