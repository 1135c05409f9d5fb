package entities

import (
	"maps"
	"slices"

	"msgsource/pkg/locale"
)

// Catalog maps message codes to templates for one locale. The default
// catalog has an empty locale. A Catalog is read-only once built.
type Catalog struct {
	locale   string
	messages map[string]string
}

// NewCatalog copies entries into a new Catalog. The locale is normalized.
func NewCatalog(loc string, entries map[string]string) Catalog {
	return Catalog{
		locale:   locale.Normalize(loc),
		messages: maps.Clone(entries),
	}
}

// Locale returns the catalog locale, "" for the default catalog.
func (c Catalog) Locale() string {
	return c.locale
}

// Lookup returns the template stored under code.
func (c Catalog) Lookup(code string) (string, bool) {
	template, ok := c.messages[code]
	return template, ok
}

// Codes returns the catalog codes in sorted order.
func (c Catalog) Codes() []string {
	return slices.Sorted(maps.Keys(c.messages))
}

// Len returns the number of messages in the catalog.
func (c Catalog) Len() int {
	return len(c.messages)
}

// merge returns a catalog holding c's messages plus those of other whose codes
// c does not define.
func (c Catalog) merge(other Catalog) Catalog {
	out := make(map[string]string, len(c.messages)+len(other.messages))
	maps.Copy(out, other.messages)
	maps.Copy(out, c.messages)
	return Catalog{locale: c.locale, messages: out}
}

// CatalogSet holds the default catalog and one catalog per locale.
type CatalogSet struct {
	fallback Catalog
	byLocale map[string]Catalog
}

// NewCatalogSet assembles a set. Catalogs with an empty locale are merged into
// the default catalog; catalogs sharing a locale are merged. On conflicting
// codes the catalog passed first wins.
func NewCatalogSet(catalogs ...Catalog) *CatalogSet {
	s := &CatalogSet{
		fallback: NewCatalog("", nil),
		byLocale: make(map[string]Catalog),
	}
	for _, c := range catalogs {
		if c.locale == "" {
			s.fallback = s.fallback.merge(c)
			continue
		}
		if existing, ok := s.byLocale[c.locale]; ok {
			s.byLocale[c.locale] = existing.merge(c)
			continue
		}
		s.byLocale[c.locale] = c
	}
	return s
}

// Default returns the catalog used when no locale matches.
func (s *CatalogSet) Default() Catalog {
	return s.fallback
}

// Catalog returns the catalog registered for loc.
func (s *CatalogSet) Catalog(loc string) (Catalog, bool) {
	c, ok := s.byLocale[locale.Normalize(loc)]
	return c, ok
}

// Locales returns the locales that have a catalog, sorted.
func (s *CatalogSet) Locales() []string {
	return slices.Sorted(maps.Keys(s.byLocale))
}

// All returns the default catalog followed by the locale catalogs in
// Locales order.
func (s *CatalogSet) All() []Catalog {
	out := make([]Catalog, 0, len(s.byLocale)+1)
	out = append(out, s.fallback)
	for _, loc := range s.Locales() {
		out = append(out, s.byLocale[loc])
	}
	return out
}
