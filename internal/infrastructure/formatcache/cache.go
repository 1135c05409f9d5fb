// Package formatcache keeps compiled message templates in a bounded LRU so
// hot messages are parsed once.
package formatcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"msgsource/internal/ports/output"
	"msgsource/pkg/msgformat"
)

var _ output.MessageFormatter = (*Cache)(nil)

// Cache is a MessageFormatter backed by an LRU of compiled templates.
// It is safe for concurrent use.
type Cache struct {
	formats *lru.Cache[string, *msgformat.Format]
}

// New creates a cache holding at most size compiled templates.
func New(size int) (*Cache, error) {
	formats, err := lru.New[string, *msgformat.Format](size)
	if err != nil {
		return nil, err
	}
	return &Cache{formats: formats}, nil
}

// Format renders template with args, compiling it on first use.
func (c *Cache) Format(template string, args []any) string {
	if len(args) == 0 {
		return template
	}
	f, ok := c.formats.Get(template)
	if !ok {
		f = msgformat.Compile(template)
		c.formats.Add(template, f)
	}
	return f.Render(args)
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	return c.formats.Len()
}
