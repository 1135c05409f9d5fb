// Package msgformat renders message templates with positional placeholders.
//
// A placeholder is written {n} where n is a zero-based argument index. An
// optional format type and style may follow ({0,number} or {1,date,short});
// they are accepted for compatibility with existing catalogs but the argument
// is always rendered with fmt.Sprint.
//
// Apostrophes quote literal text: '' renders a single apostrophe, and an
// apostrophe directly before a brace opens a quoted section that runs to the
// next lone apostrophe ("'{0}'" renders "{0}"). Any other apostrophe is
// ordinary text, so "don't" needs no escaping.
//
// Placeholders whose index is not covered by the arguments are rendered
// verbatim, as is any brace that does not form a valid placeholder.
package msgformat

import (
	"fmt"
	"strconv"
	"strings"
)

type segment struct {
	literal string
	index   int // -1 for literal segments
	raw     string
}

// Format is a compiled template. It is immutable and safe for concurrent use.
type Format struct {
	template string
	segments []segment
	maxIndex int
}

// Compile parses template into a Format. Compilation never fails: malformed
// placeholders are kept as literal text.
func Compile(template string) *Format {
	f := &Format{template: template, maxIndex: -1}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.segments = append(f.segments, segment{literal: lit.String(), index: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '\'' && i+1 < len(template) && template[i+1] == '\'':
			lit.WriteByte('\'')
			i += 2
		case c == '\'' && i+1 < len(template) && (template[i+1] == '{' || template[i+1] == '}'):
			end := closingQuote(template, i+1)
			lit.WriteString(strings.ReplaceAll(template[i+1:end], "''", "'"))
			i = end + 1
		case c == '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				lit.WriteString(template[i:])
				i = len(template)
				continue
			}
			raw := template[i : i+end+1]
			idx, ok := parseIndex(raw[1 : len(raw)-1])
			if !ok {
				lit.WriteString(raw)
				i += end + 1
				continue
			}
			flush()
			f.segments = append(f.segments, segment{index: idx, raw: raw})
			if idx > f.maxIndex {
				f.maxIndex = idx
			}
			i += end + 1
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return f
}

// closingQuote returns the position of the apostrophe that ends a quoted
// section starting at from, skipping doubled apostrophes. An unterminated
// section runs to the end of the template.
func closingQuote(s string, from int) int {
	for j := from; j < len(s); j++ {
		if s[j] != '\'' {
			continue
		}
		if j+1 < len(s) && s[j+1] == '\'' {
			j++
			continue
		}
		return j
	}
	return len(s)
}

func parseIndex(body string) (int, bool) {
	if i := strings.IndexByte(body, ','); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, false
	}
	n, err := strconv.Atoi(body)
	if err != nil || n < 0 || strings.HasPrefix(body, "+") {
		return 0, false
	}
	return n, true
}

// Template returns the source text the Format was compiled from.
func (f *Format) Template() string {
	return f.template
}

// MaxIndex returns the highest placeholder index, or -1 when the template has
// no placeholders.
func (f *Format) MaxIndex() int {
	return f.maxIndex
}

// Render substitutes args into the template. With no args the source template
// is returned unchanged, quotes included.
func (f *Format) Render(args []any) string {
	if len(args) == 0 {
		return f.template
	}
	var b strings.Builder
	b.Grow(len(f.template))
	for _, s := range f.segments {
		switch {
		case s.index < 0:
			b.WriteString(s.literal)
		case s.index < len(args):
			b.WriteString(fmt.Sprint(args[s.index]))
		default:
			b.WriteString(s.raw)
		}
	}
	return b.String()
}

// Formatter renders templates without caching.
type Formatter struct{}

// Format compiles template and renders it with args.
func (Formatter) Format(template string, args []any) string {
	if len(args) == 0 {
		return template
	}
	return Compile(template).Render(args)
}

// Sprint is a shorthand for Compile(template).Render(args).
func Sprint(template string, args ...any) string {
	return Formatter{}.Format(template, args)
}
