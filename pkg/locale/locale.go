// Package locale normalizes locale identifiers and derives the lookup chain
// used when resolving messages.
package locale

import (
	"path"
	"strings"

	"golang.org/x/text/language"
)

// Normalize returns the canonical BCP 47 form of id ("en_us" -> "en-US").
// Identifiers that do not parse are returned trimmed and otherwise untouched,
// so they still work as opaque catalog keys.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return id
	}
	return tag.String()
}

// Candidates returns the locales to try for id, most specific first.
// With languageFallback a regional or scripted locale is followed by its
// shorter forms: "zh-Hant-TW" -> zh-Hant-TW, zh-Hant, zh-TW, zh.
func Candidates(id string, languageFallback bool) []string {
	full := Normalize(id)
	if full == "" {
		return nil
	}
	if !languageFallback {
		return []string{full}
	}

	base, script, region := subtags(full)
	if base == "" {
		return []string{full}
	}

	out := []string{full}
	seen := map[string]struct{}{full: {}}
	add := func(parts ...string) {
		id := strings.Join(parts, "-")
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if script != "" {
		add(base, script)
	}
	if region != "" {
		add(base, region)
	}
	add(base)
	return out
}

// subtags splits a canonical tag into language, script and region.
// Variants and extensions are ignored. An opaque id yields an empty base.
func subtags(canonical string) (base, script, region string) {
	if _, err := language.Parse(canonical); err != nil {
		return "", "", ""
	}
	parts := strings.Split(canonical, "-")
	base = parts[0]
	for _, p := range parts[1:] {
		switch {
		case len(p) == 4 && isAlpha(p) && script == "" && region == "":
			script = p
		case (len(p) == 2 && isAlpha(p)) || (len(p) == 3 && isDigits(p)):
			if region == "" {
				region = p
			}
			return base, script, region
		default:
			return base, script, region
		}
	}
	return base, script, region
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FromSuffix extracts the locale suffix of a catalog file named
// "<basename>_<locale>.<ext>". The unsuffixed "<basename>.<ext>" yields ""
// and ok=true. Files of another basename, and suffixes that are not BCP 47
// tags ("messages_backup.properties"), yield ok=false.
func FromSuffix(basename, filename string) (string, bool) {
	name := path.Base(filename)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == basename {
		return "", true
	}
	rest, found := strings.CutPrefix(name, basename+"_")
	if !found || rest == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(rest, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
