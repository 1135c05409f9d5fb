package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/magiconair/properties"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"

	"msgsource/internal/domain"
)

var unmarshalFuncs = map[string]i18n.UnmarshalFunc{
	"toml": toml.Unmarshal,
	"json": json.Unmarshal,
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
}

// parseProperties reads a UTF-8 .properties file. ${...} references are kept
// as written.
func parseProperties(buf []byte) (map[string]string, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

// pluralForms are the keys of a go-i18n plural message. A table holding an
// "other" entry and nothing but these keys is one message, not a namespace.
var pluralForms = map[string]struct{}{
	"description": {},
	"zero":        {},
	"one":         {},
	"two":         {},
	"few":         {},
	"many":        {},
	"other":       {},
}

// parseMessageFile reads a TOML, JSON or YAML catalog. Nested tables become
// dotted codes; a plural table contributes its "other" form.
func parseMessageFile(buf []byte, name string) (map[string]string, error) {
	if len(bytes.TrimSpace(buf)) == 0 {
		return map[string]string{}, nil
	}
	unmarshal, ok := unmarshalFuncs[strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	var tree map[string]any
	if err := unmarshal(buf, &tree); err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	if err := flatten(tree, "", entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flatten(node map[string]any, prefix string, out map[string]string) error {
	for key, value := range node {
		code := key
		if prefix != "" {
			code = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[code] = v
		case map[string]any:
			if isPlural(v) {
				msg, err := i18n.NewMessage(v)
				if err != nil {
					return fmt.Errorf("code %q: %w", code, err)
				}
				out[code] = msg.Other
				continue
			}
			if err := flatten(v, code, out); err != nil {
				return err
			}
		case bool, int, int64, uint64, float64:
			out[code] = fmt.Sprint(v)
		default:
			return fmt.Errorf("code %q: unsupported value of type %T", code, value)
		}
	}
	return nil
}

func isPlural(table map[string]any) bool {
	other, ok := table["other"]
	if !ok {
		return false
	}
	if _, ok := other.(string); !ok {
		return false
	}
	for key := range table {
		if _, ok := pluralForms[strings.ToLower(key)]; !ok {
			return false
		}
	}
	return true
}
