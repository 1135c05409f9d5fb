package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"

	"msgsource/internal/domain"
	"msgsource/internal/domain/entities"
	"msgsource/internal/ports/output"
	"msgsource/pkg/locale"
)

var _ output.CatalogLoader = (*FileLoader)(nil)

// FileLoader builds a CatalogSet from files named after one or more base
// names: "messages.properties" is the default catalog and
// "messages_en.properties" the "en" catalog.
type FileLoader struct {
	fsys      fs.FS
	basenames []string
	locales   map[string]struct{}
	logger    *zap.Logger
}

// LoaderOption configures a FileLoader.
type LoaderOption func(*FileLoader)

// WithLocales restricts loading to the given locale suffixes. The default
// catalog is always loaded. Without this option every suffix found is loaded.
func WithLocales(locales ...string) LoaderOption {
	return func(l *FileLoader) {
		l.locales = make(map[string]struct{}, len(locales))
		for _, loc := range locales {
			if norm := locale.Normalize(loc); norm != "" {
				l.locales[norm] = struct{}{}
			}
		}
	}
}

// WithLoaderLogger sets the logger reporting loaded files.
func WithLoaderLogger(log *zap.Logger) LoaderOption {
	return func(l *FileLoader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewFileLoader creates a loader reading from fsys. Base names may contain a
// directory ("i18n/messages"). When several base names define the same code
// for the same locale, the earlier base name wins.
func NewFileLoader(fsys fs.FS, basenames []string, opts ...LoaderOption) *FileLoader {
	l := &FileLoader{
		fsys:      fsys,
		basenames: basenames,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every matching catalog file. A missing default file yields an
// empty default catalog; an unreadable or malformed file is an error.
func (l *FileLoader) Load(ctx context.Context) (*entities.CatalogSet, error) {
	var catalogs []entities.Catalog
	for _, basename := range l.basenames {
		basename = strings.TrimSpace(basename)
		if basename == "" {
			continue
		}
		files, err := l.catalogFiles(basename)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entries, err := l.readFile(f.path)
			if err != nil {
				return nil, err
			}
			catalogs = append(catalogs, entities.NewCatalog(f.locale, entries))
			l.logger.Info("i18n: catalog loaded",
				zap.String("file", f.path),
				zap.String("locale", f.locale),
				zap.Int("messages", len(entries)))
		}
	}
	return entities.NewCatalogSet(catalogs...), nil
}

type catalogFile struct {
	path   string
	locale string
}

func (l *FileLoader) catalogFiles(basename string) ([]catalogFile, error) {
	dir, name := path.Split(basename)
	dir = path.Clean(dir)

	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog dir %q: %w", dir, err)
	}

	var files []catalogFile
	for _, entry := range entries {
		if entry.IsDir() || !isSupported(entry.Name()) {
			continue
		}
		loc, ok := locale.FromSuffix(name, entry.Name())
		if !ok {
			if strings.HasPrefix(entry.Name(), name+"_") {
				l.logger.Debug("i18n: skipping file without locale suffix",
					zap.String("file", path.Join(dir, entry.Name())))
			}
			continue
		}
		if !l.wants(loc) {
			continue
		}
		files = append(files, catalogFile{path: path.Join(dir, entry.Name()), locale: loc})
	}
	slices.SortStableFunc(files, func(a, b catalogFile) int {
		return strings.Compare(a.path, b.path)
	})
	return files, nil
}

func (l *FileLoader) wants(loc string) bool {
	if loc == "" || l.locales == nil {
		return true
	}
	_, ok := l.locales[loc]
	return ok
}

func (l *FileLoader) readFile(name string) (map[string]string, error) {
	buf, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", name, err)
	}
	var entries map[string]string
	switch strings.ToLower(path.Ext(name)) {
	case ".properties":
		entries, err = parseProperties(buf)
	case ".toml", ".json", ".yaml", ".yml":
		entries, err = parseMessageFile(buf, name)
	default:
		return nil, fmt.Errorf("i18n: %s: %w", name, domain.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("i18n: parse %s: %w: %w", name, domain.ErrInvalidCatalogFile, err)
	}
	return entries, nil
}

func isSupported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".properties", ".toml", ".json", ".yaml", ".yml":
		return true
	}
	return false
}
