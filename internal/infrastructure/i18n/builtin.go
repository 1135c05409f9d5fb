package i18n

import (
	"context"
	"embed"

	"go.uber.org/zap"

	"msgsource/internal/domain/entities"
)

//go:embed locales/cli*.toml
var localeFS embed.FS

// BuiltinBasename is the base name of the embedded CLI catalogs.
const BuiltinBasename = "locales/cli"

// LoadBuiltin loads the embedded catalogs holding the CLI's own strings.
func LoadBuiltin(ctx context.Context, logger *zap.Logger) (*entities.CatalogSet, error) {
	return NewFileLoader(localeFS, []string{BuiltinBasename}, WithLoaderLogger(logger)).Load(ctx)
}
