package database

import (
	"github.com/jackc/pgx/v5"

	"msgsource/internal/domain/entities"
)

// messageRow is one row of the messages table. An empty Locale marks the
// default catalog.
type messageRow struct {
	Code    string
	Locale  string
	Message string
}

func scanMessageRows(rows pgx.Rows) ([]messageRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (messageRow, error) {
		var r messageRow
		err := row.Scan(&r.Code, &r.Locale, &r.Message)
		return r, err
	})
}

func rowsToCatalogSet(rows []messageRow) *entities.CatalogSet {
	byLocale := make(map[string]map[string]string)
	var order []string
	for _, r := range rows {
		entries, ok := byLocale[r.Locale]
		if !ok {
			entries = make(map[string]string)
			byLocale[r.Locale] = entries
			order = append(order, r.Locale)
		}
		entries[r.Code] = r.Message
	}
	catalogs := make([]entities.Catalog, 0, len(order))
	for _, loc := range order {
		catalogs = append(catalogs, entities.NewCatalog(loc, byLocale[loc]))
	}
	return entities.NewCatalogSet(catalogs...)
}

func catalogSetToRows(set *entities.CatalogSet) []messageRow {
	var rows []messageRow
	for _, catalog := range set.All() {
		for _, code := range catalog.Codes() {
			msg, _ := catalog.Lookup(code)
			rows = append(rows, messageRow{Code: code, Locale: catalog.Locale(), Message: msg})
		}
	}
	return rows
}
