package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"msgsource/internal/domain/entities"
	"msgsource/internal/ports/output"
)

var (
	_ output.CatalogLoader   = (*MessageRepository)(nil)
	_ output.CatalogImporter = (*MessageRepository)(nil)
)

const (
	selectMessages = `SELECT code, locale, message FROM messages ORDER BY locale, code`
	upsertMessage  = `INSERT INTO messages (code, locale, message)
VALUES ($1, $2, $3)
ON CONFLICT (code, locale) DO UPDATE SET message = EXCLUDED.message, updated_at = now()`
)

// MessageRepository stores catalogs in the messages table.
type MessageRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewMessageRepository(pool *pgxpool.Pool, logger *zap.Logger) *MessageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageRepository{pool: pool, logger: logger}
}

// Load reads every stored message into a CatalogSet.
func (r *MessageRepository) Load(ctx context.Context) (*entities.CatalogSet, error) {
	rows, err := r.pool.Query(ctx, selectMessages)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	messages, err := scanMessageRows(rows)
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	set := rowsToCatalogSet(messages)
	r.logger.Info("database: catalogs loaded",
		zap.Int("messages", len(messages)), zap.Int("locales", len(set.Locales())))
	return set, nil
}

// Import upserts every message of set in a single transaction.
func (r *MessageRepository) Import(ctx context.Context, set *entities.CatalogSet) error {
	rows := catalogSetToRows(set)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("import messages: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(upsertMessage, row.Code, row.Locale, row.Message)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("import messages: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("import messages: commit: %w", err)
	}
	r.logger.Info("database: catalogs imported", zap.Int("messages", len(rows)))
	return nil
}
