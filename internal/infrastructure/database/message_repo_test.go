package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"msgsource/internal/application"
	"msgsource/internal/domain/entities"
)

// setupTestDB starts a PostgreSQL container and applies the migrations.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("msgsource_test"),
		postgres.WithUsername("msgsource"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dsn, nil))
	// a second run is a no-op
	require.NoError(t, RunMigrations(dsn, nil))

	pool, err := NewPool(ctx, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestMessageRepository_ImportLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMessageRepository(pool, nil)

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Default().Len())

	require.NoError(t, repo.Import(ctx, entities.NewCatalogSet(
		entities.NewCatalog("", map[string]string{"hello": "안녕", "hello.name": "안녕 {0}"}),
		entities.NewCatalog("en", map[string]string{"hello": "hello"}),
	)))
	require.NoError(t, repo.Import(ctx, entities.NewCatalogSet(
		entities.NewCatalog("en", map[string]string{"hello": "hi"}),
	)))

	set, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, set.Locales())

	resolver := application.NewMessageCatalogResolver(set)
	msg, err := resolver.Message("hello", "en")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg)

	msg, err = resolver.Message("hello.name", "en", "Kim")
	require.NoError(t, err)
	assert.Equal(t, "안녕 Kim", msg)
}
