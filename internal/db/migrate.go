package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/poketrainer/skillhub/internal/db/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// RunMigrations applies the embedded schema migrations. goose wants a
// database/sql handle, so it opens its own short-lived connection instead of
// borrowing from the pgx pool.
func RunMigrations(ctx context.Context, dbURL string) error {
	handle, err := sql.Open("pgx", dbURL)

	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	defer handle.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, handle, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
