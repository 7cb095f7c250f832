package postgres

import (
	"context"
	"fmt"
)

// migration — один версионированный шаг схемы. Шаги применяются по порядку,
// каждый в своей транзакции, применённые версии фиксируются в schema_migrations.
type migration struct {
	version int
	name    string
	up      string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_meals",
		up: `
			CREATE TABLE IF NOT EXISTS meals (
				id          TEXT PRIMARY KEY,
				shop_id     TEXT NOT NULL,
				name        TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				price       BIGINT NOT NULL,
				image       TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL
			);
			-- Не уникальный: уникальность пары (shop_id, name) обеспечивается
			-- проверкой существования перед созданием, а не ограничением.
			CREATE INDEX IF NOT EXISTS idx_meals_shop_name ON meals (shop_id, name);
		`,
	},
	{
		version: 2,
		name:    "create_orders",
		up: `
			CREATE TABLE IF NOT EXISTS orders (
				id         TEXT PRIMARY KEY,
				user_id    TEXT NOT NULL,
				shop_id    TEXT NOT NULL,
				status     TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS order_items (
				order_id  TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
				position  INT NOT NULL,
				meal_id   TEXT NOT NULL,
				meal_name TEXT NOT NULL,
				quantity  INT NOT NULL,
				price     BIGINT NOT NULL,
				remark    TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (order_id, position)
			);
			CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC);
		`,
	},
}

// MigrateUp применяет недостающие миграции в порядке возрастания версий.
func (s *Store) MigrateUp(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate schema_migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, m.up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
