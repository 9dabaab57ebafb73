package storage

import (
	"context"

	"github.com/ticoencargo/cartera/pkg/pg"
)

// AutoMigrate creates the schema through gorm's migrator. The Postgres
// deployment runs the goose migrations instead; this path covers the
// SQLite-backed dev store, which the goose runner does not reach.
func AutoMigrate(ctx context.Context, db *pg.DB) error {
	return db.Write(ctx).AutoMigrate(&ClientEntity{}, &TransactionEntity{})
}
