package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/pg"
)

func TestAutoMigrate_SQLite(t *testing.T) {
	ctx := context.Background()

	db, err := pg.CreateSingle(pg.Config{Driver: pg.DriverSQLite, Path: ":memory:"}, false)
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(ctx, db))

	clients := NewClientRepository(db)
	created, err := clients.Create(ctx, &model.Client{Name: "Ana", CurrentDebt: 100})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	txs := NewTransactionRepository(db)
	tx, err := txs.Create(ctx, &model.Transaction{
		ClientID: created.ID, Type: model.TransactionTypeDebt, Amount: 100, Date: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, tx.ID)

	// the store binary migrates on every boot, so repeat runs must be safe
	require.NoError(t, AutoMigrate(ctx, db))
}
