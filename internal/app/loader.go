package app

import (
	"context"

	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/logger"
)

// Load fetches both collections from the store, newest created first,
// and replaces the local mirrors wholesale. The two reads are
// independent: a failed read logs and leaves that collection empty
// without affecting the other. Loading() reports true until both reads
// settle.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	a.loading = true
	a.mu.Unlock()

	clients, err := a.store.ListClients(ctx)
	if err != nil {
		logger.Error("failed to load clients", "collection", "clients", "error", err)
		clients = []*model.Client{}
	}

	transactions, err := a.store.ListTransactions(ctx)
	if err != nil {
		logger.Error("failed to load transactions", "collection", "transactions", "error", err)
		transactions = []*model.Transaction{}
	}

	a.mu.Lock()
	a.clients = clients
	a.transactions = transactions
	a.loading = false
	a.mu.Unlock()
}

func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}
