package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/ticoencargo/cartera/internal/model"
	"github.com/ticoencargo/cartera/pkg/logger"
)

var (
	// ErrDebtSyncFailed reports the partial AddTransaction outcome: the
	// transaction row was inserted but the client's debt update failed.
	// Nothing is rolled back; only a full reload repairs the mirror.
	ErrDebtSyncFailed = errors.New("transaction recorded but client debt update failed")
)

const (
	defaultPaymentDescription = "Abono"
	defaultDebtDescription    = "Nueva deuda"
)

// AddClient inserts one client and, on confirmation, prepends the
// returned row and switches to the dashboard. A failed insert changes
// nothing locally.
func (a *App) AddClient(ctx context.Context, p model.ClientCreateRequest) (*model.Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := a.store.CreateClient(ctx, p)
	if err != nil {
		logger.Error("failed to add client", "operation", "insert", "collection", "clients", "error", err)
		a.setNotice("error", "Error al agregar cliente. Verifica la conexión a la base de datos.")
		return nil, err
	}

	a.mu.Lock()
	a.clients = append([]*model.Client{created}, a.clients...)
	a.screen = ScreenDashboard
	a.mu.Unlock()

	a.setNotice("success", "Cliente agregado exitosamente")
	return created, nil
}

// AddTransaction performs the two-step mutation: insert the transaction
// row, then recompute and persist the client's running debt. The two
// remote writes are not atomic. A failed insert aborts with no local
// change. A failed debt update is logged and surfaced as
// ErrDebtSyncFailed while the inserted transaction is still mirrored
// locally; the debt figure stays stale until the next full reload.
func (a *App) AddTransaction(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if p.Description == "" {
		if p.Type == model.TransactionTypePayment {
			p.Description = defaultPaymentDescription
		} else {
			p.Description = defaultDebtDescription
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := a.store.CreateTransaction(ctx, p)
	if err != nil {
		logger.Error("failed to add transaction", "operation", "insert", "collection", "transactions", "error", err)
		a.setNotice("error", "Error al agregar transacción. Verifica la conexión a la base de datos.")
		return nil, err
	}

	a.mu.Lock()
	client := a.findClient(p.ClientID)
	var newDebt int64
	if client != nil {
		newDebt = nextDebt(client.CurrentDebt, p.Type, p.Amount)
	}
	a.mu.Unlock()

	if client == nil {
		// No local row to patch; mirror the transaction anyway.
		a.prependTransaction(created)
		a.setNotice("success", "Transacción agregada exitosamente")
		return created, nil
	}

	if err := a.store.UpdateClientDebt(ctx, client.ID, newDebt); err != nil {
		logger.Error("failed to update client debt",
			"operation", "update", "collection", "clients", "client_id", client.ID, "error", err)
		a.prependTransaction(created)
		a.setNotice("error", "Transacción guardada, pero la deuda del cliente no pudo actualizarse.")
		return created, ErrDebtSyncFailed
	}

	a.mu.Lock()
	a.patchClientDebt(client.ID, newDebt)
	a.transactions = append([]*model.Transaction{created}, a.transactions...)
	a.mu.Unlock()

	a.setNotice("success", "Transacción agregada exitosamente")
	return created, nil
}

// DeleteClient removes one client at the store and mirrors the removal
// locally. The store cascades the client's transactions; the local
// transaction mirror is pruned as well so no dangling rows survive
// until the next reload. Deleting the client shown in the detail view
// navigates back to the list and clears the selection.
func (a *App) DeleteClient(ctx context.Context, id int64) error {
	if err := a.store.DeleteClient(ctx, id); err != nil {
		logger.Error("failed to delete client", "operation", "delete", "collection", "clients", "client_id", id, "error", err)
		a.setNotice("error", "Error al eliminar cliente. Verifica la conexión a la base de datos.")
		return err
	}

	a.mu.Lock()
	kept := a.clients[:0:0]
	for _, c := range a.clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	a.clients = kept

	remaining := a.transactions[:0:0]
	for _, t := range a.transactions {
		if t.ClientID != id {
			remaining = append(remaining, t)
		}
	}
	a.transactions = remaining

	if a.selectedID == id {
		a.screen = ScreenClientsList
		a.selectedID = 0
	}
	a.mu.Unlock()

	a.setNotice("success", "Cliente eliminado exitosamente")
	return nil
}

// nextDebt applies one transaction to a running debt. Payments are
// clamped at zero; debts grow unbounded.
func nextDebt(oldDebt int64, typ model.TransactionType, amount int64) int64 {
	if typ == model.TransactionTypePayment {
		d := oldDebt - amount
		if d < 0 {
			return 0
		}
		return d
	}
	return oldDebt + amount
}

func (a *App) prependTransaction(t *model.Transaction) {
	a.mu.Lock()
	a.transactions = append([]*model.Transaction{t}, a.transactions...)
	a.mu.Unlock()
}

// patchClientDebt must be called with the lock held. The slice is
// rebuilt rather than written in place; earlier snapshots share the
// old backing array, so an in-place element swap would race with a
// render iterating one.
func (a *App) patchClientDebt(id int64, newDebt int64) {
	patched := make([]*model.Client, len(a.clients))
	for i, c := range a.clients {
		if c.ID == id {
			cp := *c
			cp.CurrentDebt = newDebt
			patched[i] = &cp
			continue
		}
		patched[i] = c
	}
	a.clients = patched
}
