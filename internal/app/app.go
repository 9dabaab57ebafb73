package app

import (
	"context"
	"sync"

	"github.com/ticoencargo/cartera/internal/model"
)

// Store is the remote data store collaborator. Each call is one
// network round trip; none are retried here.
type Store interface {
	ListClients(ctx context.Context) ([]*model.Client, error)
	ListTransactions(ctx context.Context) ([]*model.Transaction, error)
	CreateClient(ctx context.Context, p model.ClientCreateRequest) (*model.Client, error)
	CreateTransaction(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	UpdateClientDebt(ctx context.Context, id int64, newDebt int64) error
	DeleteClient(ctx context.Context, id int64) error
}

// App owns the whole view state: the two mirrored collections, the
// active screen and its inputs. It is the only writer; the view layer
// reads through Snapshot. The store keeps the authoritative rows, so
// everything here can be rebuilt by a full reload.
type App struct {
	mu    sync.Mutex
	store Store

	clients      []*model.Client
	transactions []*model.Transaction

	screen      Screen
	selectedID  int64 // 0 = no client selected
	filter      model.IncomeFilter
	customRange model.DateRange
	searchTerm  string
	loading     bool
	notice      Notice
}

// Notice is the blocking user-visible outcome of the last mutation,
// rendered once on the next page.
type Notice struct {
	Kind string // "success" | "error"
	Text string
}

func New(store Store) *App {
	return &App{
		store:  store,
		screen: ScreenDashboard,
		filter: model.FilterAll,
	}
}

// Snapshot is a consistent read of the view state for rendering.
type Snapshot struct {
	Screen       Screen
	Clients      []*model.Client
	Transactions []*model.Transaction
	Current      *model.Client
	Filter       model.IncomeFilter
	CustomRange  model.DateRange
	SearchTerm   string
	Loading      bool
}

func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Screen:       a.screen,
		Clients:      a.clients,
		Transactions: a.transactions,
		Current:      a.findClient(a.selectedID),
		Filter:       a.filter,
		CustomRange:  a.customRange,
		SearchTerm:   a.searchTerm,
		Loading:      a.loading,
	}
}

// TakeNotice returns the pending notice and clears it.
func (a *App) TakeNotice() Notice {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.notice
	a.notice = Notice{}
	return n
}

func (a *App) setNotice(kind, text string) {
	a.mu.Lock()
	a.notice = Notice{Kind: kind, Text: text}
	a.mu.Unlock()
}

// findClient must be called with the lock held.
func (a *App) findClient(id int64) *model.Client {
	if id == 0 {
		return nil
	}
	for _, c := range a.clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}
