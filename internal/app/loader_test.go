package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticoencargo/cartera/internal/model"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("both reads succeed", func(t *testing.T) {
		st := new(MockStore)
		clients := []*model.Client{{ID: 1, Name: "Ana", CurrentDebt: 500}}
		txs := []*model.Transaction{{ID: 1, ClientID: 1, Type: model.TransactionTypeDebt, Amount: 500}}
		st.On("ListClients", ctx).Return(clients, nil)
		st.On("ListTransactions", ctx).Return(txs, nil)

		a := New(st)
		a.Load(ctx)

		snap := a.Snapshot()
		assert.Equal(t, clients, snap.Clients)
		assert.Equal(t, txs, snap.Transactions)
		assert.False(t, a.Loading())
		st.AssertExpectations(t)
	})

	t.Run("failed clients read leaves transactions intact", func(t *testing.T) {
		st := new(MockStore)
		txs := []*model.Transaction{{ID: 1, ClientID: 1, Type: model.TransactionTypePayment, Amount: 100}}
		st.On("ListClients", ctx).Return(nil, errors.New("store down"))
		st.On("ListTransactions", ctx).Return(txs, nil)

		a := New(st)
		a.Load(ctx)

		snap := a.Snapshot()
		require.NotNil(t, snap.Clients)
		assert.Empty(t, snap.Clients)
		assert.Equal(t, txs, snap.Transactions)
	})

	t.Run("failed transactions read leaves clients intact", func(t *testing.T) {
		st := new(MockStore)
		clients := []*model.Client{{ID: 1, Name: "Ana"}}
		st.On("ListClients", ctx).Return(clients, nil)
		st.On("ListTransactions", ctx).Return(nil, errors.New("store down"))

		a := New(st)
		a.Load(ctx)

		snap := a.Snapshot()
		assert.Equal(t, clients, snap.Clients)
		require.NotNil(t, snap.Transactions)
		assert.Empty(t, snap.Transactions)
	})

	t.Run("reload replaces stale mirrors wholesale", func(t *testing.T) {
		st := new(MockStore)
		fresh := []*model.Client{{ID: 2, Name: "Luis"}}
		st.On("ListClients", ctx).Return(fresh, nil)
		st.On("ListTransactions", ctx).Return([]*model.Transaction{}, nil)

		a := newTestApp(st,
			[]*model.Client{{ID: 1, Name: "Ana"}},
			[]*model.Transaction{{ID: 9, ClientID: 1, Type: model.TransactionTypeDebt, Amount: 50}})
		a.Load(ctx)

		snap := a.Snapshot()
		assert.Equal(t, fresh, snap.Clients)
		assert.Empty(t, snap.Transactions)
	})
}

func TestOpenClient(t *testing.T) {
	st := new(MockStore)
	a := newTestApp(st, []*model.Client{{ID: 1, Name: "Ana"}}, nil)

	t.Run("unknown id keeps the current screen", func(t *testing.T) {
		a.ShowClientsList()
		a.OpenClient(99)
		snap := a.Snapshot()
		assert.Equal(t, ScreenClientsList, snap.Screen)
		assert.Nil(t, snap.Current)
	})

	t.Run("known id opens the detail view", func(t *testing.T) {
		a.OpenClient(1)
		snap := a.Snapshot()
		assert.Equal(t, ScreenClientDetail, snap.Screen)
		require.NotNil(t, snap.Current)
		assert.Equal(t, "Ana", snap.Current.Name)
	})
}

func TestSetFilter(t *testing.T) {
	st := new(MockStore)
	a := New(st)

	start := date("2024-06-01")
	end := date("2024-06-10")

	t.Run("custom range survives switching away and back", func(t *testing.T) {
		a.SetFilter(model.FilterCustom, model.DateRange{Start: &start, End: &end})
		a.SetFilter(model.FilterWeek, model.DateRange{})

		snap := a.Snapshot()
		assert.Equal(t, model.FilterWeek, snap.Filter)
		require.NotNil(t, snap.CustomRange.Start)
		assert.Equal(t, start, *snap.CustomRange.Start)
	})

	t.Run("invalid filter is ignored", func(t *testing.T) {
		a.SetFilter(model.IncomeFilter("bogus"), model.DateRange{})
		assert.Equal(t, model.FilterWeek, a.Snapshot().Filter)
	})
}
