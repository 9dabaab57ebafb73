package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ticoencargo/cartera/internal/app"
	"github.com/ticoencargo/cartera/internal/model"
	xhttp "github.com/ticoencargo/cartera/pkg/http"
	"github.com/valyala/fasthttp"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListClients(ctx context.Context) ([]*model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Client), args.Error(1)
}

func (m *MockStore) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockStore) CreateClient(ctx context.Context, p model.ClientCreateRequest) (*model.Client, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockStore) CreateTransaction(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockStore) UpdateClientDebt(ctx context.Context, id int64, newDebt int64) error {
	args := m.Called(ctx, id, newDebt)
	return args.Error(0)
}

func (m *MockStore) DeleteClient(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestHandler(t *testing.T, st app.Store) (*Handler, *app.App) {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	a := app.New(st)
	h := NewHandler(a, r)
	h.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return h, a
}

func getCtx(path string) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI(path)
	return ctx
}

func postForm(path, form string) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod("POST")
	ctx.Request.SetRequestURI(path)
	ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
	ctx.Request.SetBodyString(form)
	return ctx
}

func seed(a *app.App, st *MockStore, clients []*model.Client, txs []*model.Transaction) {
	ctx := context.Background()
	st.On("ListClients", ctx).Return(clients, nil).Once()
	st.On("ListTransactions", ctx).Return(txs, nil).Once()
	a.Load(ctx)
}

func TestHandler_Dashboard(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st,
		[]*model.Client{
			{ID: 1, Name: "Ana", CurrentDebt: 1500},
			{ID: 2, Name: "Luis", CurrentDebt: 500},
		},
		[]*model.Transaction{
			{ID: 1, ClientID: 1, Type: model.TransactionTypePayment, Amount: 2500,
				Date: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Description: "Abono"},
		})

	ctx := getCtx("/")
	h.Index(ctx)

	require.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, "₡2,000")              // total debt
	assert.Contains(t, body, "₡2,500")              // income, filter all
	assert.Contains(t, body, "2 clientes")          // count
	assert.Contains(t, body, "Ana")                 // recent activity names the client
	assert.Contains(t, body, "Actividad Reciente")
}

func TestHandler_ClientsSearch(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st,
		[]*model.Client{
			{ID: 1, Name: "Ana María", Phone: "8888-1111"},
			{ID: 2, Name: "Luis", Phone: "7000-2222"},
		}, []*model.Transaction{})

	ctx := getCtx("/clients?q=ana")
	h.ShowClients(ctx)

	body := string(ctx.Response.Body())
	assert.Contains(t, body, "Ana María")
	assert.NotContains(t, body, "Luis")
	assert.Equal(t, app.ScreenClientsList, a.Snapshot().Screen)
}

func TestHandler_ShowClient(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st,
		[]*model.Client{{ID: 1, Name: "Ana", CurrentDebt: 900}},
		[]*model.Transaction{
			{ID: 1, ClientID: 1, Type: model.TransactionTypePayment, Amount: 100,
				Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Description: "Abono"},
		})

	t.Run("known client renders the detail screen", func(t *testing.T) {
		ctx := getCtx("/clients/1")
		ctx.SetUserValue("id", "1")
		h.ShowClient(ctx)

		body := string(ctx.Response.Body())
		assert.Contains(t, body, "Historial de Transacciones")
		assert.Contains(t, body, "₡900")
		assert.Contains(t, body, "+₡100")
	})

	t.Run("non-numeric id answers 404", func(t *testing.T) {
		ctx := getCtx("/clients/abc")
		ctx.SetUserValue("id", "abc")
		h.ShowClient(ctx)
		assert.Equal(t, xhttp.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("unknown id keeps the previous screen", func(t *testing.T) {
		a.ShowClientsList()
		ctx := getCtx("/clients/99")
		ctx.SetUserValue("id", "99")
		h.ShowClient(ctx)
		assert.Equal(t, app.ScreenClientsList, a.Snapshot().Screen)
	})
}

func TestHandler_CreateClient(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st, []*model.Client{}, []*model.Transaction{})

	created := &model.Client{ID: 7, Name: "Luis", Phone: "7000-2222", CurrentDebt: 300}
	st.On("CreateClient", mock.Anything, model.ClientCreateRequest{
		Name: "Luis", Phone: "7000-2222", CurrentDebt: 300,
	}).Return(created, nil)

	ctx := postForm("/clients", "name=Luis&phone=7000-2222&current_debt=300&notes=")
	h.CreateClient(ctx)

	assert.Equal(t, xhttp.StatusSeeOther, ctx.Response.StatusCode())
	assert.Equal(t, "/", string(ctx.Response.Header.Peek("Location")))

	snap := a.Snapshot()
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, app.ScreenDashboard, snap.Screen)
	st.AssertExpectations(t)
}

func TestHandler_CreateTransaction(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st,
		[]*model.Client{{ID: 1, Name: "Ana", CurrentDebt: 500}},
		[]*model.Transaction{})

	created := &model.Transaction{ID: 3, ClientID: 1, Type: model.TransactionTypePayment, Amount: 700,
		Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)}
	st.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(p model.TransactionCreateRequest) bool {
		return p.ClientID == 1 && p.Type == model.TransactionTypePayment && p.Amount == 700
	})).Return(created, nil)
	st.On("UpdateClientDebt", mock.Anything, int64(1), int64(0)).Return(nil)

	ctx := postForm("/clients/1/transactions", "type=payment&amount=700&date=2024-06-15&description=")
	ctx.SetUserValue("id", "1")
	h.CreateTransaction(ctx)

	assert.Equal(t, xhttp.StatusSeeOther, ctx.Response.StatusCode())
	assert.Equal(t, int64(0), a.Snapshot().Clients[0].CurrentDebt)
	st.AssertExpectations(t)
}

func TestHandler_SetFilter(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)

	ctx := postForm("/filter", "filter=custom&start=2024-06-01&end=2024-06-10")
	h.SetFilter(ctx)

	snap := a.Snapshot()
	assert.Equal(t, model.FilterCustom, snap.Filter)
	require.NotNil(t, snap.CustomRange.Start)
	require.NotNil(t, snap.CustomRange.End)
	assert.Equal(t, "2024-06-01", snap.CustomRange.Start.Format("2006-01-02"))
}

func TestHandler_NoticeRendersOnce(t *testing.T) {
	st := new(MockStore)
	h, a := newTestHandler(t, st)
	seed(a, st, []*model.Client{}, []*model.Transaction{})

	st.On("CreateClient", mock.Anything, mock.Anything).
		Return(&model.Client{ID: 1, Name: "Ana"}, nil)

	post := postForm("/clients", "name=Ana")
	h.CreateClient(post)

	first := getCtx("/")
	h.Index(first)
	assert.Contains(t, string(first.Response.Body()), "Cliente agregado exitosamente")

	second := getCtx("/")
	h.Index(second)
	assert.NotContains(t, string(second.Response.Body()), "Cliente agregado exitosamente")
}

func TestBuildPage_Dashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := app.Snapshot{
		Screen: app.ScreenDashboard,
		Clients: []*model.Client{
			{ID: 1, Name: "Ana", CurrentDebt: 400},
		},
		Transactions: []*model.Transaction{
			{ID: 2, ClientID: 1, Type: model.TransactionTypePayment, Amount: 150, Date: now},
			{ID: 1, ClientID: 9, Type: model.TransactionTypeDebt, Amount: 999, Date: now},
		},
		Filter: model.FilterAll,
	}

	p := BuildPage(snap, app.Notice{}, now)
	require.NotNil(t, p.Dashboard)
	assert.Equal(t, int64(400), p.Dashboard.TotalDebt)
	assert.Equal(t, int64(150), p.Dashboard.Income)
	assert.Equal(t, 1, p.Dashboard.ClientCount)
	require.Len(t, p.Dashboard.Recent, 2)
	// a transaction whose client is gone still shows in the feed
	assert.Equal(t, "Cliente eliminado", p.Dashboard.Recent[1].ClientName)
}

func TestBuildPage_DetailWithoutSelection(t *testing.T) {
	p := BuildPage(app.Snapshot{Screen: app.ScreenClientDetail}, app.Notice{}, time.Now())
	assert.Nil(t, p.Detail)
	// the layout falls back to a not-found card instead of crashing
	r, err := NewRenderer()
	require.NoError(t, err)
	body, err := r.Render(p)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "Cliente no encontrado"))
}
