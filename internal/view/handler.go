package view

import (
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/ticoencargo/cartera/internal/app"
	"github.com/ticoencargo/cartera/internal/model"
	xhttp "github.com/ticoencargo/cartera/pkg/http"
	"github.com/ticoencargo/cartera/pkg/logger"
)

const dateForm = "2006-01-02"

// Handler serves the HTML screens. Every GET renders the App's current
// screen; every POST applies one mutation and redirects back so a
// refresh never replays it.
type Handler struct {
	app      *app.App
	renderer *Renderer
	now      func() time.Time
}

func NewHandler(a *app.App, r *Renderer) *Handler {
	return &Handler{app: a, renderer: r, now: time.Now}
}

func RegisterRoutes(r *router.Router, h *Handler) {
	r.GET("/", h.Index)
	r.GET("/dashboard", h.ShowDashboard)
	r.GET("/clients", h.ShowClients)
	r.GET("/clients/new", h.ShowNewClient)
	r.GET("/clients/{id}", h.ShowClient)
	r.POST("/clients", h.CreateClient)
	r.POST("/clients/{id}/transactions", h.CreateTransaction)
	r.POST("/clients/{id}/delete", h.DeleteClient)
	r.POST("/filter", h.SetFilter)
	r.POST("/reload", h.Reload)
	r.GET("/health", h.Health)
}

func (h *Handler) Health(ctx *xhttp.RequestCtx) {
	ctx.Response.SetBodyString("success")
}

func (h *Handler) Index(ctx *xhttp.RequestCtx) {
	h.render(ctx)
}

func (h *Handler) ShowDashboard(ctx *xhttp.RequestCtx) {
	h.app.ShowDashboard()
	h.render(ctx)
}

func (h *Handler) ShowClients(ctx *xhttp.RequestCtx) {
	h.app.ShowClientsList()
	if ctx.QueryArgs().Has("q") {
		h.app.SetSearchTerm(string(ctx.QueryArgs().Peek("q")))
	}
	h.render(ctx)
}

func (h *Handler) ShowNewClient(ctx *xhttp.RequestCtx) {
	h.app.ShowNewClient()
	h.render(ctx)
}

func (h *Handler) ShowClient(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		ctx.Error(xhttp.StatusText(xhttp.StatusNotFound), xhttp.StatusNotFound)
		return
	}
	h.app.OpenClient(id)
	h.render(ctx)
}

func (h *Handler) CreateClient(ctx *xhttp.RequestCtx) {
	p := model.ClientCreateRequest{
		Name:  formValue(ctx, "name"),
		Phone: formValue(ctx, "phone"),
		Notes: formValue(ctx, "notes"),
	}
	if v := formValue(ctx, "current_debt"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.CurrentDebt = n
		}
	}

	// the App sets the outcome notice either way
	_, _ = h.app.AddClient(ctx, p)
	redirect(ctx, "/")
}

func (h *Handler) CreateTransaction(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		ctx.Error(xhttp.StatusText(xhttp.StatusNotFound), xhttp.StatusNotFound)
		return
	}

	p := model.TransactionCreateRequest{
		ClientID:    id,
		Type:        model.TransactionType(formValue(ctx, "type")),
		Description: formValue(ctx, "description"),
	}
	if n, err := strconv.ParseInt(formValue(ctx, "amount"), 10, 64); err == nil {
		p.Amount = n
	}
	if t, err := time.Parse(dateForm, formValue(ctx, "date")); err == nil {
		p.Date = t
	}

	_, _ = h.app.AddTransaction(ctx, p)
	redirect(ctx, "/")
}

func (h *Handler) DeleteClient(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		ctx.Error(xhttp.StatusText(xhttp.StatusNotFound), xhttp.StatusNotFound)
		return
	}
	_ = h.app.DeleteClient(ctx, id)
	redirect(ctx, "/")
}

func (h *Handler) SetFilter(ctx *xhttp.RequestCtx) {
	f := model.IncomeFilter(formValue(ctx, "filter"))
	var r model.DateRange
	if f == model.FilterCustom {
		if t, err := time.Parse(dateForm, formValue(ctx, "start")); err == nil {
			r.Start = &t
		}
		if t, err := time.Parse(dateForm, formValue(ctx, "end")); err == nil {
			r.End = &t
		}
	}
	h.app.SetFilter(f, r)
	redirect(ctx, "/")
}

func (h *Handler) Reload(ctx *xhttp.RequestCtx) {
	h.app.Load(ctx)
	redirect(ctx, "/")
}

func (h *Handler) render(ctx *xhttp.RequestCtx) {
	page := BuildPage(h.app.Snapshot(), h.app.TakeNotice(), h.now())
	body, err := h.renderer.Render(page)
	if err != nil {
		logger.Error("failed to render page", "screen", page.Screen, "error", err)
		ctx.Error(xhttp.StatusText(xhttp.StatusInternalServerError), xhttp.StatusInternalServerError)
		return
	}
	ctx.Response.Header.Set("Content-Type", "text/html; charset=utf-8")
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBody(body)
}

func redirect(ctx *xhttp.RequestCtx, location string) {
	ctx.Redirect(location, xhttp.StatusSeeOther)
}

func paramID(ctx *xhttp.RequestCtx) (int64, error) {
	v, _ := ctx.UserValue("id").(string)
	return strconv.ParseInt(v, 10, 64)
}

func formValue(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.PostArgs().Peek(key))
}
