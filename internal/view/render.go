package view

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/pkg/errors"
	"github.com/ticoencargo/cartera/internal/app"
	"github.com/ticoencargo/cartera/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const recentActivityLimit = 5

// Renderer owns the parsed template set. One page is rendered per
// request from an App snapshot; templates never touch the App directly.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"colones": FormatColones,
		"shortdate": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"inputdate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "view: parse templates")
	}
	return &Renderer{tpl: tpl}, nil
}

// Page is the full render input: the active screen plus the data every
// screen section draws from.
type Page struct {
	Screen  app.Screen
	Notice  app.Notice
	Loading bool

	Dashboard *DashboardData
	Clients   *ClientsData
	Detail    *DetailData
}

type DashboardData struct {
	TotalDebt   int64
	Income      int64
	ClientCount int
	Filter      model.IncomeFilter
	CustomRange model.DateRange
	Recent      []ActivityRow
}

// ActivityRow pairs a transaction with its client's display name for
// the dashboard feed.
type ActivityRow struct {
	Tx         *model.Transaction
	ClientName string
}

type ClientsData struct {
	Term string
	Rows []ClientRow
}

type ClientRow struct {
	Client    *model.Client
	TotalPaid int64
}

type DetailData struct {
	Client    *model.Client
	TotalPaid int64
	History   []*model.Transaction
	Today     string
}

// BuildPage derives the render input for the active screen from one
// snapshot. now feeds the dashboard's income window.
func BuildPage(snap app.Snapshot, notice app.Notice, now time.Time) Page {
	p := Page{
		Screen:  snap.Screen,
		Notice:  notice,
		Loading: snap.Loading,
	}

	switch snap.Screen {
	case app.ScreenDashboard:
		recent := app.RecentTransactions(snap.Transactions, recentActivityLimit)
		rows := make([]ActivityRow, 0, len(recent))
		for _, tx := range recent {
			rows = append(rows, ActivityRow{Tx: tx, ClientName: clientName(snap.Clients, tx.ClientID)})
		}
		p.Dashboard = &DashboardData{
			TotalDebt:   app.TotalDebt(snap.Clients),
			Income:      app.FilteredIncome(snap.Transactions, snap.Filter, snap.CustomRange, now),
			ClientCount: len(snap.Clients),
			Filter:      snap.Filter,
			CustomRange: snap.CustomRange,
			Recent:      rows,
		}
	case app.ScreenClientsList:
		matched := app.SearchClients(snap.Clients, snap.SearchTerm)
		rows := make([]ClientRow, 0, len(matched))
		for _, c := range matched {
			rows = append(rows, ClientRow{Client: c, TotalPaid: app.ClientTotalPaid(snap.Transactions, c.ID)})
		}
		p.Clients = &ClientsData{Term: snap.SearchTerm, Rows: rows}
	case app.ScreenClientDetail:
		if snap.Current != nil {
			p.Detail = &DetailData{
				Client:    snap.Current,
				TotalPaid: app.ClientTotalPaid(snap.Transactions, snap.Current.ID),
				History:   app.ClientHistory(snap.Transactions, snap.Current.ID),
				Today:     now.Format("2006-01-02"),
			}
		}
	}
	return p
}

func (r *Renderer) Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return nil, errors.Wrap(err, "view: render")
	}
	return buf.Bytes(), nil
}

func clientName(clients []*model.Client, id int64) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "Cliente eliminado"
}
