package app

import "github.com/ticoencargo/cartera/internal/model"

// Screen is the active view. This is a plain selector driven by user
// navigation, not a guarded state machine; no data change ever switches
// screens on its own.
type Screen string

const (
	ScreenDashboard    Screen = "dashboard"
	ScreenNewClient    Screen = "newClient"
	ScreenClientsList  Screen = "clientsList"
	ScreenClientDetail Screen = "clientDetail"
)

func (a *App) ShowDashboard() {
	a.mu.Lock()
	a.screen = ScreenDashboard
	a.mu.Unlock()
}

func (a *App) ShowNewClient() {
	a.mu.Lock()
	a.screen = ScreenNewClient
	a.mu.Unlock()
}

func (a *App) ShowClientsList() {
	a.mu.Lock()
	a.screen = ScreenClientsList
	a.mu.Unlock()
}

// OpenClient selects a client and shows its detail screen. An unknown
// id leaves the current screen alone.
func (a *App) OpenClient(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.findClient(id) == nil {
		return
	}
	a.selectedID = id
	a.screen = ScreenClientDetail
}

// SetFilter switches the dashboard income window. The custom range is
// kept even while another filter is active so the picker reopens with
// the previous dates.
func (a *App) SetFilter(f model.IncomeFilter, r model.DateRange) {
	if !f.Valid() {
		return
	}
	a.mu.Lock()
	a.filter = f
	if f == model.FilterCustom {
		a.customRange = r
	}
	a.mu.Unlock()
}

func (a *App) SetSearchTerm(term string) {
	a.mu.Lock()
	a.searchTerm = term
	a.mu.Unlock()
}
