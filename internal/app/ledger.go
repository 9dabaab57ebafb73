package app

import (
	"time"

	"github.com/ticoencargo/cartera/internal/model"
)

// The aggregates are recomputed on every render with linear scans. The
// collections hold one small business's customer base, so there is no
// need to cache any of this.

// TotalDebt sums current_debt over all loaded clients.
func TotalDebt(clients []*model.Client) int64 {
	var sum int64
	for _, c := range clients {
		sum += c.CurrentDebt
	}
	return sum
}

// FilteredIncome sums the amounts of payment transactions whose
// user-chosen date falls in the window implied by filter. The week and
// month windows are fixed 7/30-day spans measured from now, not
// calendar boundaries. A custom filter missing either bound matches
// nothing; it never falls back to all.
func FilteredIncome(txs []*model.Transaction, filter model.IncomeFilter, r model.DateRange, now time.Time) int64 {
	var sum int64
	for _, t := range txs {
		if t.Type != model.TransactionTypePayment {
			continue
		}
		if !inWindow(t.Date, filter, r, now) {
			continue
		}
		sum += t.Amount
	}
	return sum
}

func inWindow(date time.Time, filter model.IncomeFilter, r model.DateRange, now time.Time) bool {
	switch filter {
	case model.FilterWeek:
		return !date.Before(now.Add(-7 * 24 * time.Hour))
	case model.FilterMonth:
		return !date.Before(now.Add(-30 * 24 * time.Hour))
	case model.FilterCustom:
		if !r.Complete() {
			return false
		}
		return !date.Before(*r.Start) && !date.After(*r.End)
	default:
		return true
	}
}

// ClientTotalPaid sums the payment amounts recorded for one client.
func ClientTotalPaid(txs []*model.Transaction, clientID int64) int64 {
	var sum int64
	for _, t := range txs {
		if t.ClientID == clientID && t.Type == model.TransactionTypePayment {
			sum += t.Amount
		}
	}
	return sum
}
