package app

import (
	"sort"
	"strings"

	"github.com/ticoencargo/cartera/internal/model"
)

// SearchClients filters by a case-insensitive substring match on name
// or phone. A blank term returns the input unchanged.
func SearchClients(clients []*model.Client, term string) []*model.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clients
	}
	matched := make([]*model.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Phone), term) {
			matched = append(matched, c)
		}
	}
	return matched
}

// ClientHistory returns one client's transactions ordered by the
// user-chosen date, newest first. Ties keep the mirror's insertion
// order, which is newest created first.
func ClientHistory(txs []*model.Transaction, clientID int64) []*model.Transaction {
	history := make([]*model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ClientID == clientID {
			history = append(history, t)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history
}

// RecentTransactions returns the n most recently created transactions.
// The mirror is already ordered newest created first.
func RecentTransactions(txs []*model.Transaction, n int) []*model.Transaction {
	if len(txs) <= n {
		return txs
	}
	return txs[:n]
}
