package ledger

import (
	"sync"

	"github.com/irsalhamdi/e-commerce-books/validate"
)

type Sale struct {
	Total int
	Items map[string]int
}

type Summary struct {
	Total int
	Items map[string]int
}

// Ledger is the append-only record of completed purchases. Sales are never
// updated or removed.
type Ledger struct {
	mu       sync.RWMutex
	sales    map[string]Sale
	byClient map[string][]string
	newID    func() string
}

func New() *Ledger {
	return &Ledger{
		sales:    make(map[string]Sale),
		byClient: make(map[string][]string),
		newID:    validate.GenerateID,
	}
}

func (l *Ledger) Append(clientID string, total int, items map[string]int) string {
	sale := Sale{Total: total, Items: copyItems(items)}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newID()
	for _, taken := l.sales[id]; taken; _, taken = l.sales[id] {
		id = l.newID()
	}

	l.sales[id] = sale
	l.byClient[clientID] = append(l.byClient[clientID], id)
	return id
}

func (l *Ledger) Sale(purchaseID string) (Sale, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sales[purchaseID]
	if !ok {
		return Sale{}, false
	}
	return Sale{Total: s.Total, Items: copyItems(s.Items)}, true
}

// Purchases returns the client's purchase ids in checkout order.
func (l *Ledger) Purchases(clientID string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byClient[clientID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (l *Ledger) SummaryFor(clientID string) Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := Summary{Items: make(map[string]int)}
	for _, id := range l.byClient[clientID] {
		s := l.sales[id]
		sum.Total += s.Total
		for item, q := range s.Items {
			sum.Items[item] += q
		}
	}
	return sum
}

func copyItems(items map[string]int) map[string]int {
	out := make(map[string]int, len(items))
	for id, q := range items {
		out[id] = q
	}
	return out
}
