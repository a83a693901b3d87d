package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummaryForUnknownClient(t *testing.T) {
	l := New()

	exp := Summary{Total: 0, Items: map[string]int{}}
	if diff := cmp.Diff(exp, l.SummaryFor("nobody")); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if ids := l.Purchases("nobody"); len(ids) != 0 {
		t.Fatalf("expected no purchases, but got %v", ids)
	}
}

func TestSummaryAggregatesSales(t *testing.T) {
	l := New()

	first := l.Append("client", 100, map[string]int{"itemX": 1})
	second := l.Append("client", 200, map[string]int{"itemY": 1})
	l.Append("client", 250, map[string]int{"itemX": 2, "itemY": 1})
	l.Append("other", 999, map[string]int{"itemZ": 9})

	exp := Summary{Total: 550, Items: map[string]int{"itemX": 3, "itemY": 2}}
	if diff := cmp.Diff(exp, l.SummaryFor("client")); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	ids := l.Purchases("client")
	if len(ids) != 3 || ids[0] != first || ids[1] != second {
		t.Fatalf("expected purchases in checkout order, but got %v", ids)
	}
}

func TestSalesAreImmutable(t *testing.T) {
	l := New()
	items := map[string]int{"itemX": 1}
	id := l.Append("client", 100, items)

	items["itemX"] = 50

	s, ok := l.Sale(id)
	if !ok {
		t.Fatalf("expected sale[%s] to exist", id)
	}
	s.Items["itemX"] = 70

	again, _ := l.Sale(id)
	if diff := cmp.Diff(Sale{Total: 100, Items: map[string]int{"itemX": 1}}, again); diff != "" {
		t.Fatalf("sale mismatch (-want +got):\n%s", diff)
	}

	if _, ok := l.Sale("missing"); ok {
		t.Fatal("expected missing sale not to be found")
	}
}

func TestAppendRetriesOnIDCollision(t *testing.T) {
	l := New()
	ids := []string{"a", "a", "b"}
	l.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first := l.Append("client", 1, nil)
	second := l.Append("client", 2, nil)
	if first != "a" || second != "b" {
		t.Fatalf("expected ids a and b, but got %s and %s", first, second)
	}
}

func TestPurchaseIDsAreUnique(t *testing.T) {
	l := New()

	const clients, perClient = 8, 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)

	for c := 0; c < clients; c++ {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			client := fmt.Sprintf("client-%d", c%3)
			for i := 0; i < perClient; i++ {
				id := l.Append(client, 1, map[string]int{"item": 1})
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}(c)
	}
	wg.Wait()

	if len(ids) != clients*perClient {
		t.Fatalf("expected %d unique ids, but got %d", clients*perClient, len(ids))
	}

	var total int
	for c := 0; c < 3; c++ {
		total += l.SummaryFor(fmt.Sprintf("client-%d", c)).Total
	}
	if total != clients*perClient {
		t.Fatalf("expected total %d, but got %d", clients*perClient, total)
	}
}
