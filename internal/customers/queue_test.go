package customers

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

func orderDefs(perLevel int) []domain.OrderCard {
	var defs []domain.OrderCard
	for level := 1; level <= 3; level++ {
		for i := 0; i < perLevel; i++ {
			defs = append(defs, domain.OrderCard{
				Level:  level,
				Name:   fmt.Sprintf("L%d-%d", level, i),
				Recipe: []domain.Ingredient{domain.NewIngredient("Flour")},
			})
		}
	}
	return defs
}

func setupQueue(t *testing.T, n int) *Queue {
	t.Helper()
	deck := make([]*domain.CustomerOrder, n)
	for i := range deck {
		deck[i] = domain.NewCustomerOrder(domain.OrderCard{
			Level:  1,
			Name:   fmt.Sprintf("order-%d", i),
			Recipe: []domain.Ingredient{domain.NewIngredient("Flour")},
		})
	}
	return New(deck, logger.New(logger.LevelOff, nil))
}

func TestBuildDeckQuotas(t *testing.T) {
	tests := []struct {
		players int
		want    map[int]int
	}{
		{2, map[int]int{1: 4, 2: 2, 3: 1}},
		{3, map[int]int{1: 1, 2: 2, 3: 4}},
		{4, map[int]int{1: 1, 2: 2, 3: 4}},
		{5, map[int]int{2: 1, 3: 6}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.players), func(t *testing.T) {
			deck, err := BuildDeck(orderDefs(8), tt.players, rand.New(rand.NewSource(12345)))
			if err != nil {
				t.Fatalf("build deck: %v", err)
			}
			got := map[int]int{}
			for _, o := range deck {
				got[o.Level()]++
			}
			for level := 1; level <= 3; level++ {
				if got[level] != tt.want[level] {
					t.Fatalf("level %d: expected %d orders, got %d", level, tt.want[level], got[level])
				}
			}
		})
	}
}

func TestBuildDeckShortLevelAndBadPlayerCount(t *testing.T) {
	deck, err := BuildDeck(orderDefs(1), 5, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("build deck: %v", err)
	}
	if len(deck) != 2 {
		t.Fatalf("expected one order per available level, got %d", len(deck))
	}

	if _, err := BuildDeck(orderDefs(1), 6, rand.New(rand.NewSource(1))); !errors.Is(err, domain.ErrInvalidPlayers) {
		t.Fatalf("expected ErrInvalidPlayers, got %v", err)
	}
}

func TestBuildDeckIsDeterministic(t *testing.T) {
	a, _ := BuildDeck(orderDefs(5), 2, rand.New(rand.NewSource(99)))
	b, _ := BuildDeck(orderDefs(5), 2, rand.New(rand.NewSource(99)))
	for i := range a {
		if a[i].Name() != b[i].Name() {
			t.Fatalf("position %d differs: %s vs %s", i, a[i].Name(), b[i].Name())
		}
	}
}

func TestActiveWindowNeverExceedsMax(t *testing.T) {
	q := setupQueue(t, 10)
	for i := 0; i < 5; i++ {
		q.AdmitNext()
	}
	if got := len(q.Active()); got != MaxActive {
		t.Fatalf("expected %d active, got %d", MaxActive, got)
	}
	for i := 0; i < 20; i++ {
		q.AdvanceRound()
		if got := len(q.Active()); got > MaxActive {
			t.Fatalf("round %d: active window holds %d", i, got)
		}
		if q.Total() != 10 {
			t.Fatalf("round %d: queue lost orders, total %d", i, q.Total())
		}
	}
	// Once the deck is empty the window stops filling, so nothing more is evicted.
	if len(q.Active()) != MaxActive-1 || len(q.Waiting()) != 0 || len(q.Resolved()) != 8 {
		t.Fatalf("unexpected queue: active=%d waiting=%d resolved=%d",
			len(q.Active()), len(q.Waiting()), len(q.Resolved()))
	}
	if q.Exhausted() {
		t.Fatal("queue with active orders is not exhausted")
	}
}

func TestEvictionAgingAndGiveUp(t *testing.T) {
	q := setupQueue(t, 4)
	q.AdmitNext()
	q.AdmitNext()
	q.AdmitNext()

	if r := q.AtRisk(); r == nil || r.Name() != "order-0" {
		t.Fatalf("expected order-0 at risk, got %v", r)
	}

	out := q.AdvanceRound()
	if out.Evicted == nil || out.Evicted.Name() != "order-0" {
		t.Fatalf("expected order-0 evicted, got %+v", out)
	}
	if out.Admitted == nil || out.Admitted.Name() != "order-3" {
		t.Fatalf("expected order-3 admitted, got %+v", out)
	}
	evicted := out.Evicted
	if evicted.Status() != domain.StatusWaiting {
		t.Fatalf("expected evicted order waiting, got %s", evicted.Status())
	}

	out = q.AdvanceRound()
	if evicted.Status() != domain.StatusImpatient || len(out.Impatient) != 1 {
		t.Fatalf("expected order-0 impatient, got %s", evicted.Status())
	}

	out = q.AdvanceRound()
	if evicted.Status() != domain.StatusGivenUp || len(out.GivenUp) != 1 {
		t.Fatalf("expected order-0 given up, got %s", evicted.Status())
	}
	if _, ok := q.Find("order-0"); ok {
		t.Fatal("given-up order is still pending")
	}
	if got := q.Resolved(); len(got) != 1 || got[0] != evicted {
		t.Fatal("expected given-up order in resolved")
	}
}

func TestFulfillFromEitherCollection(t *testing.T) {
	q := setupQueue(t, 4)
	q.AdmitNext()
	q.AdmitNext()
	q.AdmitNext()
	q.AdvanceRound()

	waiting, ok := q.Find("ORDER-0")
	if !ok {
		t.Fatal("expected to find order-0 in the waiting row")
	}
	active, ok := q.Find("order-2")
	if !ok {
		t.Fatal("expected to find order-2 in the active window")
	}

	if !q.Fulfill(waiting) || !q.Fulfill(active) {
		t.Fatal("fulfil should relocate both orders")
	}
	if len(q.Waiting()) != 0 || len(q.Active()) != 2 || len(q.Resolved()) != 2 {
		t.Fatalf("unexpected queue: active=%d waiting=%d resolved=%d",
			len(q.Active()), len(q.Waiting()), len(q.Resolved()))
	}

	if q.Fulfill(waiting) {
		t.Fatal("second fulfil of the same order should be a no-op")
	}
	if len(q.Resolved()) != 2 {
		t.Fatal("no-op fulfil changed the resolved pile")
	}
}
