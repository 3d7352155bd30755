// Package customers manages the customer-order pipeline: the unrevealed
// deck, the active window, the waiting row and the resolved pile.
package customers

import (
	"fmt"
	"math/rand"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// MaxActive is the size of the active window.
const MaxActive = 3

// quotas maps a player count to the number of orders taken per level.
var quotas = map[int][]struct{ level, count int }{
	2: {{1, 4}, {2, 2}, {3, 1}},
	3: {{1, 1}, {2, 2}, {3, 4}},
	4: {{1, 1}, {2, 2}, {3, 4}},
	5: {{2, 1}, {3, 6}},
}

// BuildDeck instantiates the session's customer deck from the order
// definitions. Orders are shuffled, grouped by level, each level is shuffled
// and cut to the quota for the player count, and the selection is shuffled
// once more. A level with too few definitions contributes what it has.
func BuildDeck(defs []domain.OrderCard, players int, rng *rand.Rand) ([]*domain.CustomerOrder, error) {
	quota, ok := quotas[players]
	if !ok {
		return nil, fmt.Errorf("%d players: %w", players, domain.ErrInvalidPlayers)
	}

	all := make([]*domain.CustomerOrder, len(defs))
	for i, d := range defs {
		all[i] = domain.NewCustomerOrder(d)
	}
	shuffle(rng, all)

	byLevel := make(map[int][]*domain.CustomerOrder)
	for _, o := range all {
		byLevel[o.Level()] = append(byLevel[o.Level()], o)
	}

	var deck []*domain.CustomerOrder
	for _, q := range quota {
		group := byLevel[q.level]
		shuffle(rng, group)
		deck = append(deck, group[:min(q.count, len(group))]...)
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("no orders for %d players: %w", players, domain.ErrNotEnoughCards)
	}
	shuffle(rng, deck)
	return deck, nil
}

func shuffle(rng *rand.Rand, orders []*domain.CustomerOrder) {
	rng.Shuffle(len(orders), func(i, j int) { orders[i], orders[j] = orders[j], orders[i] })
}

// Outcome lists what a call to AdvanceRound changed.
type Outcome struct {
	Admitted  *domain.CustomerOrder
	Evicted   *domain.CustomerOrder
	Impatient []*domain.CustomerOrder
	GivenUp   []*domain.CustomerOrder
}

// Queue owns every customer order of a session. Each order is in exactly one
// of deck, active, waiting or resolved. Orders move front to back in arrival
// order; nothing is reordered once it leaves the deck.
type Queue struct {
	deck     []*domain.CustomerOrder
	active   []*domain.CustomerOrder
	waiting  []*domain.CustomerOrder
	resolved []*domain.CustomerOrder
	log      *logger.Logger
}

// New creates a queue drawing from deck, front first.
func New(deck []*domain.CustomerOrder, log *logger.Logger) *Queue {
	return &Queue{
		deck: append([]*domain.CustomerOrder(nil), deck...),
		log:  log,
	}
}

// AdmitNext moves the front of the deck to the back of the active window if
// there is room. It returns the admitted order, or nil.
func (q *Queue) AdmitNext() *domain.CustomerOrder {
	if len(q.active) >= MaxActive || len(q.deck) == 0 {
		return nil
	}
	o := q.deck[0]
	q.deck = q.deck[1:]
	q.active = append(q.active, o)
	q.log.Info("customer %q arrives (level %d)", o.Name(), o.Level())
	return o
}

// AdvanceRound runs the end-of-round customer step. Orders already in the
// waiting row age first: impatient ones give up and waiting ones become
// impatient. Then the oldest order of a full window is evicted to the waiting
// row and one new order is admitted.
func (q *Queue) AdvanceRound() Outcome {
	var out Outcome

	kept := q.waiting[:0]
	for _, o := range q.waiting {
		switch o.Status() {
		case domain.StatusImpatient:
			if err := o.GiveUp(); err != nil {
				q.log.Error("giving up %s: %v", o.Name(), err)
			}
			q.resolved = append(q.resolved, o)
			out.GivenUp = append(out.GivenUp, o)
			q.log.Info("customer %q gave up", o.Name())
			continue
		case domain.StatusWaiting:
			if err := o.MarkImpatient(); err != nil {
				q.log.Error("marking %s impatient: %v", o.Name(), err)
			}
			out.Impatient = append(out.Impatient, o)
		}
		kept = append(kept, o)
	}
	q.waiting = kept

	if len(q.active) == MaxActive {
		o := q.active[0]
		q.active = append(q.active[:0:0], q.active[1:]...)
		q.waiting = append(q.waiting, o)
		out.Evicted = o
		q.log.Info("customer %q moved to the waiting row", o.Name())
	}

	out.Admitted = q.AdmitNext()
	return out
}

// Find returns the pending order called name, searching the active window
// before the waiting row.
func (q *Queue) Find(name string) (*domain.CustomerOrder, bool) {
	for _, set := range [][]*domain.CustomerOrder{q.active, q.waiting} {
		for _, o := range set {
			if o.Is(name) {
				return o, true
			}
		}
	}
	return nil, false
}

// Fulfill moves a served order from the active window or the waiting row to
// the resolved pile. It reports false and does nothing if o is in neither.
func (q *Queue) Fulfill(o *domain.CustomerOrder) bool {
	if i := indexOf(q.active, o); i >= 0 {
		q.active = append(q.active[:i:i], q.active[i+1:]...)
	} else if i := indexOf(q.waiting, o); i >= 0 {
		q.waiting = append(q.waiting[:i:i], q.waiting[i+1:]...)
	} else {
		return false
	}
	q.resolved = append(q.resolved, o)
	return true
}

func indexOf(set []*domain.CustomerOrder, o *domain.CustomerOrder) int {
	for i, x := range set {
		if x == o {
			return i
		}
	}
	return -1
}

// Active returns the active window, oldest first.
func (q *Queue) Active() []*domain.CustomerOrder { return clone(q.active) }

// Waiting returns the waiting row, oldest first.
func (q *Queue) Waiting() []*domain.CustomerOrder { return clone(q.waiting) }

// Resolved returns served and given-up orders in the order they were resolved.
func (q *Queue) Resolved() []*domain.CustomerOrder { return clone(q.resolved) }

// Pending returns the active window followed by the waiting row.
func (q *Queue) Pending() []*domain.CustomerOrder {
	return append(clone(q.active), q.waiting...)
}

// DeckSize returns the number of unrevealed orders.
func (q *Queue) DeckSize() int { return len(q.deck) }

// Total returns the number of orders the queue owns.
func (q *Queue) Total() int {
	return len(q.deck) + len(q.active) + len(q.waiting) + len(q.resolved)
}

// AtRisk returns the order the next round end will evict, or nil if the
// window is not full.
func (q *Queue) AtRisk() *domain.CustomerOrder {
	if len(q.active) < MaxActive {
		return nil
	}
	return q.active[0]
}

// Exhausted reports whether no order can be admitted and none is pending.
func (q *Queue) Exhausted() bool {
	return len(q.deck) == 0 && len(q.active) == 0 && len(q.waiting) == 0
}

func clone(set []*domain.CustomerOrder) []*domain.CustomerOrder {
	return append([]*domain.CustomerOrder(nil), set...)
}
