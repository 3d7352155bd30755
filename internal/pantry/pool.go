// Package pantry implements the shared ingredient card pool: the face-down
// deck, the face-up pantry row, and the discard pile.
package pantry

import (
	"fmt"
	"math/rand"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// RowSize is the target number of face-up cards in the pantry row.
const RowSize = 5

// Census counts the cards in each zone of the pool.
type Census struct {
	Deck    int
	Row     int
	Discard int
}

// Total returns the number of cards held by the pool.
func (c Census) Total() int { return c.Deck + c.Row + c.Discard }

// Pool owns three disjoint card piles. Every card it holds is in exactly one
// of them. The rng is shared with the engine and only consumed by Shuffle and
// by reshuffling the discard pile into an empty deck.
type Pool struct {
	deck    []domain.Ingredient // front is the next draw
	row     []domain.Ingredient
	discard []domain.Ingredient
	rng     *rand.Rand
	log     *logger.Logger
}

// New creates a pool whose deck holds cards in the given order.
func New(cards []domain.Ingredient, rng *rand.Rand, log *logger.Logger) *Pool {
	return &Pool{
		deck: append([]domain.Ingredient(nil), cards...),
		rng:  rng,
		log:  log,
	}
}

// Shuffle shuffles the deck in place.
func (p *Pool) Shuffle() {
	shuffle(p.rng, p.deck)
}

func shuffle(rng *rand.Rand, cards []domain.Ingredient) {
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// reshuffle turns the discard pile into the deck.
func (p *Pool) reshuffle() {
	p.log.Debug("reshuffling %d discarded cards into the deck", len(p.discard))
	p.deck = append(p.deck, p.discard...)
	p.discard = nil
	shuffle(p.rng, p.deck)
}

// DrawFromDeck takes the front card of the deck, reshuffling the discard
// pile into the deck first if the deck is empty.
func (p *Pool) DrawFromDeck() (domain.Ingredient, error) {
	if len(p.deck) == 0 {
		if len(p.discard) == 0 {
			return domain.Ingredient{}, domain.ErrEmptyPantry
		}
		p.reshuffle()
	}
	c := p.deck[0]
	p.deck = p.deck[1:]
	return c, nil
}

// Deal takes n cards from the deck, for initial hands. It fails without
// drawing anything if the pool cannot supply n cards.
func (p *Pool) Deal(n int) ([]domain.Ingredient, error) {
	if n > len(p.deck)+len(p.discard) {
		return nil, fmt.Errorf("deal %d from %d: %w", n, len(p.deck)+len(p.discard), domain.ErrNotEnoughCards)
	}
	out := make([]domain.Ingredient, 0, n)
	for i := 0; i < n; i++ {
		c, err := p.DrawFromDeck()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FillRow tops the row up to RowSize. If both deck and discard run out the
// row is left short.
func (p *Pool) FillRow() {
	for len(p.row) < RowSize {
		c, err := p.DrawFromDeck()
		if err != nil {
			p.log.Debug("pantry row degraded to %d cards", len(p.row))
			return
		}
		p.row = append(p.row, c)
	}
}

// Draw removes a card from the row. With an empty name the front card is
// taken, otherwise the first card matching name ignoring case. The row is
// topped up afterwards. An empty row is refilled first, which recycles cards
// a refresh left in the discard pile.
func (p *Pool) Draw(name string) (domain.Ingredient, error) {
	if len(p.row) == 0 {
		p.FillRow()
	}
	if len(p.row) == 0 {
		return domain.Ingredient{}, domain.ErrEmptyPantry
	}

	idx := 0
	if name != "" {
		idx = -1
		key := domain.Fold(name)
		for i, c := range p.row {
			if c.Key() == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.Ingredient{}, fmt.Errorf("%q is not in the pantry: %w", name, domain.ErrNotFound)
		}
	}

	c := p.row[idx]
	p.row = append(p.row[:idx], p.row[idx+1:]...)
	p.FillRow()
	return c, nil
}

// Refresh discards the whole row and deals a new one. Cards discarded by this
// call are not reshuffled into the deck until a later draw needs them.
func (p *Pool) Refresh() {
	stale := p.row
	p.row = nil
	earlier := p.discard
	p.discard = nil

	for len(p.row) < RowSize {
		if len(p.deck) == 0 {
			if len(earlier) == 0 {
				break
			}
			p.deck = earlier
			earlier = nil
			shuffle(p.rng, p.deck)
		}
		p.row = append(p.row, p.deck[0])
		p.deck = p.deck[1:]
	}

	p.discard = append(earlier, stale...)
	p.log.Debug("pantry refreshed: %d discarded, row=%d deck=%d", len(stale), len(p.row), len(p.deck))
}

// Discard puts cards on the discard pile.
func (p *Pool) Discard(cards ...domain.Ingredient) {
	p.discard = append(p.discard, cards...)
}

// Row returns a copy of the face-up row, front first.
func (p *Pool) Row() []domain.Ingredient {
	return append([]domain.Ingredient(nil), p.row...)
}

// DeckSize returns the number of face-down cards.
func (p *Pool) DeckSize() int { return len(p.deck) }

// DiscardSize returns the number of discarded cards.
func (p *Pool) DiscardSize() int { return len(p.discard) }

// Degraded reports whether the row is below its target size.
func (p *Pool) Degraded() bool { return len(p.row) < RowSize }

// Census counts the cards in every zone.
func (p *Pool) Census() Census {
	return Census{Deck: len(p.deck), Row: len(p.row), Discard: len(p.discard)}
}
