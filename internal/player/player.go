// Package player holds a participant and the cards in their hand.
package player

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

// Player owns an ordered hand of ingredient and layer cards. Cards only
// enter or leave through Add, Remove and Take.
type Player struct {
	name string
	hand []domain.Ingredient
}

// New creates a player with an empty hand.
func New(name string) *Player {
	return &Player{name: strings.TrimSpace(name)}
}

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// Is reports whether the player answers to name, ignoring case.
func (p *Player) Is(name string) bool { return domain.Fold(p.name) == domain.Fold(name) }

// Hand returns a copy of the hand in the order cards were received.
func (p *Player) Hand() []domain.Ingredient {
	return append([]domain.Ingredient(nil), p.hand...)
}

// Size returns the number of cards held.
func (p *Player) Size() int { return len(p.hand) }

// Count returns how many cards named name are held.
func (p *Player) Count(name string) int {
	key := domain.Fold(name)
	n := 0
	for _, c := range p.hand {
		if c.Key() == key {
			n++
		}
	}
	return n
}

// Has reports whether at least one card named name is held.
func (p *Player) Has(name string) bool { return p.Count(name) > 0 }

// Add appends cards to the back of the hand.
func (p *Player) Add(cards ...domain.Ingredient) {
	p.hand = append(p.hand, cards...)
}

// Restore replaces the hand with a copy of hand, order included. It undoes a
// Take whose follow-up failed.
func (p *Player) Restore(hand []domain.Ingredient) {
	p.hand = append([]domain.Ingredient(nil), hand...)
}

// Remove takes the first card named name out of the hand.
func (p *Player) Remove(name string) (domain.Ingredient, error) {
	key := domain.Fold(name)
	for i, c := range p.hand {
		if c.Key() == key {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return c, nil
		}
	}
	return domain.Ingredient{}, fmt.Errorf("%s holds no %q: %w", p.name, name, domain.ErrNotFound)
}

// Take removes the exact multiset cards from the hand, earliest copies first.
// Either every card is removed or the hand is left untouched and a
// *domain.MissingIngredientsError is returned.
func (p *Player) Take(cards []domain.Ingredient) ([]domain.Ingredient, error) {
	if missing := domain.Deficit(cards, p.hand); len(missing) > 0 {
		return nil, &domain.MissingIngredientsError{Action: p.name, Missing: missing}
	}

	want := domain.Counts(cards)
	kept := make([]domain.Ingredient, 0, len(p.hand)-len(cards))
	taken := make([]domain.Ingredient, 0, len(cards))
	for _, c := range p.hand {
		if k := c.Key(); want[k] > 0 {
			want[k]--
			taken = append(taken, c)
			continue
		}
		kept = append(kept, c)
	}
	p.hand = kept
	return taken, nil
}
