// Package domain defines the core card, order and action types of the bakery
// game together with the ports the engine talks through.
// All other packages depend on domain; domain depends on nothing internal.
package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// HelpfulDuckName is the name of the wildcard helper card.
const HelpfulDuckName = "Helpful Duck"

// HelpfulDuck is the helper card injected once per session. It can stand in
// for exactly one missing recipe ingredient when fulfilling an order.
var HelpfulDuck = Ingredient{Name: HelpfulDuckName}

// Fold returns the comparison key for a card name. Two names that fold to the
// same key identify the same kind of card.
func Fold(name string) string {
	// A Caser carries state, so a fresh one is used per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// Ingredient is the smallest tradeable card. Identity is the case-folded name.
type Ingredient struct {
	Name string
}

// NewIngredient returns an ingredient with surrounding whitespace trimmed.
func NewIngredient(name string) Ingredient {
	return Ingredient{Name: strings.TrimSpace(name)}
}

// Key returns the folded identity of the ingredient.
func (i Ingredient) Key() string { return Fold(i.Name) }

// Is reports whether the ingredient answers to name, ignoring case.
func (i Ingredient) Is(name string) bool { return i.Key() == Fold(name) }

// Equal reports whether two ingredients are the same kind of card.
func (i Ingredient) Equal(o Ingredient) bool { return i.Key() == o.Key() }

// IsHelper reports whether the card is the Helpful Duck.
func (i Ingredient) IsHelper() bool { return i.Is(HelpfulDuckName) }

func (i Ingredient) String() string { return i.Name }

// Compare orders ingredients by their folded names.
func Compare(a, b Ingredient) int { return strings.Compare(a.Key(), b.Key()) }

// Layer is an ingredient produced by baking. It owns an ordered recipe.
type Layer struct {
	Ingredient
	recipe []Ingredient
}

// NewLayer builds a layer definition. The recipe is copied.
func NewLayer(name string, recipe []Ingredient) Layer {
	return Layer{
		Ingredient: NewIngredient(name),
		recipe:     append([]Ingredient(nil), recipe...),
	}
}

// Recipe returns a copy of the layer's recipe.
func (l Layer) Recipe() []Ingredient {
	return append([]Ingredient(nil), l.recipe...)
}

// RecipeCounts returns the required count per folded ingredient name.
func (l Layer) RecipeCounts() map[string]int { return Counts(l.recipe) }

// Card returns the ingredient-compatible card a bake puts into a hand.
func (l Layer) Card() Ingredient { return l.Ingredient }

// Description renders the recipe as "Name: a, b, c".
func (l Layer) Description() string {
	return l.Name + ": " + strings.Join(Names(l.recipe), ", ")
}

// Counts tallies cards by folded name.
func Counts(cards []Ingredient) map[string]int {
	out := make(map[string]int, len(cards))
	for _, c := range cards {
		out[c.Key()]++
	}
	return out
}

// Deficit returns the cards of need that have no counterpart in have,
// respecting multiplicity. The result keeps need's order.
func Deficit(need, have []Ingredient) []Ingredient {
	avail := Counts(have)
	var missing []Ingredient
	for _, c := range need {
		k := c.Key()
		if avail[k] > 0 {
			avail[k]--
			continue
		}
		missing = append(missing, c)
	}
	return missing
}

// Contains reports whether have covers every card of need.
func Contains(have, need []Ingredient) bool {
	return len(Deficit(need, have)) == 0
}

// Names returns the display names of cards in order.
func Names(cards []Ingredient) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

// Sorted returns a copy of cards ordered by folded name.
func Sorted(cards []Ingredient) []Ingredient {
	out := append([]Ingredient(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}
