package domain

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a customer order.
// Transitions only move forward: Waiting -> Impatient -> terminal.
type OrderStatus int

const (
	StatusWaiting OrderStatus = iota
	StatusImpatient
	StatusFulfilled
	StatusGarnished
	StatusGivenUp
)

// String returns a human-readable order status.
func (s OrderStatus) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusImpatient:
		return "impatient"
	case StatusFulfilled:
		return "fulfilled"
	case StatusGarnished:
		return "garnished"
	case StatusGivenUp:
		return "given up"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status can no longer change.
func (s OrderStatus) Terminal() bool {
	return s == StatusFulfilled || s == StatusGarnished || s == StatusGivenUp
}

func (s OrderStatus) allows(to OrderStatus) bool {
	switch s {
	case StatusWaiting:
		return to != StatusWaiting
	case StatusImpatient:
		return to.Terminal()
	default:
		return false
	}
}

// OrderCard is a customer-order definition record as read from a card source.
// The engine instantiates a fresh CustomerOrder from it for every session.
type OrderCard struct {
	Level   int
	Name    string
	Recipe  []Ingredient
	Garnish []Ingredient
}

// CustomerOrder is a live order in a session. Recipe and garnish never change
// after construction.
type CustomerOrder struct {
	name     string
	level    int
	recipe   []Ingredient
	garnish  []Ingredient
	status   OrderStatus
	consumed []Ingredient
}

// NewCustomerOrder instantiates an order from its definition.
func NewCustomerOrder(card OrderCard) *CustomerOrder {
	return &CustomerOrder{
		name:    strings.TrimSpace(card.Name),
		level:   card.Level,
		recipe:  append([]Ingredient(nil), card.Recipe...),
		garnish: append([]Ingredient(nil), card.Garnish...),
		status:  StatusWaiting,
	}
}

func (o *CustomerOrder) Name() string          { return o.name }
func (o *CustomerOrder) Level() int            { return o.level }
func (o *CustomerOrder) Status() OrderStatus   { return o.status }
func (o *CustomerOrder) Recipe() []Ingredient  { return append([]Ingredient(nil), o.recipe...) }
func (o *CustomerOrder) Garnish() []Ingredient { return append([]Ingredient(nil), o.garnish...) }

// Consumed returns the cards spent to serve the order. Empty until settled.
func (o *CustomerOrder) Consumed() []Ingredient {
	return append([]Ingredient(nil), o.consumed...)
}

// Is reports whether the order answers to name, ignoring case.
func (o *CustomerOrder) Is(name string) bool { return Fold(o.name) == Fold(name) }

// CanFulfill reports whether hand holds every recipe card, respecting multiplicity.
func (o *CustomerOrder) CanFulfill(hand []Ingredient) bool {
	return Contains(hand, o.recipe)
}

// CanGarnish reports whether hand holds every garnish card. An order without
// a garnish cannot be garnished. The recipe is not considered.
func (o *CustomerOrder) CanGarnish(hand []Ingredient) bool {
	return len(o.garnish) > 0 && Contains(hand, o.garnish)
}

// MissingIngredients returns the recipe cards hand lacks.
func (o *CustomerOrder) MissingIngredients(hand []Ingredient) []Ingredient {
	return Deficit(o.recipe, hand)
}

// Fulfilment is the outcome of planning an order against a hand.
type Fulfilment struct {
	Consumed   []Ingredient
	Garnished  bool
	UsedHelper bool
	Covered    Ingredient // recipe card the helper stood in for
}

// Plan works out which cards serving the order would consume from hand.
// When allowHelper is set, a single missing recipe card may be covered by a
// Helpful Duck held in the hand. Garnish cards can never be covered.
// Plan does not change the order.
func (o *CustomerOrder) Plan(hand []Ingredient, wantGarnish, allowHelper bool) (Fulfilment, error) {
	if o.status.Terminal() {
		return Fulfilment{}, fmt.Errorf("%s is %s: %w", o.name, o.status, ErrOrderNotFulfillable)
	}

	var f Fulfilment
	missing := Deficit(o.recipe, hand)
	switch {
	case len(missing) == 0:
		f.Consumed = o.Recipe()
	case len(missing) == 1 && allowHelper:
		f.Consumed = substitute(o.recipe, hand, HelpfulDuck)
		if !Contains(hand, f.Consumed) {
			return Fulfilment{}, o.unfulfillable(missing)
		}
		f.UsedHelper = true
		f.Covered = missing[0]
	default:
		return Fulfilment{}, o.unfulfillable(missing)
	}

	if wantGarnish {
		if len(o.garnish) == 0 {
			return Fulfilment{}, fmt.Errorf("%s has no garnish: %w", o.name, ErrOrderNotFulfillable)
		}
		need := append(append([]Ingredient(nil), f.Consumed...), o.garnish...)
		if gaps := Deficit(need, hand); len(gaps) > 0 {
			return Fulfilment{}, o.unfulfillable(gaps)
		}
		f.Consumed = need
		f.Garnished = true
	}
	return f, nil
}

func (o *CustomerOrder) unfulfillable(missing []Ingredient) error {
	return fmt.Errorf("%w: %w", ErrOrderNotFulfillable,
		&MissingIngredientsError{Action: "serve " + o.name, Missing: missing})
}

// substitute returns recipe with its first uncovered card replaced by helper.
func substitute(recipe, hand []Ingredient, helper Ingredient) []Ingredient {
	avail := Counts(hand)
	out := make([]Ingredient, 0, len(recipe))
	replaced := false
	for _, c := range recipe {
		k := c.Key()
		if avail[k] > 0 {
			avail[k]--
			out = append(out, c)
			continue
		}
		if !replaced {
			out = append(out, helper)
			replaced = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// Fulfill serves the order from hand without helper substitution. It returns
// the exact cards to remove from the hand and marks the order Fulfilled, or
// Garnished when the garnish was applied. If the hand falls short it returns
// nil and leaves the status unchanged. The hand itself is not touched.
func (o *CustomerOrder) Fulfill(hand []Ingredient, wantGarnish bool) []Ingredient {
	f, err := o.Plan(hand, wantGarnish, false)
	if err != nil {
		return nil
	}
	if err := o.Settle(f); err != nil {
		return nil
	}
	return f.Consumed
}

// FulfillWithHelper is Fulfill with the Helpful Duck allowed to cover a
// single missing recipe card. The duck is part of the returned multiset.
func (o *CustomerOrder) FulfillWithHelper(hand []Ingredient, wantGarnish bool) []Ingredient {
	f, err := o.Plan(hand, wantGarnish, true)
	if err != nil {
		return nil
	}
	if err := o.Settle(f); err != nil {
		return nil
	}
	return f.Consumed
}

// Settle records a planned fulfilment and moves the order to its terminal status.
func (o *CustomerOrder) Settle(f Fulfilment) error {
	to := StatusFulfilled
	if f.Garnished {
		to = StatusGarnished
	}
	if err := o.transition(to); err != nil {
		return err
	}
	o.consumed = append([]Ingredient(nil), f.Consumed...)
	return nil
}

// MarkImpatient moves a waiting order to impatient.
func (o *CustomerOrder) MarkImpatient() error { return o.transition(StatusImpatient) }

// GiveUp moves a pending order to given up.
func (o *CustomerOrder) GiveUp() error { return o.transition(StatusGivenUp) }

func (o *CustomerOrder) transition(to OrderStatus) error {
	if !o.status.allows(to) {
		return fmt.Errorf("%s: %s -> %s: %w", o.name, o.status, to, ErrStatusRegression)
	}
	o.status = to
	return nil
}

// RecipeDescription renders the recipe as a short line.
func (o *CustomerOrder) RecipeDescription() string {
	return strings.Join(Names(o.recipe), ", ")
}

// GarnishDescription renders the garnish, or "-" when there is none.
func (o *CustomerOrder) GarnishDescription() string {
	if len(o.garnish) == 0 {
		return "-"
	}
	return strings.Join(Names(o.garnish), ", ")
}

func (o *CustomerOrder) String() string {
	return fmt.Sprintf("%s (L%d, %s)", o.name, o.level, o.status)
}
