package domain

import "fmt"

// ActionKind classifies a turn action.
type ActionKind int

const (
	ActionDrawIngredient ActionKind = iota
	ActionPassIngredient
	ActionBakeLayer
	ActionFulfilOrder
	ActionRefreshPantry
	ActionEndTurn
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionDrawIngredient:
		return "draw_ingredient"
	case ActionPassIngredient:
		return "pass_ingredient"
	case ActionBakeLayer:
		return "bake_layer"
	case ActionFulfilOrder:
		return "fulfil_order"
	case ActionRefreshPantry:
		return "refresh_pantry"
	case ActionEndTurn:
		return "end_turn"
	default:
		return "unknown"
	}
}

// ActionRequest is what the current player asks the engine to do. The set of
// implementations is closed: only the types in this file satisfy it.
type ActionRequest interface {
	Kind() ActionKind
	fmt.Stringer
	action()
}

// DrawIngredient takes a card from the pantry row. An empty Name takes the
// front card of the row.
type DrawIngredient struct {
	Name string
}

// PassIngredient hands one card to another player.
type PassIngredient struct {
	Ingredient string
	To         string
}

// BakeLayer turns recipe cards from the hand into one layer card.
type BakeLayer struct {
	Layer string
}

// FulfilOrder serves a customer order from the hand.
type FulfilOrder struct {
	Order   string
	Garnish bool
}

// RefreshPantry discards the pantry row and deals a new one.
type RefreshPantry struct{}

// EndTurn gives up the rest of the turn. It costs no action.
type EndTurn struct{}

func (DrawIngredient) Kind() ActionKind { return ActionDrawIngredient }
func (PassIngredient) Kind() ActionKind { return ActionPassIngredient }
func (BakeLayer) Kind() ActionKind      { return ActionBakeLayer }
func (FulfilOrder) Kind() ActionKind    { return ActionFulfilOrder }
func (RefreshPantry) Kind() ActionKind  { return ActionRefreshPantry }
func (EndTurn) Kind() ActionKind        { return ActionEndTurn }

func (DrawIngredient) action() {}
func (PassIngredient) action() {}
func (BakeLayer) action()      {}
func (FulfilOrder) action()    {}
func (RefreshPantry) action()  {}
func (EndTurn) action()        {}

func (a DrawIngredient) String() string {
	if a.Name == "" {
		return "draw"
	}
	return "draw " + a.Name
}

func (a PassIngredient) String() string { return fmt.Sprintf("pass %s to %s", a.Ingredient, a.To) }
func (a BakeLayer) String() string      { return "bake " + a.Layer }

func (a FulfilOrder) String() string {
	if a.Garnish {
		return "serve " + a.Order + " with garnish"
	}
	return "serve " + a.Order
}

func (RefreshPantry) String() string { return "refresh" }
func (EndTurn) String() string       { return "end turn" }
