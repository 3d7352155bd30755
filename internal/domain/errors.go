package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrEmptyPantry         = errors.New("pantry is empty")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrMissingIngredients  = errors.New("missing ingredients")
	ErrUnknownLayer        = errors.New("unknown layer")
	ErrUnknownOrder        = errors.New("unknown order")
	ErrOrderNotFulfillable = errors.New("order cannot be fulfilled")
	ErrOrderNotFound       = errors.New("order is not waiting to be served")
	ErrTooManyActions      = errors.New("too many actions")
	ErrGameOver            = errors.New("game is over")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameStarted         = errors.New("game already started")
	ErrInvalidPlayers      = errors.New("invalid players")
	ErrNotEnoughCards      = errors.New("not enough cards")
	ErrNoDefinitions       = errors.New("card definitions are empty")
	ErrStatusRegression    = errors.New("order status cannot move backwards")
	ErrQuit                = errors.New("session closed by player")
)

// MissingIngredientsError reports which cards a hand lacked.
// It matches ErrMissingIngredients with errors.Is.
type MissingIngredientsError struct {
	Action  string
	Missing []Ingredient
}

func (e *MissingIngredientsError) Error() string {
	if len(e.Missing) == 0 {
		return e.Action + ": missing ingredients"
	}
	msg := fmt.Sprintf("%s: missing %s", e.Action, e.Missing[0].Name)
	if n := len(e.Missing) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more: %s)", n, strings.Join(Names(e.Missing[1:]), ", "))
	}
	return msg
}

// Is makes the error match ErrMissingIngredients.
func (e *MissingIngredientsError) Is(target error) bool {
	return target == ErrMissingIngredients
}

// First returns the first deficient ingredient.
func (e *MissingIngredientsError) First() Ingredient {
	if len(e.Missing) == 0 {
		return Ingredient{}
	}
	return e.Missing[0]
}

// TooManyActionsError is returned when a player acts past the turn budget.
type TooManyActionsError struct {
	Permitted int
}

func (e *TooManyActionsError) Error() string {
	return fmt.Sprintf("too many actions: %d permitted per turn", e.Permitted)
}

// Is makes the error match ErrTooManyActions.
func (e *TooManyActionsError) Is(target error) bool {
	return target == ErrTooManyActions
}
