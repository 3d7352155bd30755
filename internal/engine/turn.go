package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

// Result describes an applied action.
type Result struct {
	Action domain.ActionKind
	Player string

	// Card is the card drawn, passed or baked.
	Card domain.Ingredient
	To   string

	Order      string
	Consumed   []domain.Ingredient
	Garnished  bool
	UsedHelper bool
	Bonus      []domain.Ingredient

	ActionsRemaining int
	TurnEnded        bool
	RoundEnded       bool
	GameOver         bool
}

// Apply performs one action for the current player. A failed action leaves
// the game untouched and costs nothing. EndTurn is always accepted during a
// turn; every other action fails with a *domain.TooManyActionsError once the
// budget is spent. Apply never ends the turn on its own.
func (e *Engine) Apply(ctx context.Context, req domain.ActionRequest) (Result, error) {
	switch e.phase {
	case domain.PhaseSetup:
		return Result{}, domain.ErrGameNotStarted
	case domain.PhaseGameOver:
		return Result{}, domain.ErrGameOver
	}

	p := e.current()
	res := Result{Action: req.Kind(), Player: p.Name()}

	if _, ok := req.(domain.EndTurn); ok {
		e.endTurn(ctx, &res)
		e.record(ctx, p.Name(), req)
		return res, nil
	}

	if e.taken >= e.ActionsPermitted() {
		return Result{}, &domain.TooManyActionsError{Permitted: e.ActionsPermitted()}
	}

	var err error
	switch a := req.(type) {
	case domain.DrawIngredient:
		err = e.drawIngredient(p, a, &res)
	case domain.PassIngredient:
		err = e.passIngredient(p, a, &res)
	case domain.BakeLayer:
		err = e.bakeLayer(p, a, &res)
	case domain.FulfilOrder:
		err = e.fulfilOrder(ctx, p, a, &res)
	case domain.RefreshPantry:
		e.refreshPantry(p)
	default:
		panic(fmt.Sprintf("engine: unhandled action %T", req))
	}
	if err != nil {
		e.log.Debug("%s: %s failed: %v", p.Name(), req, err)
		return Result{}, err
	}

	e.taken++
	res.ActionsRemaining = e.ActionsRemaining()
	if e.queue.Exhausted() {
		e.finish(ctx, "every customer has been dealt with")
		res.GameOver = true
	}
	e.record(ctx, p.Name(), req)
	return res, nil
}

// EndTurn passes play to the next player, closing the round after the last
// one. It reports whether a new round started.
func (e *Engine) EndTurn(ctx context.Context) (bool, error) {
	res, err := e.Apply(ctx, domain.EndTurn{})
	if err != nil {
		return false, err
	}
	return res.RoundEnded && !res.GameOver, nil
}

func (e *Engine) endTurn(ctx context.Context, res *Result) {
	e.log.Debug("%s ends turn after %d/%d actions", e.current().Name(), e.taken, e.ActionsPermitted())
	res.TurnEnded = true
	e.taken = 0
	e.cursor++
	if e.cursor < len(e.players) {
		e.notify(ctx, fmt.Sprintf("%s to play", e.current().Name()))
		res.ActionsRemaining = e.ActionsRemaining()
		return
	}

	res.RoundEnded = true
	e.endRound(ctx)
	res.GameOver = e.Over()
	res.ActionsRemaining = e.ActionsRemaining()
}

// endRound runs RoundEnd and, unless the game is over, the next RoundStart.
func (e *Engine) endRound(ctx context.Context) {
	e.phase = domain.PhaseRoundEnd
	e.round++
	if e.round > e.maxRounds {
		e.finish(ctx, fmt.Sprintf("the bakery closes after %d rounds", e.maxRounds))
		return
	}

	e.phase = domain.PhaseRoundStart
	e.cursor = 0
	e.log.Info("round %d begins", e.round)
	e.announce(ctx, e.queue.AdvanceRound())

	if e.queue.Exhausted() {
		e.finish(ctx, "every customer has been dealt with")
		return
	}
	e.phase = domain.PhasePlayerTurn
	e.notify(ctx, fmt.Sprintf("Round %d: %s to play", e.round, e.current().Name()))
}

func (e *Engine) finish(ctx context.Context, reason string) {
	e.phase = domain.PhaseGameOver
	e.cursor = 0
	e.taken = 0
	e.log.Info("game over: %s", reason)
	e.notifyUrgent(ctx, "Game over: "+reason)
}

func (e *Engine) record(ctx context.Context, playerName string, req domain.ActionRequest) {
	if e.journal == nil {
		return
	}
	e.seq++
	entry := domain.JournalEntry{
		Seq:      e.seq,
		Round:    e.round,
		Player:   playerName,
		Action:   req.String(),
		Snapshot: e.Snapshot(),
	}
	if err := e.journal.Append(ctx, entry); err != nil {
		e.log.Warn("journal append failed: %v", err)
	}
}
