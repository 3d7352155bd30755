package engine

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/magicbakery/internal/customers"
	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/pantry"
	"github.com/hammamikhairi/magicbakery/internal/player"
)

// Cards only change hands through these zones. Each zone is backed by the
// single owner of its cards.
type (
	source interface {
		take(name string) (domain.Ingredient, error)
	}
	sink interface {
		put(cards ...domain.Ingredient)
	}
)

type handZone struct{ p *player.Player }

func (z handZone) take(name string) (domain.Ingredient, error) { return z.p.Remove(name) }
func (z handZone) put(cards ...domain.Ingredient)             { z.p.Add(cards...) }

type rowZone struct{ pool *pantry.Pool }

func (z rowZone) take(name string) (domain.Ingredient, error) { return z.pool.Draw(name) }

type deckZone struct{ pool *pantry.Pool }

func (z deckZone) take(string) (domain.Ingredient, error) { return z.pool.DrawFromDeck() }

type discardZone struct{ pool *pantry.Pool }

func (z discardZone) put(cards ...domain.Ingredient) { z.pool.Discard(cards...) }

// moveCard moves one card called name from one zone to another. On failure
// neither zone changes.
func moveCard(from source, to sink, name string) (domain.Ingredient, error) {
	c, err := from.take(name)
	if err != nil {
		return domain.Ingredient{}, err
	}
	to.put(c)
	return c, nil
}

// moveCards moves an exact multiset out of a hand. Either all cards move or
// none do.
func moveCards(from *player.Player, to sink, cards []domain.Ingredient) ([]domain.Ingredient, error) {
	taken, err := from.Take(cards)
	if err != nil {
		return nil, err
	}
	if to != nil {
		to.put(taken...)
	}
	return taken, nil
}

func (e *Engine) drawIngredient(p *player.Player, a domain.DrawIngredient, res *Result) error {
	c, err := moveCard(rowZone{e.pool}, handZone{p}, a.Name)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	res.Card = c
	e.log.Debug("%s drew %s", p.Name(), c)
	return nil
}

func (e *Engine) passIngredient(p *player.Player, a domain.PassIngredient, res *Result) error {
	to, ok := e.findPlayer(a.To)
	if !ok {
		return fmt.Errorf("pass to %q: no such player: %w", a.To, domain.ErrNotFound)
	}
	if to == p {
		return fmt.Errorf("%s cannot pass to themselves: %w", p.Name(), domain.ErrInvalidTarget)
	}
	c, err := moveCard(handZone{p}, handZone{to}, a.Ingredient)
	if err != nil {
		return fmt.Errorf("pass: %w", err)
	}
	res.Card = c
	res.To = to.Name()
	e.log.Debug("%s passed %s to %s", p.Name(), c, to.Name())
	return nil
}

func (e *Engine) layer(name string) (domain.Layer, bool) {
	for _, l := range e.layers {
		if l.Is(name) {
			return l, true
		}
	}
	return domain.Layer{}, false
}

func (e *Engine) bakeLayer(p *player.Player, a domain.BakeLayer, res *Result) error {
	l, ok := e.layer(a.Layer)
	if !ok {
		return fmt.Errorf("bake %q: %w", a.Layer, domain.ErrUnknownLayer)
	}
	if missing := domain.Deficit(l.Recipe(), p.Hand()); len(missing) > 0 {
		return &domain.MissingIngredientsError{Action: "bake " + l.Name, Missing: missing}
	}

	consumed, err := moveCards(p, discardZone{e.pool}, l.Recipe())
	if err != nil {
		return fmt.Errorf("bake %s: %w", l.Name, err)
	}
	p.Add(l.Card())
	e.baked++

	res.Card = l.Card()
	res.Consumed = consumed
	e.log.Debug("%s baked %s from %v", p.Name(), l.Name, domain.Names(consumed))
	return nil
}

func (e *Engine) knownOrder(name string) bool {
	for _, o := range e.orders {
		if domain.Fold(o.Name) == domain.Fold(name) {
			return true
		}
	}
	return false
}

func (e *Engine) fulfilOrder(ctx context.Context, p *player.Player, a domain.FulfilOrder, res *Result) error {
	o, ok := e.queue.Find(a.Order)
	if !ok {
		if e.knownOrder(a.Order) {
			return fmt.Errorf("serve %q: %w", a.Order, domain.ErrOrderNotFound)
		}
		return fmt.Errorf("serve %q: %w", a.Order, domain.ErrUnknownOrder)
	}

	plan, err := o.Plan(p.Hand(), a.Garnish, true)
	if err != nil {
		return err
	}
	before := p.Hand()
	consumed, err := moveCards(p, nil, plan.Consumed)
	if err != nil {
		return fmt.Errorf("serve %s: %w", o.Name(), err)
	}
	if err := o.Settle(plan); err != nil {
		p.Restore(before)
		return err
	}
	e.queue.Fulfill(o)

	res.Order = o.Name()
	res.Consumed = consumed
	res.Garnished = plan.Garnished
	res.UsedHelper = plan.UsedHelper

	if plan.Garnished {
		for i := 0; i < e.garnishBonus; i++ {
			c, err := moveCard(deckZone{e.pool}, handZone{p}, "")
			if err != nil {
				e.log.Debug("garnish bonus cut short: %v", err)
				break
			}
			res.Bonus = append(res.Bonus, c)
		}
	}

	msg := fmt.Sprintf("%s served %s", p.Name(), o.Name())
	if plan.Garnished {
		msg += fmt.Sprintf(" with garnish and drew %d bonus cards", len(res.Bonus))
	}
	if plan.UsedHelper {
		msg += fmt.Sprintf(" (the Helpful Duck stood in for %s)", plan.Covered)
	}
	e.log.Info("%s", msg)
	e.notify(ctx, msg)
	return nil
}

func (e *Engine) refreshPantry(p *player.Player) {
	e.pool.Refresh()
	e.log.Debug("%s refreshed the pantry", p.Name())
}

func (e *Engine) announce(ctx context.Context, out customers.Outcome) {
	for _, o := range out.GivenUp {
		e.notifyUrgent(ctx, fmt.Sprintf("%s gave up waiting", o.Name()))
	}
	for _, o := range out.Impatient {
		e.notifyUrgent(ctx, fmt.Sprintf("%s is getting impatient", o.Name()))
	}
	if out.Evicted != nil {
		e.notify(ctx, fmt.Sprintf("%s moved to the waiting row", out.Evicted.Name()))
	}
	if out.Admitted != nil {
		e.notify(ctx, fmt.Sprintf("%s arrives wanting %s", out.Admitted.Name(), out.Admitted.RecipeDescription()))
	}
}
