package engine

import (
	"fmt"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/pantry"
	"github.com/hammamikhairi/magicbakery/internal/player"
)

// Census counts every card in the session by where it is.
type Census struct {
	pantry.Census
	Hands    int
	Consumed int

	// Expected is what the other fields must add up to: the ingredient deck,
	// the Helpful Duck and every layer baked so far.
	Expected int
}

// Total returns the number of cards counted.
func (c Census) Total() int { return c.Census.Total() + c.Hands + c.Consumed }

// Census counts the cards in every zone.
func (e *Engine) Census() Census {
	if e.pool == nil {
		return Census{}
	}
	c := Census{Census: e.pool.Census(), Expected: e.initial + e.baked}
	for _, p := range e.players {
		c.Hands += p.Size()
	}
	for _, o := range e.queue.Resolved() {
		c.Consumed += len(o.Consumed())
	}
	return c
}

// Layers returns the layer definitions.
func (e *Engine) Layers() []domain.Layer {
	return append([]domain.Layer(nil), e.layers...)
}

func (e *Engine) hand(name string) ([]domain.Ingredient, error) {
	p, ok := e.findPlayer(name)
	if !ok {
		return nil, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
	}
	return p.Hand(), nil
}

// BakeableLayers returns the layers the player could bake right now.
func (e *Engine) BakeableLayers(name string) ([]domain.Layer, error) {
	hand, err := e.hand(name)
	if err != nil {
		return nil, err
	}
	return bakeable(e.layers, hand), nil
}

func bakeable(layers []domain.Layer, hand []domain.Ingredient) []domain.Layer {
	var out []domain.Layer
	for _, l := range layers {
		if domain.Contains(hand, l.Recipe()) {
			out = append(out, l)
		}
	}
	return out
}

// FulfillableOrders returns the pending orders the player could serve,
// counting a held Helpful Duck.
func (e *Engine) FulfillableOrders(name string) ([]domain.OrderView, error) {
	hand, err := e.hand(name)
	if err != nil {
		return nil, err
	}
	return e.fulfillable(hand), nil
}

func (e *Engine) fulfillable(hand []domain.Ingredient) []domain.OrderView {
	var out []domain.OrderView
	for _, o := range e.queue.Pending() {
		if _, err := o.Plan(hand, false, true); err == nil {
			out = append(out, domain.ViewOrder(o))
		}
	}
	return out
}

// GarnishableOrders returns the pending orders whose garnish the player
// holds in full. The recipe is not considered.
func (e *Engine) GarnishableOrders(name string) ([]domain.OrderView, error) {
	hand, err := e.hand(name)
	if err != nil {
		return nil, err
	}
	return e.garnishable(hand), nil
}

func (e *Engine) garnishable(hand []domain.Ingredient) []domain.OrderView {
	var out []domain.OrderView
	for _, o := range e.queue.Pending() {
		if o.CanGarnish(hand) {
			out = append(out, domain.ViewOrder(o))
		}
	}
	return out
}

// MissingIngredients returns the recipe cards the player lacks for a
// pending order.
func (e *Engine) MissingIngredients(order, name string) ([]domain.Ingredient, error) {
	hand, err := e.hand(name)
	if err != nil {
		return nil, err
	}
	o, ok := e.queue.Find(order)
	if !ok {
		return nil, fmt.Errorf("order %q: %w", order, domain.ErrOrderNotFound)
	}
	return o.MissingIngredients(hand), nil
}

// AtRiskOrder returns the order that will be evicted at the end of this
// round, if the active window is full.
func (e *Engine) AtRiskOrder() (domain.OrderView, bool) {
	if e.queue == nil {
		return domain.OrderView{}, false
	}
	o := e.queue.AtRisk()
	if o == nil {
		return domain.OrderView{}, false
	}
	return domain.ViewOrder(o), true
}

// ServiceRecord returns every resolved order, served or given up, in the
// order it was resolved.
func (e *Engine) ServiceRecord() []domain.OrderView {
	if e.queue == nil {
		return nil
	}
	return views(e.queue.Resolved())
}

func views(orders []*domain.CustomerOrder) []domain.OrderView {
	out := make([]domain.OrderView, len(orders))
	for i, o := range orders {
		out[i] = domain.ViewOrder(o)
	}
	return out
}

// Snapshot copies the visible game state. Before StartGame only the phase
// and the layer list are set.
func (e *Engine) Snapshot() domain.Snapshot {
	s := domain.Snapshot{
		Round:            e.round,
		Phase:            e.phase,
		ActionsPermitted: e.ActionsPermitted(),
		ActionsRemaining: e.ActionsRemaining(),
	}
	for _, l := range e.layers {
		s.Layers = append(s.Layers, l.Description())
	}
	if e.pool == nil {
		return s
	}

	s.PantryRow = domain.Names(e.pool.Row())
	s.DeckSize = e.pool.DeckSize()
	s.DiscardSize = e.pool.DiscardSize()

	s.Active = views(e.queue.Active())
	s.Waiting = views(e.queue.Waiting())
	s.Resolved = views(e.queue.Resolved())
	s.CustomerDeck = e.queue.DeckSize()
	if o, ok := e.AtRiskOrder(); ok {
		s.AtRisk = o.Name
	}

	for _, p := range e.players {
		s.Players = append(s.Players, domain.PlayerView{Name: p.Name(), Hand: domain.Names(p.Hand())})
	}

	if e.phase == domain.PhasePlayerTurn {
		p := e.current()
		s.CurrentPlayer = p.Name()
		s.Bakeable, s.Fulfillable, s.Garnishable = e.options(p)
	}
	return s
}

func (e *Engine) options(p *player.Player) (bake, serve, garnish []string) {
	hand := p.Hand()
	for _, l := range bakeable(e.layers, hand) {
		bake = append(bake, l.Name)
	}
	for _, o := range e.fulfillable(hand) {
		serve = append(serve, o.Name)
	}
	for _, o := range e.garnishable(hand) {
		garnish = append(garnish, o.Name)
	}
	return bake, serve, garnish
}
