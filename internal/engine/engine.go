// Package engine implements the bakery game state machine.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/customers"
	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
	"github.com/hammamikhairi/magicbakery/internal/pantry"
	"github.com/hammamikhairi/magicbakery/internal/player"
)

const (
	// MinPlayers and MaxPlayers bound the size of a session.
	MinPlayers = 2
	MaxPlayers = 5

	// HandSize is the number of cards each player is dealt.
	HandSize = 3

	defaultMaxRounds    = 20
	defaultGarnishBonus = 2
)

// Option configures the engine.
type Option func(*Engine)

// WithMaxRounds sets the round cap. The game ends when the round counter
// passes it.
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRounds = n
		}
	}
}

// WithGarnishBonus sets how many cards a garnished order pays out.
func WithGarnishBonus(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.garnishBonus = n
		}
	}
}

// WithNotifier sets where game events are announced.
func WithNotifier(n domain.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithJournal records every applied action.
func WithJournal(j domain.Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// Engine runs a single bakery session. It is the only owner of the card
// pool, the customer queue and the players, and is not safe for concurrent
// use: actions are applied strictly one after another.
type Engine struct {
	id   string
	seed int64
	rng  *rand.Rand

	ingredients []domain.Ingredient
	layers      []domain.Layer
	orders      []domain.OrderCard

	pool    *pantry.Pool
	queue   *customers.Queue
	players []*player.Player

	phase   domain.Phase
	round   int
	cursor  int
	taken   int // actions used by the current player this turn
	baked   int // layer cards minted so far
	initial int // cards in play after setup, before any bake
	seq     int

	maxRounds    int
	garnishBonus int
	notifier     domain.Notifier
	journal      domain.Journal
	log          *logger.Logger
}

// New creates an engine from a seed and the card definitions. It fails if
// any of the three definition lists is empty.
func New(seed int64, cards domain.CardSet, log *logger.Logger, opts ...Option) (*Engine, error) {
	switch {
	case len(cards.Ingredients) == 0:
		return nil, fmt.Errorf("ingredients: %w", domain.ErrNoDefinitions)
	case len(cards.Layers) == 0:
		return nil, fmt.Errorf("layers: %w", domain.ErrNoDefinitions)
	case len(cards.Customers) == 0:
		return nil, fmt.Errorf("customers: %w", domain.ErrNoDefinitions)
	}

	e := &Engine{
		id:           generateID(),
		seed:         seed,
		ingredients:  append([]domain.Ingredient(nil), cards.Ingredients...),
		layers:       append([]domain.Layer(nil), cards.Layers...),
		orders:       append([]domain.OrderCard(nil), cards.Customers...),
		phase:        domain.PhaseSetup,
		maxRounds:    defaultMaxRounds,
		garnishBonus: defaultGarnishBonus,
		notifier:     nopNotifier{},
		log:          log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Seed returns the seed the engine was built with.
func (e *Engine) Seed() int64 { return e.seed }

// StartGame seats the players and deals the opening state: the customer deck
// is built, the Helpful Duck joins the ingredient deck, the deck is shuffled,
// the pantry row is filled, every player gets three cards and the first
// customer arrives.
func (e *Engine) StartGame(ctx context.Context, names []string) error {
	if e.phase != domain.PhaseSetup {
		return domain.ErrGameStarted
	}
	players, err := seat(names)
	if err != nil {
		return err
	}

	need := pantry.RowSize + HandSize*len(players)
	if have := len(e.ingredients) + 1; have < need {
		return fmt.Errorf("dealing %d players needs %d cards, have %d: %w",
			len(players), need, have, domain.ErrNotEnoughCards)
	}

	// A fresh stream per start keeps a failed start from shifting the game.
	e.rng = rand.New(rand.NewSource(e.seed))
	deck, err := customers.BuildDeck(e.orders, len(players), e.rng)
	if err != nil {
		return fmt.Errorf("building customer deck: %w", err)
	}

	cards := append(append([]domain.Ingredient(nil), e.ingredients...), domain.HelpfulDuck)
	pool := pantry.New(cards, e.rng, e.log.Named("pantry"))
	pool.Shuffle()
	pool.FillRow()
	for _, p := range players {
		hand, err := pool.Deal(HandSize)
		if err != nil {
			return fmt.Errorf("dealing to %s: %w", p.Name(), err)
		}
		p.Add(hand...)
	}

	e.pool = pool
	e.queue = customers.New(deck, e.log.Named("customers"))
	e.players = players
	e.initial = len(cards)
	e.round = 1
	e.cursor = 0
	e.taken = 0
	e.phase = domain.PhaseRoundStart

	e.log.Info("session %s started: seed=%d players=%s customers=%d",
		e.id, e.seed, strings.Join(e.playerNames(), ","), len(deck))

	if o := e.queue.AdmitNext(); o != nil {
		e.notify(ctx, fmt.Sprintf("%s arrives wanting %s", o.Name(), o.RecipeDescription()))
	}
	e.phase = domain.PhasePlayerTurn
	e.notify(ctx, fmt.Sprintf("Round 1: %s to play", e.players[0].Name()))
	return nil
}

func seat(names []string) ([]*player.Player, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%d players, want %d to %d: %w", len(names), MinPlayers, MaxPlayers, domain.ErrInvalidPlayers)
	}
	seen := make(map[string]bool, len(names))
	players := make([]*player.Player, 0, len(names))
	for _, n := range names {
		p := player.New(n)
		if p.Name() == "" {
			return nil, fmt.Errorf("empty player name: %w", domain.ErrInvalidPlayers)
		}
		key := domain.Fold(p.Name())
		if seen[key] {
			return nil, fmt.Errorf("duplicate player %q: %w", p.Name(), domain.ErrInvalidPlayers)
		}
		seen[key] = true
		players = append(players, p)
	}
	return players, nil
}

// Phase returns the current state machine phase.
func (e *Engine) Phase() domain.Phase { return e.phase }

// Round returns the round counter, starting at 1.
func (e *Engine) Round() int { return e.round }

// MaxRounds returns the round cap.
func (e *Engine) MaxRounds() int { return e.maxRounds }

// Over reports whether the game has ended.
func (e *Engine) Over() bool { return e.phase == domain.PhaseGameOver }

// Players returns the player names in seating order.
func (e *Engine) Players() []string { return e.playerNames() }

func (e *Engine) playerNames() []string {
	out := make([]string, len(e.players))
	for i, p := range e.players {
		out[i] = p.Name()
	}
	return out
}

// CurrentPlayer returns the name of the player whose turn it is.
func (e *Engine) CurrentPlayer() string {
	if e.current() == nil {
		return ""
	}
	return e.current().Name()
}

func (e *Engine) current() *player.Player {
	if e.cursor < 0 || e.cursor >= len(e.players) {
		return nil
	}
	return e.players[e.cursor]
}

func (e *Engine) findPlayer(name string) (*player.Player, bool) {
	for _, p := range e.players {
		if p.Is(name) {
			return p, true
		}
	}
	return nil, false
}

// ActionsPermitted returns the per-turn action budget: 3 for up to three
// players, 2 otherwise.
func (e *Engine) ActionsPermitted() int {
	if len(e.players) <= 3 {
		return 3
	}
	return 2
}

// ActionsRemaining returns what is left of the current player's budget.
func (e *Engine) ActionsRemaining() int {
	if e.phase != domain.PhasePlayerTurn {
		return 0
	}
	return e.ActionsPermitted() - e.taken
}

func (e *Engine) notify(ctx context.Context, msg string) {
	if err := e.notifier.Notify(ctx, msg); err != nil {
		e.log.Warn("notify failed: %v", err)
	}
}

func (e *Engine) notifyUrgent(ctx context.Context, msg string) {
	if err := e.notifier.NotifyUrgent(ctx, msg); err != nil {
		e.log.Warn("notify failed: %v", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) error       { return nil }
func (nopNotifier) NotifyUrgent(context.Context, string) error { return nil }
