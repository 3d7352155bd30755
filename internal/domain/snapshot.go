package domain

import (
	"fmt"
	"strings"
)

// Phase is the turn state machine position.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRoundStart
	PhasePlayerTurn
	PhaseRoundEnd
	PhaseGameOver
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRoundStart:
		return "round_start"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// OrderView is a read-only copy of a customer order.
type OrderView struct {
	Name    string
	Level   int
	Recipe  []string
	Garnish []string
	Status  OrderStatus
}

// ViewOrder copies an order into a view.
func ViewOrder(o *CustomerOrder) OrderView {
	return OrderView{
		Name:    o.Name(),
		Level:   o.Level(),
		Recipe:  Names(o.recipe),
		Garnish: Names(o.garnish),
		Status:  o.Status(),
	}
}

// PlayerView is a read-only copy of a player's hand.
type PlayerView struct {
	Name string
	Hand []string
}

// Snapshot is everything a renderer may show about a session. It shares no
// memory with the engine.
type Snapshot struct {
	Round            int
	Phase            Phase
	CurrentPlayer    string
	ActionsPermitted int
	ActionsRemaining int

	PantryRow   []string
	DeckSize    int
	DiscardSize int

	Active       []OrderView
	Waiting      []OrderView
	Resolved     []OrderView
	CustomerDeck int
	AtRisk       string

	Players []PlayerView
	Layers  []string

	// Computed for the current player.
	Bakeable    []string
	Fulfillable []string
	Garnishable []string
}

// Hand returns the named player's hand, or nil.
func (s Snapshot) Hand(player string) []string {
	for _, p := range s.Players {
		if Fold(p.Name) == Fold(player) {
			return p.Hand
		}
	}
	return nil
}

// Digest renders the public game state as a stable string. Two sessions that
// evolved identically produce identical digests.
func (s Snapshot) Digest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "round=%d phase=%s player=%s actions=%d/%d\n",
		s.Round, s.Phase, s.CurrentPlayer, s.ActionsRemaining, s.ActionsPermitted)
	fmt.Fprintf(&b, "row=[%s] deck=%d discard=%d\n", strings.Join(s.PantryRow, ","), s.DeckSize, s.DiscardSize)
	writeOrders(&b, "active", s.Active)
	writeOrders(&b, "waiting", s.Waiting)
	writeOrders(&b, "resolved", s.Resolved)
	fmt.Fprintf(&b, "customers=%d\n", s.CustomerDeck)
	for _, p := range s.Players {
		fmt.Fprintf(&b, "hand %s=[%s]\n", p.Name, strings.Join(p.Hand, ","))
	}
	return b.String()
}

func writeOrders(b *strings.Builder, label string, orders []OrderView) {
	parts := make([]string, len(orders))
	for i, o := range orders {
		parts[i] = fmt.Sprintf("%s/%d/%s", o.Name, o.Level, o.Status)
	}
	fmt.Fprintf(b, "%s=[%s]\n", label, strings.Join(parts, ","))
}
