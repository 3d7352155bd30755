package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

// RenderSnapshot draws the table: pantry row, customers, hands and the
// current player's options.
func RenderSnapshot(s domain.Snapshot) string {
	var b strings.Builder

	heading := func(text string) {
		b.WriteString(headingStyle.Render(text))
		b.WriteByte('\n')
	}
	line := func(format string, a ...interface{}) {
		b.WriteString(primaryStyle.Render("  " + fmt.Sprintf(format, a...)))
		b.WriteByte('\n')
	}
	dim := func(format string, a ...interface{}) {
		b.WriteString(hintStyle.Render("  " + fmt.Sprintf(format, a...)))
		b.WriteByte('\n')
	}

	if s.Phase == domain.PhaseGameOver {
		heading("The bakery is closed")
	} else {
		heading(fmt.Sprintf("Round %d: %s to play (%d of %d actions left)",
			s.Round, s.CurrentPlayer, s.ActionsRemaining, s.ActionsPermitted))
	}

	heading("Pantry")
	line("row: %s", list(s.PantryRow))
	dim("deck %d, discard %d", s.DeckSize, s.DiscardSize)

	heading("Customers")
	if len(s.Active) == 0 && len(s.Waiting) == 0 {
		dim("nobody is waiting")
	}
	for _, o := range s.Active {
		line("%s", orderLine(o))
	}
	for _, o := range s.Waiting {
		b.WriteString(urgentStyle.Render("  " + orderLine(o)))
		b.WriteByte('\n')
	}
	dim("%d still to come, %d served or gone", s.CustomerDeck, len(s.Resolved))

	heading("Hands")
	for _, p := range s.Players {
		marker := " "
		if p.Name == s.CurrentPlayer && s.Phase != domain.PhaseGameOver {
			marker = "*"
		}
		line("%s %s: %s", marker, p.Name, list(p.Hand))
	}
	if len(s.Layers) > 0 {
		dim("baked layers: %s", list(s.Layers))
	}

	if s.Phase == domain.PhasePlayerTurn {
		heading("Options")
		line("bake: %s", list(s.Bakeable))
		line("serve: %s", list(s.Fulfillable))
		line("garnish: %s", list(s.Garnishable))
	}
	return b.String()
}

// RenderLayers lists the layer recipes.
func RenderLayers(layers []domain.Layer) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Layers"))
	b.WriteByte('\n')
	for _, l := range layers {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %-14s %s", l.Name, list(domain.Names(l.Recipe())))))
		b.WriteByte('\n')
	}
	return b.String()
}

func orderLine(o domain.OrderView) string {
	s := fmt.Sprintf("%s (L%d, %s): %s", o.Name, o.Level, o.Status, strings.Join(o.Recipe, ", "))
	if len(o.Garnish) > 0 {
		s += " + garnish " + strings.Join(o.Garnish, ", ")
	}
	return s
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
