package display

import (
	"context"

	"github.com/hammamikhairi/magicbakery/internal/conversation"
	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.ActionChooser = (*Chooser)(nil)

// Chooser asks the player at the terminal for each action.
type Chooser struct {
	ui     *UI
	parser *conversation.CommandParser
	layers []domain.Layer
	log    *logger.Logger

	lastRound  int
	lastPlayer string
}

// NewChooser creates a terminal chooser. layers feeds the "layers" command.
func NewChooser(ui *UI, parser *conversation.CommandParser, layers []domain.Layer, log *logger.Logger) *Chooser {
	return &Chooser{ui: ui, parser: parser, layers: layers, log: log}
}

// ChooseAction publishes the snapshot and waits for an action line.
// Non-action commands are answered in place.
func (c *Chooser) ChooseAction(ctx context.Context, snap domain.Snapshot) (domain.ActionRequest, error) {
	c.ui.Publish(snap)
	if snap.Round != c.lastRound || snap.CurrentPlayer != c.lastPlayer {
		c.lastRound, c.lastPlayer = snap.Round, snap.CurrentPlayer
		c.ui.PrintBlock(RenderSnapshot(snap))
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.ui.QuitChan():
			return nil, domain.ErrQuit
		case line := <-c.ui.InputChan():
			cmd := c.parser.Parse(line)
			switch cmd.Verb {
			case conversation.VerbAction:
				c.log.Debug("%s chose %s", snap.CurrentPlayer, cmd.Action)
				return cmd.Action, nil
			case conversation.VerbQuit:
				return nil, domain.ErrQuit
			case conversation.VerbStatus:
				c.ui.PrintBlock(RenderSnapshot(snap))
			case conversation.VerbLayers:
				c.ui.PrintBlock(RenderLayers(c.layers))
			case conversation.VerbHelp:
				c.ui.PrintBlock(conversation.Help)
			default:
				c.ui.PrintHint("Didn't catch that. Type help for the commands.")
			}
		}
	}
}
