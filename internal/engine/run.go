package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

// Run drives the game until it is over, asking chooser for every action of
// the current player. A turn ends when its budget is spent or the chooser
// asks for EndTurn. Rejected actions are reported through the notifier and
// the chooser is asked again. Run returns nil at game over, and the
// chooser's error (wrapped) or ctx.Err() otherwise.
func (e *Engine) Run(ctx context.Context, chooser domain.ActionChooser) error {
	if e.phase == domain.PhaseSetup {
		return domain.ErrGameNotStarted
	}

	for !e.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if e.ActionsRemaining() == 0 {
			if _, err := e.Apply(ctx, domain.EndTurn{}); err != nil {
				return fmt.Errorf("ending turn: %w", err)
			}
			continue
		}

		req, err := chooser.ChooseAction(ctx, e.Snapshot())
		if err != nil {
			return fmt.Errorf("choosing action: %w", err)
		}

		if _, err := e.Apply(ctx, req); err != nil {
			if errors.Is(err, domain.ErrGameOver) {
				return nil
			}
			e.notifyUrgent(ctx, fmt.Sprintf("Can't %s: %v", req, err))
		}
	}
	return nil
}
