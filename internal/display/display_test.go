package display

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hammamikhairi/magicbakery/internal/conversation"
	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

func tableSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Round:            3,
		Phase:            domain.PhasePlayerTurn,
		CurrentPlayer:    "B",
		ActionsPermitted: 3,
		ActionsRemaining: 2,
		PantryRow:        []string{"Flour", "Sugar", "Eggs"},
		DeckSize:         12,
		DiscardSize:      4,
		Active: []domain.OrderView{
			{Name: "Jam Sponge", Level: 2, Recipe: []string{"Sponge", "Jam"}, Garnish: []string{"Fruit"}, Status: domain.StatusWaiting},
		},
		Waiting: []domain.OrderView{
			{Name: "Trifle", Level: 3, Recipe: []string{"Custard", "Sponge"}, Status: domain.StatusImpatient},
		},
		CustomerDeck: 5,
		AtRisk:       "Trifle",
		Players: []domain.PlayerView{
			{Name: "A", Hand: []string{"Butter"}},
			{Name: "B", Hand: []string{"Sponge", "Jam", "Fruit"}},
		},
		Fulfillable: []string{"Jam Sponge"},
		Garnishable: []string{"Jam Sponge"},
	}
}

func TestRenderSnapshot(t *testing.T) {
	out := RenderSnapshot(tableSnapshot())

	for _, want := range []string{
		"Round 3: B to play (2 of 3 actions left)",
		"row: Flour, Sugar, Eggs",
		"deck 12, discard 4",
		"Jam Sponge (L2, waiting): Sponge, Jam + garnish Fruit",
		"Trifle (L3, impatient): Custard, Sponge",
		"* B: Sponge, Jam, Fruit",
		"bake: -",
		"serve: Jam Sponge",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderSnapshotGameOver(t *testing.T) {
	snap := tableSnapshot()
	snap.Phase = domain.PhaseGameOver

	out := RenderSnapshot(snap)
	if !strings.Contains(out, "The bakery is closed") {
		t.Fatalf("expected closing heading, got:\n%s", out)
	}
	if strings.Contains(out, "Options") {
		t.Fatalf("expected no options after game over, got:\n%s", out)
	}
}

func TestRenderBar(t *testing.T) {
	out := renderBar(tableSnapshot(), 200)
	for _, want := range []string{"Round", "2/3 actions", "1 active, 1 waiting, 5 to come", "at risk: Trifle"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected status bar to contain %q, got %q", want, out)
		}
	}
}

func TestRenderBannerSubtitle(t *testing.T) {
	out := renderBanner(120, "seed 42")
	if !strings.Contains(out, "seed 42") {
		t.Fatalf("expected subtitle in banner, got:\n%s", out)
	}
}

func TestChooserAnswersCommandsInPlace(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ui := NewUI()
	layers := []domain.Layer{domain.NewLayer("Sponge", []domain.Ingredient{domain.NewIngredient("Flour"), domain.NewIngredient("Eggs")})}
	c := NewChooser(ui, conversation.NewCommandParser(log), layers, log)

	ui.lines <- "status"
	ui.lines <- "what now"
	ui.lines <- "bake Sponge"

	got, err := c.ChooseAction(context.Background(), tableSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.BakeLayer{Layer: "Sponge"}) {
		t.Fatalf("expected bake Sponge, got %v", got)
	}
	if s := ui.latest.Load(); s == nil || s.CurrentPlayer != "B" {
		t.Fatalf("expected snapshot to be published")
	}

	ui.lines <- "quit"
	if _, err := c.ChooseAction(context.Background(), tableSnapshot()); !errors.Is(err, domain.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestChooserStopsOnCancel(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	c := NewChooser(NewUI(), conversation.NewCommandParser(log), nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ChooseAction(ctx, tableSnapshot()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
