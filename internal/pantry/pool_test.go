package pantry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

func cards(names ...string) []domain.Ingredient {
	out := make([]domain.Ingredient, len(names))
	for i, n := range names {
		out[i] = domain.NewIngredient(n)
	}
	return out
}

func setupPool(t *testing.T, names ...string) *Pool {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return New(cards(names...), rand.New(rand.NewSource(1)), log)
}

func TestFillRowTakesFromDeckFront(t *testing.T) {
	p := setupPool(t, "a", "b", "c", "d", "e", "f", "g")
	p.FillRow()

	got := domain.Names(p.Row())
	want := []string{"a", "b", "c", "d", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected row %v, got %v", want, got)
		}
	}
	if p.DeckSize() != 2 {
		t.Fatalf("expected 2 left in deck, got %d", p.DeckSize())
	}
}

func TestDrawByNameAndTopUp(t *testing.T) {
	p := setupPool(t, "Flour", "Sugar", "Eggs", "Butter", "Jam", "Fruit")
	p.FillRow()

	c, err := p.Draw("eggs")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if c.Name != "Eggs" {
		t.Fatalf("expected Eggs, got %s", c.Name)
	}
	row := domain.Names(p.Row())
	if len(row) != RowSize || row[RowSize-1] != "Fruit" {
		t.Fatalf("expected row topped up with Fruit, got %v", row)
	}

	if _, err := p.Draw("Chocolate"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := len(p.Row()); got != RowSize {
		t.Fatalf("failed draw changed the row size to %d", got)
	}
}

func TestDrawWithoutNameTakesFront(t *testing.T) {
	p := setupPool(t, "a", "b", "c", "d", "e")
	p.FillRow()

	c, err := p.Draw("")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if c.Name != "a" {
		t.Fatalf("expected front card a, got %s", c.Name)
	}
}

func TestRowShrinksWhenEverythingIsEmpty(t *testing.T) {
	p := setupPool(t, "a", "b")
	p.FillRow()
	if !p.Degraded() {
		t.Fatal("expected degraded row")
	}

	for i := 0; i < 2; i++ {
		if _, err := p.Draw(""); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if _, err := p.Draw(""); !errors.Is(err, domain.ErrEmptyPantry) {
		t.Fatalf("expected ErrEmptyPantry, got %v", err)
	}
}

func TestDrawFromDeckReshufflesDiscard(t *testing.T) {
	p := setupPool(t)
	p.Discard(cards("x", "y", "z")...)

	c, err := p.DrawFromDeck()
	if err != nil {
		t.Fatalf("draw from deck: %v", err)
	}
	if c.Name == "" {
		t.Fatal("expected a card")
	}
	if p.DiscardSize() != 0 || p.DeckSize() != 2 {
		t.Fatalf("expected discard moved into deck, got census %+v", p.Census())
	}
}

func TestRefreshDoesNotRecycleItsOwnDiscards(t *testing.T) {
	p := setupPool(t, "a", "b", "c", "d", "e", "f", "g")
	p.FillRow()

	p.Refresh()

	row := domain.Names(p.Row())
	if len(row) != 2 || row[0] != "f" || row[1] != "g" {
		t.Fatalf("expected degraded row [f g], got %v", row)
	}
	if p.DiscardSize() != RowSize {
		t.Fatalf("expected the old row in discard, got %d", p.DiscardSize())
	}

	// The next draw may now recycle them.
	if _, err := p.Draw(""); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(p.Row()) != RowSize {
		t.Fatalf("expected a full row after reshuffle, got %d", len(p.Row()))
	}
}

func TestDrawRefillsRowEmptiedByRefresh(t *testing.T) {
	p := setupPool(t, "a", "b", "c", "d", "e")
	p.FillRow()

	p.Refresh()
	if got := p.Census(); got != (Census{Discard: RowSize}) {
		t.Fatalf("expected every card in discard after refresh, got %+v", got)
	}

	c, err := p.Draw("")
	if err != nil {
		t.Fatalf("draw after refresh emptied the row: %v", err)
	}
	if c.Name == "" {
		t.Fatal("expected a recycled card")
	}
	if got := p.Census(); got != (Census{Row: RowSize - 1}) {
		t.Fatalf("expected the discards recycled into the row, got %+v", got)
	}
}

func TestRefreshRecyclesEarlierDiscards(t *testing.T) {
	p := setupPool(t, "a", "b", "c", "d", "e")
	p.FillRow()
	p.Discard(cards("x", "y", "z")...)

	p.Refresh()

	for _, c := range p.Row() {
		switch c.Name {
		case "x", "y", "z":
		default:
			t.Fatalf("row should only hold earlier discards, got %v", domain.Names(p.Row()))
		}
	}
	if p.DiscardSize() != RowSize {
		t.Fatalf("expected just-discarded row to stay in discard, got %d", p.DiscardSize())
	}
}

func TestPoolConservesCards(t *testing.T) {
	names := make([]string, 30)
	for i := range names {
		names[i] = string(rune('a' + i%26))
	}
	p := setupPool(t, names...)
	p.Shuffle()
	p.FillRow()

	held := 0
	for i := 0; i < 100; i++ {
		switch i % 3 {
		case 0:
			if _, err := p.Draw(""); err == nil {
				held++
			}
		case 1:
			p.Refresh()
		case 2:
			if held > 0 {
				p.Discard(domain.NewIngredient("returned"))
				held--
			}
		}
		if got := p.Census().Total() + held; got != 30 {
			t.Fatalf("step %d: expected 30 cards, counted %d", i, got)
		}
	}
}

func TestDealFailsWithoutDrawing(t *testing.T) {
	p := setupPool(t, "a", "b")
	if _, err := p.Deal(3); !errors.Is(err, domain.ErrNotEnoughCards) {
		t.Fatalf("expected ErrNotEnoughCards, got %v", err)
	}
	if p.DeckSize() != 2 {
		t.Fatal("failed deal drew cards")
	}
}
