package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

func TestCommandParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewCommandParser(log)

	tests := []struct {
		input      string
		wantVerb   Verb
		wantAction domain.ActionRequest
	}{
		// Draw
		{"draw", VerbAction, domain.DrawIngredient{}},
		{"d", VerbAction, domain.DrawIngredient{}},
		{"draw Flour", VerbAction, domain.DrawIngredient{Name: "Flour"}},
		{"TAKE  helpful   duck", VerbAction, domain.DrawIngredient{Name: "helpful duck"}},

		// Pass
		{"pass Flour to B", VerbAction, domain.PassIngredient{Ingredient: "Flour", To: "B"}},
		{"give Helpful Duck to Ann Marie", VerbAction, domain.PassIngredient{Ingredient: "Helpful Duck", To: "Ann Marie"}},

		// Bake
		{"bake Sponge", VerbAction, domain.BakeLayer{Layer: "Sponge"}},
		{"b jam", VerbAction, domain.BakeLayer{Layer: "jam"}},

		// Serve
		{"serve Jam Sponge", VerbAction, domain.FulfilOrder{Order: "Jam Sponge"}},
		{"fulfil Jam Sponge garnish", VerbAction, domain.FulfilOrder{Order: "Jam Sponge", Garnish: true}},
		{"fulfill Trifle with garnish", VerbAction, domain.FulfilOrder{Order: "Trifle", Garnish: true}},

		// Refresh and end
		{"refresh", VerbAction, domain.RefreshPantry{}},
		{"r", VerbAction, domain.RefreshPantry{}},
		{"end", VerbAction, domain.EndTurn{}},
		{"done", VerbAction, domain.EndTurn{}},
		{"end turn", VerbAction, domain.EndTurn{}},

		// Other
		{"status", VerbStatus, nil},
		{"layers", VerbLayers, nil},
		{"help", VerbHelp, nil},
		{"?", VerbHelp, nil},
		{"quit", VerbQuit, nil},
		{"q", VerbQuit, nil},

		// Unknown
		{"bake", VerbUnknown, nil},
		{"pass Flour", VerbUnknown, nil},
		{"flambé the cat", VerbUnknown, nil},
		{"", VerbUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := parser.Parse(tt.input)
			if cmd.Verb != tt.wantVerb {
				t.Fatalf("input %q: expected verb %s, got %s", tt.input, tt.wantVerb, cmd.Verb)
			}
			if tt.wantAction != nil && cmd.Action != tt.wantAction {
				t.Fatalf("input %q: expected %#v, got %#v", tt.input, tt.wantAction, cmd.Action)
			}
		})
	}
}

func TestScriptChooser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	script := strings.Join([]string{
		"# opening",
		"draw",
		"",
		"status",
		"nonsense here",
		"bake Cookie",
		"end",
	}, "\n")
	chooser := NewScriptChooser(strings.NewReader(script), NewCommandParser(log), log)
	ctx := context.Background()

	want := []domain.ActionRequest{domain.DrawIngredient{}, domain.BakeLayer{Layer: "Cookie"}, domain.EndTurn{}}
	for i, w := range want {
		got, err := chooser.ChooseAction(ctx, domain.Snapshot{})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("step %d: expected %v, got %v", i, w, got)
		}
	}
	if _, err := chooser.ChooseAction(ctx, domain.Snapshot{}); !errors.Is(err, domain.ErrQuit) {
		t.Fatalf("expected ErrQuit at end of script, got %v", err)
	}
	if chooser.Line() != 7 {
		t.Fatalf("expected 7 lines read, got %d", chooser.Line())
	}
}

func TestScriptChooserQuit(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	chooser := NewScriptChooser(strings.NewReader("quit\ndraw\n"), NewCommandParser(log), log)
	if _, err := chooser.ChooseAction(context.Background(), domain.Snapshot{}); !errors.Is(err, domain.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestCLINotifierKeepsRecentEvents(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	var printed []string
	n := NewCLINotifier(log, func(format string, a ...interface{}) {
		printed = append(printed, fmt.Sprintf(format, a...))
	})
	ctx := context.Background()

	for i := 0; i < historySize+2; i++ {
		_ = n.Notify(ctx, fmt.Sprintf("event %d", i))
	}
	_ = n.NotifyUrgent(ctx, "Trifle gave up waiting")

	recent := n.Recent()
	if len(recent) != historySize {
		t.Fatalf("expected %d recent events, got %d", historySize, len(recent))
	}
	if recent[len(recent)-1] != "! Trifle gave up waiting" {
		t.Fatalf("unexpected last event %q", recent[len(recent)-1])
	}
	if len(printed) != historySize+3 {
		t.Fatalf("expected every event printed, got %d", len(printed))
	}
}
