// Magic Bakery: a cooperative card game for 2 to 5 bakers.
//
// Usage:
//
//	magicbakery [-seed N] [-players A,B,C] [-replay script] [-verbose] [-quiet]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/cards"
	"github.com/hammamikhairi/magicbakery/internal/config"
	"github.com/hammamikhairi/magicbakery/internal/conversation"
	"github.com/hammamikhairi/magicbakery/internal/display"
	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/engine"
	"github.com/hammamikhairi/magicbakery/internal/logger"
	"github.com/hammamikhairi/magicbakery/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	seed := flag.Int64("seed", cfg.Seed, "random seed; the same seed and commands replay the same game")
	players := flag.String("players", strings.Join(cfg.Players, ","), "comma separated player names (2 to 5)")
	maxRounds := flag.Int("max-rounds", cfg.MaxRounds, "number of rounds before the bakery closes")
	ingredients := flag.String("ingredients", cfg.IngredientsFile, "ingredient card file (built-in deck if empty)")
	layers := flag.String("layers", cfg.LayersFile, "layer recipe file (built-in recipes if empty)")
	customers := flag.String("customers", cfg.CustomersFile, "customer card file (built-in deck if empty)")
	replay := flag.String("replay", "", "play commands from a script file instead of the terminal")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", cfg.LogFile, "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	cfg.Seed = *seed
	cfg.Players = config.ParsePlayers(*players)
	cfg.MaxRounds = *maxRounds
	cfg.IngredientsFile, cfg.LayersFile, cfg.CustomersFile = *ingredients, *layers, *customers
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the table stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	log := logger.New(logLevel, logOut)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := cards.NewFileSource(cards.Paths{
		Ingredients: cfg.IngredientsFile,
		Layers:      cfg.LayersFile,
		Customers:   cfg.CustomersFile,
	}, log.Named("cards"))
	set, err := cards.Load(ctx, src, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading cards: %v\n", err)
		os.Exit(1)
	}

	if *replay != "" {
		if err := runScript(ctx, cfg, set, *replay, log); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	runInteractive(ctx, cancel, cfg, set, log)
}

func newEngine(cfg config.Config, set domain.CardSet, notifier domain.Notifier, log *logger.Logger) (*engine.Engine, error) {
	return engine.New(cfg.Seed, set, log.Named("engine"),
		engine.WithMaxRounds(cfg.MaxRounds),
		engine.WithGarnishBonus(cfg.GarnishBonus),
		engine.WithNotifier(notifier),
		engine.WithJournal(storage.NewMemoryJournal(log.Named("journal"))),
	)
}

// runScript plays a command file to the end and prints the final table.
func runScript(ctx context.Context, cfg config.Config, set domain.CardSet, path string, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	notifier := conversation.NewCLINotifier(log, nil)
	eng, err := newEngine(cfg, set, notifier, log)
	if err != nil {
		return err
	}
	if err := eng.StartGame(ctx, cfg.Players); err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	parser := conversation.NewCommandParser(log.Named("parser"))
	chooser := conversation.NewScriptChooser(f, parser, log)
	if err := eng.Run(ctx, chooser); err != nil && !errors.Is(err, domain.ErrQuit) {
		return fmt.Errorf("script line %d: %w", chooser.Line(), err)
	}

	fmt.Print(display.RenderSnapshot(eng.Snapshot()))
	printRecord(func(format string, a ...interface{}) { fmt.Printf(format+"\n", a...) }, eng)
	return nil
}

// runInteractive plays at the terminal. Bubble Tea owns the terminal while
// the game runs in a background goroutine.
func runInteractive(ctx context.Context, cancel context.CancelFunc, cfg config.Config, set domain.CardSet, log *logger.Logger) {
	ui := display.NewUI()
	notifier := conversation.NewCLINotifier(log, ui.Printf)
	eng, err := newEngine(cfg, set, notifier, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(display.RenderBanner(fmt.Sprintf("seed %d, %d rounds", cfg.Seed, cfg.MaxRounds)))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	chooser := display.NewChooser(ui, conversation.NewCommandParser(log.Named("parser")), set.Layers, log)

	go func() {
		defer ui.Quit()
		ui.WaitReady()

		if err := eng.StartGame(ctx, cfg.Players); err != nil {
			ui.PrintUrgent(fmt.Sprintf("Could not open the bakery: %v", err))
			return
		}
		log.Info("session %s started (seed=%d, players=%s)", eng.ID(), eng.Seed(), strings.Join(eng.Players(), ","))

		err := eng.Run(ctx, chooser)
		switch {
		case err == nil:
			ui.Publish(eng.Snapshot())
			ui.PrintBlock(display.RenderSnapshot(eng.Snapshot()))
			printRecord(ui.Printf, eng)
			ui.PrintHint("Press Ctrl+C to leave.")
			<-ui.QuitChan()
		case errors.Is(err, domain.ErrQuit), errors.Is(err, context.Canceled):
			log.Info("session %s closed by player", eng.ID())
		default:
			log.Error("session %s: %v", eng.ID(), err)
		}
	}()

	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

func printRecord(printf conversation.PrintFunc, eng *engine.Engine) {
	served, garnished, lost := 0, 0, 0
	for _, o := range eng.ServiceRecord() {
		switch o.Status {
		case domain.StatusFulfilled:
			served++
		case domain.StatusGarnished:
			served++
			garnished++
		case domain.StatusGivenUp:
			lost++
		}
		printf("  %-16s %s", o.Name, o.Status)
	}
	printf("Served %d customers (%d garnished), %d gave up.", served, garnished, lost)
}
