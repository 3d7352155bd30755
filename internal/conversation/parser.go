// Package conversation turns typed commands into game actions and prints
// game events.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// Verb classifies a parsed command line.
type Verb int

const (
	VerbUnknown Verb = iota
	VerbAction       // Command.Action is set
	VerbHelp
	VerbStatus
	VerbLayers
	VerbQuit
)

// String returns a human-readable verb.
func (v Verb) String() string {
	switch v {
	case VerbAction:
		return "action"
	case VerbHelp:
		return "help"
	case VerbStatus:
		return "status"
	case VerbLayers:
		return "layers"
	case VerbQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed input line.
type Command struct {
	Verb   Verb
	Action domain.ActionRequest
	Input  string
}

// CommandParser matches input lines against keyword patterns.
type CommandParser struct {
	log   *logger.Logger
	rules []commandRule
}

type commandRule struct {
	regex *regexp.Regexp
	build func(m []string) Command
}

func verb(v Verb) func([]string) Command {
	return func([]string) Command { return Command{Verb: v} }
}

func action(fn func(m []string) domain.ActionRequest) func([]string) Command {
	return func(m []string) Command { return Command{Verb: VerbAction, Action: fn(m)} }
}

// NewCommandParser creates a keyword-based command parser.
func NewCommandParser(log *logger.Logger) *CommandParser {
	p := &CommandParser{log: log}
	p.rules = []commandRule{
		{regexp.MustCompile(`(?i)^(?:draw|take|d)(?:\s+(.+))?$`), action(func(m []string) domain.ActionRequest {
			return domain.DrawIngredient{Name: strings.TrimSpace(m[1])}
		})},
		{regexp.MustCompile(`(?i)^(?:pass|give)\s+(.+?)\s+to\s+(\S.*)$`), action(func(m []string) domain.ActionRequest {
			return domain.PassIngredient{Ingredient: strings.TrimSpace(m[1]), To: strings.TrimSpace(m[2])}
		})},
		{regexp.MustCompile(`(?i)^(?:bake|b)\s+(.+)$`), action(func(m []string) domain.ActionRequest {
			return domain.BakeLayer{Layer: strings.TrimSpace(m[1])}
		})},
		{regexp.MustCompile(`(?i)^(?:serve|fulfil|fulfill|f)\s+(.+?)(\s+(?:with\s+)?garnish)?$`), action(func(m []string) domain.ActionRequest {
			return domain.FulfilOrder{Order: strings.TrimSpace(m[1]), Garnish: m[2] != ""}
		})},
		{regexp.MustCompile(`(?i)^(?:refresh|r)$`), action(func([]string) domain.ActionRequest {
			return domain.RefreshPantry{}
		})},
		{regexp.MustCompile(`(?i)^(?:end|done|end turn|e)$`), action(func([]string) domain.ActionRequest {
			return domain.EndTurn{}
		})},
		{regexp.MustCompile(`(?i)^(?:status|s|look)$`), verb(VerbStatus)},
		{regexp.MustCompile(`(?i)^(?:layers|recipes|l)$`), verb(VerbLayers)},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), verb(VerbQuit)},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), verb(VerbHelp)},
	}
	return p
}

// Parse converts an input line into a command.
func (p *CommandParser) Parse(input string) Command {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return Command{Verb: VerbUnknown}
	}

	p.log.Debug("parsing input: %q", trimmed)
	for _, rule := range p.rules {
		if m := rule.regex.FindStringSubmatch(trimmed); m != nil {
			cmd := rule.build(m)
			cmd.Input = trimmed
			p.log.Debug("matched %s", cmd.Verb)
			return cmd
		}
	}

	p.log.Debug("no match for %q", trimmed)
	return Command{Verb: VerbUnknown, Input: trimmed}
}

// Help lists the commands the parser understands.
const Help = `Commands:
  draw [card]            take a card from the pantry row (front card if none named)
  pass <card> to <name>  give a card to another player
  bake <layer>           bake a layer from your hand
  serve <order> [garnish] serve a customer, optionally with the garnish
  refresh                discard the pantry row and deal a new one
  end                    end your turn
  status | layers        show the table or the layer recipes
  quit                   leave the game`
