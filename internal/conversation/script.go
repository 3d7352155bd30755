package conversation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.ActionChooser = (*ScriptChooser)(nil)

// ScriptChooser plays a fixed list of commands, one per line. Blank lines,
// #-comments and non-action commands are skipped. It returns domain.ErrQuit
// at the end of the script or on a quit command.
type ScriptChooser struct {
	scanner *bufio.Scanner
	parser  *CommandParser
	log     *logger.Logger
	line    int
}

// NewScriptChooser creates a chooser reading commands from r.
func NewScriptChooser(r io.Reader, parser *CommandParser, log *logger.Logger) *ScriptChooser {
	return &ScriptChooser{scanner: bufio.NewScanner(r), parser: parser, log: log}
}

// ChooseAction returns the next action of the script.
func (s *ScriptChooser) ChooseAction(ctx context.Context, snap domain.Snapshot) (domain.ActionRequest, error) {
	for s.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cmd := s.parser.Parse(text)
		switch cmd.Verb {
		case VerbAction:
			s.log.Debug("script line %d: %s plays %s", s.line, snap.CurrentPlayer, cmd.Action)
			return cmd.Action, nil
		case VerbQuit:
			return nil, domain.ErrQuit
		case VerbUnknown:
			s.log.Warn("script line %d: ignoring %q", s.line, text)
		}
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return nil, domain.ErrQuit
}

// Line returns the number of lines read so far.
func (s *ScriptChooser) Line() int { return s.line }
