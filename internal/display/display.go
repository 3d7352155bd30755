// Package display is the Bubble Tea front end of the game.
//
// A [UI] keeps a status bar and a command prompt pinned to the bottom of the
// terminal. Game output goes through Program.Println so lines written by the
// engine goroutine land above the prompt instead of tearing through it.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/magicbakery/internal/domain"
)

const (
	colorBar     = lipgloss.Color("#27272a")
	colorMuted   = lipgloss.Color("#a1a1aa")
	colorFaint   = lipgloss.Color("#71717a")
	colorRule    = lipgloss.Color("#52525b")
	colorSlate   = lipgloss.Color("#94a3b8")
	colorText    = lipgloss.Color("#d4d4d8")
	colorButter  = lipgloss.Color("#fde68a")
	colorIcing   = lipgloss.Color("#bae6fd")
	colorMint    = lipgloss.Color("#bbf7d0")
	colorBerry   = lipgloss.Color("#fca5a5")
	promptPrefix = "bake> "
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	barStyle     = lipgloss.NewStyle().Background(colorBar).Foreground(colorMuted)
	barLabel     = fg(colorMuted)
	barValue     = fg(colorButter)
	barAlert     = fg(colorBerry)
	barRule      = fg(colorRule)
	promptStyle  = fg(colorSlate)
	echoStyle    = fg(colorMuted)
	eventStyle   = fg(colorIcing)
	headingStyle = fg(colorMint).Bold(true)
	primaryStyle = fg(colorText)
	hintStyle    = fg(colorFaint)
	urgentStyle  = fg(colorBerry)

	// BannerStyle colours the startup banner and the lines under it.
	BannerStyle = fg(colorSlate)
)

// UI owns the terminal while Run is active. Other goroutines may print,
// publish snapshots and read input lines once WaitReady has returned.
type UI struct {
	program *tea.Program
	lines   chan string
	ready   chan struct{}
	closed  chan struct{}
	stopped atomic.Bool
	latest  atomic.Pointer[domain.Snapshot]
}

// NewUI creates the display. Nothing is drawn until Run.
func NewUI() *UI {
	return &UI{
		lines:  make(chan string, 16),
		ready:  make(chan struct{}),
		closed: make(chan struct{}),
	}
}

func (u *UI) live() bool { return u.program != nil && !u.stopped.Load() }

// Println prints above the prompt, or to stdout when the UI is not running.
func (u *UI) Println(a ...interface{}) {
	if u.live() {
		u.program.Println(a...)
		return
	}
	fmt.Println(a...)
}

// Printf is the formatted form of Println. It matches conversation.PrintFunc.
func (u *UI) Printf(format string, a ...interface{}) {
	u.Println(fmt.Sprintf(format, a...))
}

// InputChan delivers each line the player submits.
func (u *UI) InputChan() <-chan string { return u.lines }

// Publish stores snap for the status bar and asks for a redraw.
func (u *UI) Publish(snap domain.Snapshot) {
	u.latest.Store(&snap)
	if u.live() {
		u.program.Send(publishedMsg{})
	}
}

// PrintEvent prints a game event.
func (u *UI) PrintEvent(text string) { u.Println(eventStyle.Render("  " + text)) }

// PrintBlock prints pre-rendered multi-line text.
func (u *UI) PrintBlock(text string) { u.Println(strings.TrimRight(text, "\n")) }

// PrintHint prints a dimmed line.
func (u *UI) PrintHint(text string) { u.Println(hintStyle.Render("  " + text)) }

// PrintUrgent prints a line in red.
func (u *UI) PrintUrgent(text string) { u.Println(urgentStyle.Render("  " + text)) }

// PrintUserInput echoes a submitted command, prefixed with whose turn it is.
func (u *UI) PrintUserInput(text string) {
	who := "bake"
	if s := u.latest.Load(); s != nil && s.CurrentPlayer != "" {
		who = s.CurrentPlayer
	}
	u.Println(promptStyle.Render(who) + hintStyle.Render("> ") + echoStyle.Render(text))
}

// WaitReady blocks until the event loop is running.
func (u *UI) WaitReady() { <-u.ready }

// Quit stops the event loop.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed once Run has returned.
func (u *UI) QuitChan() <-chan struct{} { return u.closed }

// Run blocks on the Bubble Tea event loop until Ctrl+C or Quit.
func (u *UI) Run() error {
	u.program = tea.NewProgram(newModel(u))
	_, err := u.program.Run()
	u.stopped.Store(true)
	close(u.closed)
	return err
}

type model struct {
	ui     *UI
	prompt textinput.Model
	snap   *domain.Snapshot
	width  int
}

// publishedMsg signals that UI.latest changed.
type publishedMsg struct{}

func newModel(u *UI) model {
	in := textinput.New()
	in.Prompt = promptPrefix
	in.PromptStyle = promptStyle
	in.TextStyle = echoStyle
	in.Cursor.Style = fg(colorSlate)
	in.CharLimit = 200
	in.Width = 60
	in.Focus()
	return model{ui: u, prompt: in}
}

func (m model) Init() tea.Cmd {
	ready := m.ui.ready
	return tea.Batch(textinput.Blink, func() tea.Msg {
		close(ready)
		return nil
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.prompt.Width = max(msg.Width-len(promptPrefix), 1)
		return m, nil

	case publishedMsg:
		if m.snap = m.ui.latest.Load(); m.snap != nil {
			return m, tea.SetWindowTitle(windowTitle(*m.snap))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// submit hands the typed line to the game and echoes it from a Cmd, so
// Update never waits on Println.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.prompt.Value()
	m.prompt.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.ui.lines <- line
	ui := m.ui
	return m, func() tea.Msg {
		ui.PrintUserInput(line)
		return nil
	}
}

func (m model) View() string {
	var b strings.Builder
	if m.snap != nil {
		b.WriteString(renderBar(*m.snap, m.width))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.prompt.View())
	return b.String()
}

func windowTitle(s domain.Snapshot) string {
	if s.Phase == domain.PhaseGameOver {
		return "Magic Bakery - closed"
	}
	return fmt.Sprintf("Magic Bakery - round %d - %s", s.Round, s.CurrentPlayer)
}

func renderBar(s domain.Snapshot, width int) string {
	field := func(label, value string) string {
		return barLabel.Render(label+": ") + barValue.Render(value)
	}

	parts := []string{field("Round", fmt.Sprint(s.Round))}
	switch s.Phase {
	case domain.PhaseGameOver:
		parts = append(parts, barAlert.Render("game over"))
	default:
		parts = append(parts, field(s.CurrentPlayer, fmt.Sprintf("%d/%d actions", s.ActionsRemaining, s.ActionsPermitted)))
	}
	parts = append(parts,
		field("Customers", fmt.Sprintf("%d active, %d waiting, %d to come", len(s.Active), len(s.Waiting), s.CustomerDeck)),
		field("Deck", fmt.Sprint(s.DeckSize)),
	)
	if s.AtRisk != "" {
		parts = append(parts, barAlert.Render("at risk: "+s.AtRisk))
	}

	if width <= 0 {
		width = 80
	}
	return barStyle.Width(width).Render(" " + strings.Join(parts, barRule.Render("  │  ")) + " ")
}
