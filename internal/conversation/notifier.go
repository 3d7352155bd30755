package conversation

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// historySize is how many recent events a notifier keeps.
const historySize = 8

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes game events to stdout with ANSI formatting and keeps
// the most recent ones for the status view.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc

	mu     sync.Mutex
	recent []string
}

// NewCLINotifier creates a stdout-based notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a game event.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.remember(message)
	n.printFn("%s%s%s", cyan, message, reset)
	return nil
}

// NotifyUrgent prints an event that needs attention, such as a customer
// losing patience, in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.remember("! " + message)
	n.printFn("%s%s%s%s", red, bold, message, reset)
	return nil
}

func (n *CLINotifier) remember(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, message)
	if len(n.recent) > historySize {
		n.recent = n.recent[len(n.recent)-historySize:]
	}
}

// Recent returns the latest events, oldest first.
func (n *CLINotifier) Recent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.recent...)
}
