package domain

import "context"

// CardSource provides the three card-definition lists a session is built
// from. Implementations can be built-in, file-based, or anything else that
// yields plain records. Malformed records are the source's problem: it skips
// and logs them rather than failing the whole list.
type CardSource interface {
	Ingredients(ctx context.Context) ([]Ingredient, error)
	Layers(ctx context.Context) ([]Layer, error)
	Customers(ctx context.Context) ([]OrderCard, error)
}

// CardSet is the in-memory result of reading a CardSource.
type CardSet struct {
	Ingredients []Ingredient
	Layers      []Layer
	Customers   []OrderCard
}

// ActionChooser is the external actor deciding the current player's next
// action. The engine blocks on it and never proceeds on partial input.
type ActionChooser interface {
	ChooseAction(ctx context.Context, snap Snapshot) (ActionRequest, error)
}

// Notifier delivers game events to the players.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// JournalEntry records one applied action and the state it produced.
type JournalEntry struct {
	Seq      int
	Round    int
	Player   string
	Action   string
	Snapshot Snapshot
}

// Journal keeps the ordered history of a session's applied actions.
type Journal interface {
	Append(ctx context.Context, entry JournalEntry) error
	Entries(ctx context.Context) ([]JournalEntry, error)
}
