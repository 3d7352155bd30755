package cards

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

//go:embed data/*.csv
var builtin embed.FS

// Compile-time interface checks.
var (
	_ domain.CardSource = (*MemorySource)(nil)
	_ domain.CardSource = (*FileSource)(nil)
)

// MemorySource serves the built-in decks compiled into the binary.
type MemorySource struct {
	log *logger.Logger
}

// NewMemorySource creates a source for the built-in decks.
func NewMemorySource(log *logger.Logger) *MemorySource {
	return &MemorySource{log: log}
}

func (s *MemorySource) open(name string) (io.Reader, error) {
	b, err := builtin.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("built-in %s: %w", name, err)
	}
	return bytes.NewReader(b), nil
}

// Ingredients returns the built-in ingredient deck.
func (s *MemorySource) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	r, err := s.open("ingredients.csv")
	if err != nil {
		return nil, err
	}
	return ParseIngredients(r, s.log)
}

// Layers returns the built-in layer recipes.
func (s *MemorySource) Layers(ctx context.Context) ([]domain.Layer, error) {
	r, err := s.open("layers.csv")
	if err != nil {
		return nil, err
	}
	return ParseLayers(r, s.log)
}

// Customers returns the built-in customer orders.
func (s *MemorySource) Customers(ctx context.Context) ([]domain.OrderCard, error) {
	r, err := s.open("customers.csv")
	if err != nil {
		return nil, err
	}
	return ParseCustomers(r, s.log)
}

// Paths names the CSV files of a FileSource. An empty path selects the
// built-in deck for that list.
type Paths struct {
	Ingredients string
	Layers      string
	Customers   string
}

// FileSource reads definitions from CSV files.
type FileSource struct {
	paths    Paths
	fallback *MemorySource
	log      *logger.Logger
}

// NewFileSource creates a file-backed source.
func NewFileSource(paths Paths, log *logger.Logger) *FileSource {
	return &FileSource{paths: paths, fallback: NewMemorySource(log), log: log}
}

func (s *FileSource) read(path string) (io.Reader, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card file: %w", err)
	}
	s.log.Debug("loaded %s (%d bytes)", path, len(b))
	return bytes.NewReader(b), nil
}

// Ingredients reads the ingredient file.
func (s *FileSource) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	if s.paths.Ingredients == "" {
		return s.fallback.Ingredients(ctx)
	}
	r, err := s.read(s.paths.Ingredients)
	if err != nil {
		return nil, err
	}
	return ParseIngredients(r, s.log)
}

// Layers reads the layer file.
func (s *FileSource) Layers(ctx context.Context) ([]domain.Layer, error) {
	if s.paths.Layers == "" {
		return s.fallback.Layers(ctx)
	}
	r, err := s.read(s.paths.Layers)
	if err != nil {
		return nil, err
	}
	return ParseLayers(r, s.log)
}

// Customers reads the customer file.
func (s *FileSource) Customers(ctx context.Context) ([]domain.OrderCard, error) {
	if s.paths.Customers == "" {
		return s.fallback.Customers(ctx)
	}
	r, err := s.read(s.paths.Customers)
	if err != nil {
		return nil, err
	}
	return ParseCustomers(r, s.log)
}

// Load reads all three lists from src. Any read error or empty list aborts
// the load. Order cards naming something that is neither an ingredient nor
// a layer are kept but logged.
func Load(ctx context.Context, src domain.CardSource, log *logger.Logger) (domain.CardSet, error) {
	var set domain.CardSet
	var err error

	if set.Ingredients, err = src.Ingredients(ctx); err != nil {
		return domain.CardSet{}, fmt.Errorf("loading ingredients: %w", err)
	}
	if set.Layers, err = src.Layers(ctx); err != nil {
		return domain.CardSet{}, fmt.Errorf("loading layers: %w", err)
	}
	if set.Customers, err = src.Customers(ctx); err != nil {
		return domain.CardSet{}, fmt.Errorf("loading customers: %w", err)
	}

	switch {
	case len(set.Ingredients) == 0:
		return domain.CardSet{}, fmt.Errorf("ingredients: %w", domain.ErrNoDefinitions)
	case len(set.Layers) == 0:
		return domain.CardSet{}, fmt.Errorf("layers: %w", domain.ErrNoDefinitions)
	case len(set.Customers) == 0:
		return domain.CardSet{}, fmt.Errorf("customers: %w", domain.ErrNoDefinitions)
	}

	known := make(map[string]bool)
	for _, c := range set.Ingredients {
		known[c.Key()] = true
	}
	for _, l := range set.Layers {
		known[l.Key()] = true
	}
	for _, o := range set.Customers {
		for _, c := range append(slices.Clip(o.Recipe), o.Garnish...) {
			if !known[c.Key()] {
				log.Warn("order %q asks for %q, which no card provides", o.Name, c.Name)
			}
		}
	}

	log.Info("loaded %d ingredient cards, %d layers, %d customer orders",
		len(set.Ingredients), len(set.Layers), len(set.Customers))
	return set, nil
}
