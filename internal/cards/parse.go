// Package cards reads card definitions: ingredient counts, layer recipes and
// customer orders. Definitions come from CSV files or from the built-in decks.
package cards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hammamikhairi/magicbakery/internal/domain"
	"github.com/hammamikhairi/magicbakery/internal/logger"
)

// listSep separates the cards of a recipe or garnish inside one field.
const listSep = ";"

// MaxCount caps a single ingredient line.
const MaxCount = 100

// records reads every CSV record from r. Lines starting with # are comments.
// A line the CSV reader cannot parse is logged and skipped.
func records(r io.Reader, log *logger.Logger, what string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Warn("%s: skipping line %d: %v", what, perr.StartLine, perr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", what, err)
		}
		out = append(out, rec)
	}
}

func splitList(field string) []domain.Ingredient {
	var out []domain.Ingredient
	for _, name := range strings.Split(field, listSep) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, domain.NewIngredient(name))
		}
	}
	return out
}

// ParseIngredients reads "name,count" lines and expands each into count
// cards.
func ParseIngredients(r io.Reader, log *logger.Logger) ([]domain.Ingredient, error) {
	recs, err := records(r, log, "ingredients")
	if err != nil {
		return nil, err
	}

	var out []domain.Ingredient
	for i, rec := range recs {
		if len(rec) != 2 {
			log.Warn("ingredients: record %d: want name,count, got %d fields", i+1, len(rec))
			continue
		}
		name := strings.TrimSpace(rec[0])
		count, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		switch {
		case name == "":
			log.Warn("ingredients: record %d: empty name", i+1)
			continue
		case err != nil:
			log.Warn("ingredients: record %d: bad count %q", i+1, rec[1])
			continue
		case count <= 0 || count > MaxCount:
			log.Warn("ingredients: record %d: count %d out of range", i+1, count)
			continue
		}
		for n := 0; n < count; n++ {
			out = append(out, domain.NewIngredient(name))
		}
	}
	log.Debug("parsed %d ingredient cards", len(out))
	return out, nil
}

// ParseLayers reads "name,a;b;c" lines.
func ParseLayers(r io.Reader, log *logger.Logger) ([]domain.Layer, error) {
	recs, err := records(r, log, "layers")
	if err != nil {
		return nil, err
	}

	var out []domain.Layer
	for i, rec := range recs {
		if len(rec) != 2 {
			log.Warn("layers: record %d: want name,recipe, got %d fields", i+1, len(rec))
			continue
		}
		name := strings.TrimSpace(rec[0])
		recipe := splitList(rec[1])
		if name == "" || len(recipe) == 0 {
			log.Warn("layers: record %d: layer needs a name and a recipe", i+1)
			continue
		}
		out = append(out, domain.NewLayer(name, recipe))
	}
	log.Debug("parsed %d layers", len(out))
	return out, nil
}

// ParseCustomers reads "level,name,recipe,garnish" lines. The garnish field
// may be empty or missing.
func ParseCustomers(r io.Reader, log *logger.Logger) ([]domain.OrderCard, error) {
	recs, err := records(r, log, "customers")
	if err != nil {
		return nil, err
	}

	var out []domain.OrderCard
	for i, rec := range recs {
		if len(rec) < 3 || len(rec) > 4 {
			log.Warn("customers: record %d: want level,name,recipe,garnish, got %d fields", i+1, len(rec))
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil || level < 1 || level > 3 {
			log.Warn("customers: record %d: bad level %q", i+1, rec[0])
			continue
		}
		card := domain.OrderCard{
			Level:  level,
			Name:   strings.TrimSpace(rec[1]),
			Recipe: splitList(rec[2]),
		}
		if len(rec) == 4 {
			card.Garnish = splitList(rec[3])
		}
		if card.Name == "" || len(card.Recipe) == 0 {
			log.Warn("customers: record %d: order needs a name and a recipe", i+1)
			continue
		}
		out = append(out, card)
	}
	log.Debug("parsed %d customer orders", len(out))
	return out, nil
}
