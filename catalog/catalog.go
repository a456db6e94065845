// Package catalog holds the restaurant facts and menu loaded once at startup. A Catalog is
// never mutated after construction and is safe to share between goroutines.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/imkonsowa/restaurant-concierge/models"
)

// ErrDataMissing marks a facts or menu document that is absent or malformed. The process must
// not start serving when Load returns it.
var ErrDataMissing = errors.New("startup data missing")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Catalog struct {
	facts models.Facts
	items []models.MenuItem
}

// New validates facts and items and copies items into a new Catalog.
func New(facts models.Facts, items []models.MenuItem) (*Catalog, error) {
	if err := validate.Struct(facts); err != nil {
		return nil, fmt.Errorf("%w: invalid facts: %v", ErrDataMissing, err)
	}

	menu := models.Menu{Items: items}
	if err := validate.Struct(menu); err != nil {
		return nil, fmt.Errorf("%w: invalid menu: %v", ErrDataMissing, err)
	}

	owned := make([]models.MenuItem, len(items))
	copy(owned, items)

	return &Catalog{facts: facts, items: owned}, nil
}

// Load reads the facts and menu JSON documents.
func Load(factsPath, menuPath string) (*Catalog, error) {
	var facts models.Facts
	if err := readJSON(factsPath, &facts); err != nil {
		return nil, err
	}

	var menu models.Menu
	if err := readJSON(menuPath, &menu); err != nil {
		return nil, err
	}

	return New(facts, menu.Items)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataMissing, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrDataMissing, path, err)
	}

	return nil
}

func (c *Catalog) Facts() models.Facts {
	return c.facts
}

// Items returns the menu in stored order. Callers must not modify the returned slice.
func (c *Catalog) Items() []models.MenuItem {
	return c.items
}

// Popular returns at most n items from the head of the menu.
func (c *Catalog) Popular(n int) []models.MenuItem {
	if n > len(c.items) {
		n = len(c.items)
	}
	if n < 0 {
		n = 0
	}

	return c.items[:n:n]
}
