package chat

import "github.com/imkonsowa/restaurant-concierge/models"

type Predicate func(item models.MenuItem) bool

func IsGlutenFree(item models.MenuItem) bool { return item.IsGlutenFree }
func IsVegan(item models.MenuItem) bool      { return item.IsVegan }
func IsVegetarian(item models.MenuItem) bool { return item.IsVegetarian }
func IsSpicy(item models.MenuItem) bool      { return item.SpiceLevel > 0 }

// FilterNames returns the names of items matching p, in menu order.
func FilterNames(items []models.MenuItem, p Predicate) []string {
	names := []string{}
	for _, item := range items {
		if p(item) {
			names = append(names, item.Name)
		}
	}

	return names
}
