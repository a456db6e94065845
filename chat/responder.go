package chat

import (
	"fmt"
	"strings"

	"github.com/imkonsowa/restaurant-concierge/catalog"
)

const (
	AllergyCaution = " Please confirm with staff for severe allergies."
	PopularCount   = 3

	ReservationPrompt = "Happy to help with a table. Please share your name, party size, date and time, and a phone number or email so we can confirm."
	FallbackReply     = "I can help with our hours, address, parking, dress code, menu questions (gluten-free, vegan, vegetarian, spicy) and reservations. What would you like to know?"
)

type dietaryReply struct {
	match    Predicate
	found    string
	notFound string
	caution  bool
}

// Spicy replies carry no allergy caution while the other dietary kinds always do, including
// when nothing matched.
var dietaryReplies = map[Kind]dietaryReply{
	GlutenFree: {IsGlutenFree, "Gluten-free mains", "I didn't find gluten-free mains.", true},
	Vegan:      {IsVegan, "Vegan dishes", "I didn't find vegan dishes.", true},
	Vegetarian: {IsVegetarian, "Vegetarian dishes", "I didn't find vegetarian dishes.", true},
	Spicy:      {IsSpicy, "Spicier picks", "No marked spicy items right now.", false},
}

type Responder struct {
	catalog *catalog.Catalog
}

func NewResponder(c *catalog.Catalog) *Responder {
	return &Responder{catalog: c}
}

func (r *Responder) Render(intent Intent) Reply {
	facts := r.catalog.Facts()

	switch intent.Name {
	case Hours:
		return Reply{Reply: fmt.Sprintf("We're open %s.", facts.Hours)}
	case Location:
		return Reply{Reply: fmt.Sprintf("Our address is %s. Parking: %s.", facts.Address, facts.Parking)}
	case Parking:
		return Reply{Reply: fmt.Sprintf("Parking: %s.", facts.Parking)}
	case DressCode:
		return Reply{Reply: fmt.Sprintf("Dress code: %s.", facts.DressCode)}
	case MenuDietary:
		return Reply{Reply: r.menuReply(intent.Kind)}
	case ReservationRequest:
		return Reply{Reply: ReservationPrompt, Followup: ReservationFollowup}
	default:
		return Reply{Reply: FallbackReply}
	}
}

func (r *Responder) menuReply(kind Kind) string {
	tmpl, ok := dietaryReplies[kind]
	if !ok {
		popular := r.catalog.Popular(PopularCount)
		names := make([]string, len(popular))
		for i, item := range popular {
			names[i] = item.Name
		}

		return fmt.Sprintf("Guests often enjoy: %s. Tell me if you need gluten-free/vegan/etc.", strings.Join(names, ", "))
	}

	reply := tmpl.notFound
	if names := FilterNames(r.catalog.Items(), tmpl.match); len(names) > 0 {
		reply = fmt.Sprintf("%s: %s.", tmpl.found, strings.Join(names, ", "))
	}
	if tmpl.caution {
		reply += AllergyCaution
	}

	return reply
}
