package chat

type Name string

const (
	Hours              Name = "hours"
	Location           Name = "location"
	Parking            Name = "parking"
	DressCode          Name = "dress_code"
	MenuDietary        Name = "menu_dietary"
	ReservationRequest Name = "reservation_request"
	Fallback           Name = "fallback"
)

// Kind narrows a MenuDietary intent. It is empty for every other intent.
type Kind string

const (
	GlutenFree Kind = "gluten_free"
	Vegan      Kind = "vegan"
	Vegetarian Kind = "vegetarian"
	Spicy      Kind = "spicy"
	General    Kind = "general"
)

type Intent struct {
	Name Name `json:"name"`
	Kind Kind `json:"kind,omitempty"`
}

// ReservationFollowup tells the client to collect structured booking fields next.
const ReservationFollowup = "reservation_intake"

type Reply struct {
	Reply    string `json:"reply"`
	Followup string `json:"followup,omitempty"`
}
