package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Facts struct {
	Hours     string `json:"hours" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Parking   string `json:"parking" validate:"required"`
	DressCode string `json:"dress_code" validate:"required"`
}

type MenuItem struct {
	Name         string `json:"name" validate:"required"`
	IsVegan      bool   `json:"is_vegan"`
	IsVegetarian bool   `json:"is_vegetarian"`
	IsGlutenFree bool   `json:"is_gluten_free"`
	SpiceLevel   int    `json:"spice_level" validate:"gte=0"`
}

// Menu mirrors the menu document, {"items": [...]}. Item order is meaningful.
type Menu struct {
	Items []MenuItem `json:"items" validate:"dive"`
}

// Loose holds one intake field as the raw JSON the client sent, so any JSON value is forwarded
// verbatim. The zero value means the field was absent or null.
type Loose string

// Text returns the Loose form of a plain string.
func Text(s string) Loose {
	b, _ := json.Marshal(s)
	return Loose(b)
}

// String returns the unquoted value for JSON strings and the raw JSON text for anything else.
func (l Loose) String() string {
	var s string
	if err := json.Unmarshal([]byte(l), &s); err == nil {
		return s
	}

	return string(l)
}

func (l *Loose) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}

	*l = Loose(data)
	return nil
}

func (l Loose) MarshalJSON() ([]byte, error) {
	if l == "" {
		return []byte("null"), nil
	}
	if !json.Valid([]byte(l)) {
		return json.Marshal(string(l))
	}

	return []byte(l), nil
}

// Value stores the readable form in text columns.
func (l Loose) Value() (driver.Value, error) {
	return l.String(), nil
}

// Reservation is the intake payload. Nothing is validated; fields are forwarded as given.
type Reservation struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       Loose     `json:"name"`
	PartySize  Loose     `json:"partySize"`
	When       Loose     `json:"when"`
	Phone      Loose     `json:"phone"`
	Email      Loose     `json:"email"`
	Notes      Loose     `json:"notes"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (r *Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) Stringify() string {
	return fmt.Sprintf("Reservation: %s, Party: %s, When: %s, Contact: %s", r.Name, r.PartySize, r.When, strings.TrimSpace(r.Phone.String()+" "+r.Email.String()))
}
