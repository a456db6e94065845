package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_AcceptsLooseValues(t *testing.T) {
	var r Reservation
	err := json.Unmarshal([]byte(`{"name":"Ada","partySize":4,"when":"Fri 7pm","phone":null,"notes":"window seat"}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "Ada", r.Name.String())
	assert.Equal(t, Loose("4"), r.PartySize)
	assert.Equal(t, "Fri 7pm", r.When.String())
	assert.Equal(t, Loose(""), r.Phone)
	assert.Equal(t, Loose(""), r.Email)
	assert.Equal(t, "window seat", r.Notes.String())
}

func TestReservation_PartySizeAsString(t *testing.T) {
	var r Reservation
	require.NoError(t, json.Unmarshal([]byte(`{"partySize":"six"}`), &r))

	assert.Equal(t, Text("six"), r.PartySize)
	assert.Equal(t, "six", r.PartySize.String())
}

func TestReservation_KeepsCompositeValues(t *testing.T) {
	var r Reservation
	require.NoError(t, json.Unmarshal([]byte(`{"name":{"first":"Ada"},"partySize":[4]}`), &r))

	assert.Equal(t, Loose(`{"first":"Ada"}`), r.Name)
	assert.Equal(t, Loose(`[4]`), r.PartySize)
	assert.Equal(t, `{"first":"Ada"}`, r.Name.String())
}

func TestReservation_MarshalForwardsVerbatim(t *testing.T) {
	in := `{"id":"","name":{"first":"Ada"},"partySize":4,"when":"Fri 7pm","phone":null,"email":null,"notes":"window","receivedAt":"0001-01-01T00:00:00Z"}`

	var r Reservation
	require.NoError(t, json.Unmarshal([]byte(in), &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestLoose_MarshalsPlainText(t *testing.T) {
	out, err := json.Marshal(Reservation{Name: "Ada", PartySize: "4"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, float64(4), got["partySize"])
	assert.Nil(t, got["phone"])
}

func TestReservation_Stringify(t *testing.T) {
	r := Reservation{Name: Text("Ada"), PartySize: "4", When: Text("Fri 7pm"), Email: Text("ada@example.com")}

	assert.Equal(t, "Reservation: Ada, Party: 4, When: Fri 7pm, Contact: ada@example.com", r.Stringify())
}

func TestMenuItem_SpiceLevelDefaultsToZero(t *testing.T) {
	var menu Menu
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"name":"Soup"}]}`), &menu))

	require.Len(t, menu.Items, 1)
	assert.Equal(t, 0, menu.Items[0].SpiceLevel)
}
