// Package intake forwards reservation requests to whatever sinks are configured. Callers only
// see SubmitReservation, which always acknowledges; storage problems are logged and counted.
package intake

import (
	"context"

	"github.com/imkonsowa/restaurant-concierge/models"
)

type AckStatus string

const AckReceived AckStatus = "received"

// Submitter is the capability the HTTP layer depends on.
type Submitter interface {
	SubmitReservation(ctx context.Context, reservation models.Reservation) AckStatus
}

// Sink stores or forwards one reservation.
type Sink interface {
	Name() string
	Store(ctx context.Context, reservation models.Reservation) error
}
