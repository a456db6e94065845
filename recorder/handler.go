package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imkonsowa/restaurant-concierge/models"
	"go.uber.org/zap"
)

type ReservationStore interface {
	SaveReservation(ctx context.Context, r *models.Reservation) error
}

type Handler struct {
	store  ReservationStore
	logger *zap.Logger
}

func NewHandler(store ReservationStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// HandleReservationMessage persists one reservation published by the concierge nats sink.
func (h *Handler) HandleReservationMessage(ctx context.Context, msg []byte) error {
	var reservation models.Reservation
	if err := json.Unmarshal(msg, &reservation); err != nil {
		return fmt.Errorf("failed to decode reservation: %w", err)
	}

	if reservation.ID == "" {
		return fmt.Errorf("reservation without id")
	}

	if err := h.store.SaveReservation(ctx, &reservation); err != nil {
		return fmt.Errorf("failed to save reservation %s: %w", reservation.ID, err)
	}

	h.logger.Info("reservation recorded",
		zap.String("id", reservation.ID),
		zap.String("reservation", reservation.Stringify()),
	)

	return nil
}
