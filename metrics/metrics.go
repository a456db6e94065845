package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_chat_intents_total",
			Help: "Chat messages answered, by classified intent",
		},
		[]string{"intent", "kind"},
	)

	ChatRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_chat_rejected_total",
			Help: "Chat requests rejected for a missing message",
		},
	)

	ReservationsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_reservations_received_total",
			Help: "Reservation intake payloads acknowledged",
		},
	)

	IntakeSinkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_intake_sink_failures_total",
			Help: "Reservation forwards that a sink failed to store",
		},
		[]string{"sink"},
	)
)
