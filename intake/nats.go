package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/imkonsowa/restaurant-concierge/config"
	"github.com/imkonsowa/restaurant-concierge/models"
	"github.com/nats-io/nats.go"
)

type NatsClient struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewNatsClient connects to NATS and makes sure the reservations stream exists.
func NewNatsClient(cfg config.Nats) (*NatsClient, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  []string{cfg.ReservationsSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &NatsClient{conn: nc, js: js}, nil
}

func (c *NatsClient) JetStream() nats.JetStreamContext {
	return c.js
}

func (c *NatsClient) Close() {
	c.conn.Close()
}

// Publisher is the part of nats.JetStreamContext the sink needs.
type Publisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// NatsSink publishes reservations as JSON for the recorder to persist.
type NatsSink struct {
	publisher Publisher
	subject   string
}

func NewNatsSink(publisher Publisher, subject string) *NatsSink {
	return &NatsSink{publisher: publisher, subject: subject}
}

func (s *NatsSink) Name() string { return "nats" }

func (s *NatsSink) Store(ctx context.Context, r models.Reservation) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation: %w", err)
	}

	if _, err := s.publisher.Publish(s.subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish reservation: %w", err)
	}

	return nil
}
