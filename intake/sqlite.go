package intake

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imkonsowa/restaurant-concierge/models"
	_ "github.com/mattn/go-sqlite3"
)

const createReservations = `CREATE TABLE IF NOT EXISTS reservations (
	id TEXT PRIMARY KEY,
	name TEXT,
	party_size TEXT,
	"when" TEXT,
	phone TEXT,
	email TEXT,
	notes TEXT,
	received_at TIMESTAMP NOT NULL
)`

// SQLiteSink keeps a local file of reservations for single-host deployments.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err := db.Exec(createReservations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create reservations table: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }

func (s *SQLiteSink) Store(ctx context.Context, r models.Reservation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reservations (id, name, party_size, "when", phone, email, notes, received_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name.String(), r.PartySize.String(), r.When.String(), r.Phone.String(), r.Email.String(), r.Notes.String(), r.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
