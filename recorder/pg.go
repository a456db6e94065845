package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/imkonsowa/restaurant-concierge/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Pg struct {
	db *gorm.DB
}

func NewPg(connStr string) (*Pg, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	return &Pg{db: db}, nil
}

func (p *Pg) Migrate(ctx context.Context) error {
	return p.db.WithContext(ctx).AutoMigrate(&models.Reservation{})
}

// SaveReservation inserts r; a redelivered message with a known id is a no-op.
func (p *Pg) SaveReservation(ctx context.Context, r *models.Reservation) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r).Error
}
