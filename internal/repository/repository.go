package repository

import (
	"context"
	"database/sql"
	"time"

	"kasa_bridge/internal/models"
)

// EventRepo stores the command log.
type EventRepo interface {
	Append(ctx context.Context, e models.CommandEvent) error
	List(ctx context.Context, q EventQuery) ([]models.CommandEvent, error)
}

// EventQuery filters List. Zero values disable a filter.
type EventQuery struct {
	From    time.Time
	To      time.Time
	Type    string
	Trigger string
	Limit   int
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
