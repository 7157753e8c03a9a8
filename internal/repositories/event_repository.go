package repositories

import (
	"context"
	"database/sql"
	"time"

	"clinicBack/internal/models"
)

type EventRepository struct {
	DB *sql.DB
}

func (r *EventRepository) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (name, payload, created_at) VALUES (?, ?, ?)`,
		event.Name, event.Payload, time.Now(),
	)
	return err
}
