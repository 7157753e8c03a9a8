package models

import (
	"time"
)

// Event is a kiosk analytics record. Writes are fire-and-forget: a failed
// event never blocks or fails the user action that produced it.
type Event struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
