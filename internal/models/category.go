package models

import (
	"time"
)

// ImprovementCategory is what a patient picks on the kiosk ("wrinkles",
// "pigmentation", ...). Icon is either a symbolic icon name or the path of an
// uploaded square image.
type ImprovementCategory struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
