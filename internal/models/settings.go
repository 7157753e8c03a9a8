package models

import (
	"time"
)

// Settings is the single branding row (id is always 1, written via upsert).
type Settings struct {
	ID           int       `json:"id"`
	ClinicName   string    `json:"clinic_name"`
	Tagline      string    `json:"tagline"`
	LogoPath     string    `json:"logo_path,omitempty"`
	PrimaryColor string    `json:"primary_color"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// DefaultSettings is returned when no row has been saved yet. An absent row
// is not an error.
func DefaultSettings() Settings {
	return Settings{
		ID:           1,
		ClinicName:   "Clinic",
		PrimaryColor: "#1a1a2e",
	}
}
