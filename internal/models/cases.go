package models

import (
	"time"
)

// Case is a before/after testimonial shown on the treatment detail screen.
type Case struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImagePath    string    `json:"image_path,omitempty"`
	SortOrder    int       `json:"sort_order"`
	CategoryIDs  []int     `json:"category_ids,omitempty"`
	TreatmentIDs []int     `json:"treatment_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
