package models

import (
	"fmt"
	"sort"
	"time"
)

type Treatment struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	SortOrder    int           `json:"sort_order"`
	ImagePath    string        `json:"image_path,omitempty"`
	PriceOptions []PriceOption `json:"price_options,omitempty"`
	CategoryIDs  []int         `json:"category_ids,omitempty"`
	Cases        []Case        `json:"cases,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at,omitempty"`
}

// PriceLabelEmpty marks a price option whose display label should be derived
// from the session count instead of stored text.
const PriceLabelEmpty = "EMPTY"

type PriceOption struct {
	ID          int    `json:"id"`
	TreatmentID int    `json:"treatment_id"`
	Label       string `json:"label"`
	Sessions    *int   `json:"sessions"`
	Price       int    `json:"price"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

func (p PriceOption) DisplayLabel() string {
	if p.Label != "" && p.Label != PriceLabelEmpty {
		return p.Label
	}
	if p.Sessions == nil {
		return ""
	}
	if *p.Sessions == 1 {
		return "single session"
	}
	return fmt.Sprintf("%d sessions", *p.Sessions)
}

// SortPriceOptions orders options by sort position, cheapest first on ties.
func SortPriceOptions(options []PriceOption) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].SortOrder != options[j].SortOrder {
			return options[i].SortOrder < options[j].SortOrder
		}
		return options[i].Price < options[j].Price
	})
}
