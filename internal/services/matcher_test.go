package services

import (
	"testing"

	"clinicBack/internal/models"
)

func TestMatchCasesByTitle(t *testing.T) {
	cases := []models.Case{
		{ID: 1, Title: "Pico Laser"},
		{ID: 2, Title: "Pico Laser Pro"},
		{ID: 3, Title: "pico laser"},
		{ID: 4, Title: "  Pico Laser  "},
	}

	tests := []struct {
		name    string
		title   string
		wantIDs []int
	}{
		{"exact match", "Pico Laser", []int{1, 4}},
		{"surrounding whitespace trimmed", "  Pico Laser  ", []int{1, 4}},
		{"case sensitive", "PICO LASER", nil},
		{"no partial match", "Pico", nil},
		{"blank title matches nothing", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchCasesByTitle(cases, tt.title)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d cases, want %d", len(got), len(tt.wantIDs))
			}
			for i, c := range got {
				if c.ID != tt.wantIDs[i] {
					t.Errorf("case %d: id = %d, want %d", i, c.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestMatchCasesByTitleDoesNotMutateInput(t *testing.T) {
	cases := []models.Case{{ID: 1, Title: "Botox"}, {ID: 2, Title: "Filler"}}
	MatchCasesByTitle(cases, "Filler")
	if cases[0].ID != 1 || cases[1].ID != 2 {
		t.Fatalf("input slice reordered: %#v", cases)
	}
}
