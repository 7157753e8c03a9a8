package services

import (
	"context"
	"testing"

	"clinicBack/internal/models"
)

// Exercises the full kiosk read path over one shared data set: an admin-built
// treatment linked to a category, resolved from the selection screen and then
// opened on the detail screen, where its gallery case attaches by title match
// because no explicit case link exists.
func TestKioskSelectionToDetailFlow(t *testing.T) {
	ts := newFakeTreatmentStore()
	cs := newFakeCaseStore()
	rs := newFakeRelationStore()

	treatmentSvc := newTreatmentService(ts, cs, rs, nil)
	recoSvc := &RecommendationService{RelationRepo: rs, TreatmentRepo: ts}

	sessions := 1
	saved, err := treatmentSvc.SaveTreatment(context.Background(), TreatmentForm{
		Treatment: models.Treatment{Title: "Botox"},
		PriceOptions: []models.PriceOption{
			{Label: models.PriceLabelEmpty, Sessions: &sessions, Price: 4500, IsActive: true},
		},
		CategoryIDs: []int{1},
	})
	if err != nil {
		t.Fatalf("SaveTreatment returned error: %v", err)
	}
	cs.all = []models.Case{{ID: 7, Title: "Botox"}, {ID: 8, Title: "Filler"}}

	recommended, err := recoSvc.Resolve(context.Background(), []int{1})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(recommended) != 1 || recommended[0].ID != saved.ID {
		t.Fatalf("expected the saved treatment to be recommended, got %#v", recommended)
	}

	detail, err := treatmentSvc.GetTreatmentDetail(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("GetTreatmentDetail returned error: %v", err)
	}
	if len(detail.Cases) != 1 || detail.Cases[0].ID != 7 {
		t.Fatalf("expected title-matched case 7, got %#v", detail.Cases)
	}
	if len(detail.PriceOptions) != 1 {
		t.Fatalf("expected 1 price option, got %d", len(detail.PriceOptions))
	}
	if got := detail.PriceOptions[0].DisplayLabel(); got != "single session" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "single session")
	}
}
