package services

import (
	"context"
	"errors"
	"testing"

	"clinicBack/internal/models"
)

func newRecommendationFixture() (*RecommendationService, *fakeTreatmentStore, *fakeRelationStore) {
	ts := newFakeTreatmentStore()
	rs := newFakeRelationStore()
	svc := &RecommendationService{RelationRepo: rs, TreatmentRepo: ts}
	return svc, ts, rs
}

func TestResolveEmptySelectionRejectedBeforeAnyLookup(t *testing.T) {
	svc, _, rs := newRecommendationFixture()

	_, err := svc.Resolve(context.Background(), nil)
	if !errors.Is(err, models.ErrNoCategoriesSelected) {
		t.Fatalf("expected ErrNoCategoriesSelected, got %v", err)
	}
	if rs.categoryQueryCalls != 0 {
		t.Errorf("relation store queried %d times for an empty selection, want 0", rs.categoryQueryCalls)
	}
}

func TestResolveUnionOfSelectedCategories(t *testing.T) {
	svc, ts, rs := newRecommendationFixture()

	ts.treatments[1] = models.Treatment{ID: 1, Title: "Botox", SortOrder: 1}
	ts.treatments[2] = models.Treatment{ID: 2, Title: "Pico Laser", SortOrder: 2}
	ts.treatments[3] = models.Treatment{ID: 3, Title: "Filler", SortOrder: 3}
	rs.links["treatment_categories:1"] = []int{10}
	rs.links["treatment_categories:2"] = []int{20}
	rs.links["treatment_categories:3"] = []int{10, 20}

	single := func(categoryID int) map[int]struct{} {
		got, err := svc.Resolve(context.Background(), []int{categoryID})
		if err != nil {
			t.Fatalf("Resolve(%d) returned error: %v", categoryID, err)
		}
		ids := make(map[int]struct{}, len(got))
		for _, tr := range got {
			ids[tr.ID] = struct{}{}
		}
		return ids
	}

	want := single(10)
	for id := range single(20) {
		want[id] = struct{}{}
	}

	for _, selection := range [][]int{{10, 20}, {20, 10}} {
		got, err := svc.Resolve(context.Background(), selection)
		if err != nil {
			t.Fatalf("Resolve(%v) returned error: %v", selection, err)
		}
		if len(got) != len(want) {
			t.Fatalf("Resolve(%v) returned %d treatments, want %d", selection, len(got), len(want))
		}
		for _, tr := range got {
			if _, ok := want[tr.ID]; !ok {
				t.Errorf("Resolve(%v) returned unexpected treatment %d", selection, tr.ID)
			}
		}
	}
}

func TestResolveNoMatchesReturnsEmptyList(t *testing.T) {
	svc, _, _ := newRecommendationFixture()

	got, err := svc.Resolve(context.Background(), []int{99})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected an empty list, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no treatments, got %d", len(got))
	}
}

func TestResolveFallsBackToFlatRowsOnNestedFetchFailure(t *testing.T) {
	svc, ts, rs := newRecommendationFixture()

	sessions := 3
	ts.treatments[1] = models.Treatment{
		ID:           1,
		Title:        "Botox",
		PriceOptions: []models.PriceOption{{Sessions: &sessions, Price: 9000}},
	}
	rs.links["treatment_categories:1"] = []int{10}
	ts.nestedErr = errors.New("join blew up")

	got, err := svc.Resolve(context.Background(), []int{10})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result: %#v", got)
	}
	if got[0].PriceOptions != nil {
		t.Errorf("flat fallback should carry no price options, got %#v", got[0].PriceOptions)
	}
}

func TestResolveSortsPriceOptions(t *testing.T) {
	svc, ts, rs := newRecommendationFixture()

	ts.treatments[1] = models.Treatment{
		ID:    1,
		Title: "Botox",
		PriceOptions: []models.PriceOption{
			{SortOrder: 1, Price: 100},
			{SortOrder: 0, Price: 200},
			{SortOrder: 0, Price: 150},
		},
	}
	rs.links["treatment_categories:1"] = []int{10}

	got, err := svc.Resolve(context.Background(), []int{10})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 treatment, got %d", len(got))
	}

	prices := []int{150, 200, 100}
	for i, opt := range got[0].PriceOptions {
		if opt.Price != prices[i] {
			t.Errorf("option %d: price = %v, want %v", i, opt.Price, prices[i])
		}
	}
}
