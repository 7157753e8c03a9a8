package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinicBack/internal/models"
	"clinicBack/internal/services"
)

type stubRelationFinder struct {
	ids []int
}

func (s *stubRelationFinder) TreatmentIDsForCategories(ctx context.Context, categoryIDs []int) ([]int, error) {
	return s.ids, nil
}

type stubTreatmentFinder struct {
	treatments []models.Treatment
}

func (s *stubTreatmentFinder) GetTreatmentsByIDs(ctx context.Context, ids []int) ([]models.Treatment, error) {
	return s.treatments, nil
}

func (s *stubTreatmentFinder) GetTreatmentsFlatByIDs(ctx context.Context, ids []int) ([]models.Treatment, error) {
	return s.treatments, nil
}

func newRecommendationHandler(ids []int, treatments []models.Treatment) *RecommendationHandler {
	return &RecommendationHandler{
		Service: &services.RecommendationService{
			RelationRepo:  &stubRelationFinder{ids: ids},
			TreatmentRepo: &stubTreatmentFinder{treatments: treatments},
		},
	}
}

func TestGetRecommendationsEmptySelection(t *testing.T) {
	h := newRecommendationHandler(nil, nil)

	r := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"category_ids":[]}`))
	w := httptest.NewRecorder()
	h.GetRecommendations(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetRecommendationsInvalidBody(t *testing.T) {
	h := newRecommendationHandler(nil, nil)

	r := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.GetRecommendations(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetRecommendationsNoMatchesReturnsEmptyArray(t *testing.T) {
	h := newRecommendationHandler(nil, nil)

	r := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"category_ids":[5]}`))
	w := httptest.NewRecorder()
	h.GetRecommendations(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want empty array", body)
	}
}

func TestGetRecommendationsReturnsTreatments(t *testing.T) {
	h := newRecommendationHandler([]int{1}, []models.Treatment{{ID: 1, Title: "Botox"}})

	r := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"category_ids":[5]}`))
	w := httptest.NewRecorder()
	h.GetRecommendations(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got []models.Treatment
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Botox" {
		t.Fatalf("unexpected response: %#v", got)
	}
}
