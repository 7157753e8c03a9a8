package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinicBack/internal/models"
	"clinicBack/internal/services"
)

type RecommendationHandler struct {
	Service *services.RecommendationService
}

type recommendationRequest struct {
	CategoryIDs []int `json:"category_ids"`
}

// GetRecommendations resolves the kiosk's selected improvement categories to
// a treatment list. An empty selection is a 400 (the kiosk goes back to the
// selection screen); an empty result is a 200 with an empty list.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	treatments, err := h.Service.Resolve(r.Context(), req.CategoryIDs)
	if err != nil {
		if errors.Is(err, models.ErrNoCategoriesSelected) {
			http.Error(w, "Select at least one improvement category", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if treatments == nil {
		treatments = []models.Treatment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(treatments)
}
