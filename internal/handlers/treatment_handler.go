package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"clinicBack/internal/models"
	"clinicBack/internal/services"
)

type TreatmentHandler struct {
	Service *services.TreatmentService
	// OnContentChange is called after a successful write so the kiosk cache
	// is invalidated and connected displays get a refresh ping.
	OnContentChange func(ctx context.Context)
}

func (h *TreatmentHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	form, ok := h.treatmentFormFromRequest(w, r, 0)
	if !ok {
		return
	}

	created, err := h.Service.SaveTreatment(r.Context(), form)
	if err != nil {
		http.Error(w, "Failed to create treatment", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *TreatmentHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := treatmentIDParam(w, r)
	if !ok {
		return
	}

	form, ok := h.treatmentFormFromRequest(w, r, id)
	if !ok {
		return
	}

	updated, err := h.Service.SaveTreatment(r.Context(), form)
	if err != nil {
		if errors.Is(err, models.ErrTreatmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update treatment", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *TreatmentHandler) GetTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.Service.GetAllTreatments(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(treatments)
}

func (h *TreatmentHandler) GetTreatmentByID(w http.ResponseWriter, r *http.Request) {
	id, ok := treatmentIDParam(w, r)
	if !ok {
		return
	}

	treatment, err := h.Service.GetTreatmentDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTreatmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(treatment)
}

func (h *TreatmentHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := treatmentIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteTreatment(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrTreatmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// treatmentFormFromRequest parses the admin's multipart form: scalar fields,
// the JSON-encoded price options, both relation id lists, and the optionally
// staged cover image (cropped to the cover format before upload). Returns
// ok=false after writing the error response.
func (h *TreatmentHandler) treatmentFormFromRequest(w http.ResponseWriter, r *http.Request, id int) (services.TreatmentForm, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return services.TreatmentForm{}, false
	}

	var form services.TreatmentForm
	form.Treatment.ID = id
	form.Treatment.Title = r.FormValue("title")
	form.Treatment.Description = r.FormValue("description")
	form.Treatment.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))
	form.Treatment.ImagePath = r.FormValue("image_path")

	if form.Treatment.Title == "" {
		http.Error(w, "Missing treatment title", http.StatusBadRequest)
		return services.TreatmentForm{}, false
	}

	if raw := r.FormValue("price_options"); raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &form.PriceOptions); err != nil {
			http.Error(w, "Invalid price options", http.StatusBadRequest)
			return services.TreatmentForm{}, false
		}
	}

	categoryIDs, err := parseIDList(r.FormValue("category_ids"))
	if err != nil {
		http.Error(w, "Invalid category ids", http.StatusBadRequest)
		return services.TreatmentForm{}, false
	}
	form.CategoryIDs = categoryIDs

	caseIDs, err := parseIDList(r.FormValue("case_ids"))
	if err != nil {
		http.Error(w, "Invalid case ids", http.StatusBadRequest)
		return services.TreatmentForm{}, false
	}
	form.CaseIDs = caseIDs

	data, _, err := readFormImage(r, "image")
	if err != nil {
		http.Error(w, "Failed to read uploaded image", http.StatusBadRequest)
		return services.TreatmentForm{}, false
	}
	if data != nil {
		rect, hasRect := cropRectFromForm(r)
		cropped, err := cropToSize(data, rect, hasRect, coverWidth, coverHeight)
		if err != nil {
			http.Error(w, "Invalid image upload", http.StatusBadRequest)
			return services.TreatmentForm{}, false
		}
		form.CoverImage = cropped
		form.CoverName = fmt.Sprintf("%s.jpg", uuid.New().String())
	}

	return form, true
}

func (h *TreatmentHandler) contentChanged(ctx context.Context) {
	if h.OnContentChange != nil {
		h.OnContentChange(ctx)
	}
}

func treatmentIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing treatment ID", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid treatment ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
