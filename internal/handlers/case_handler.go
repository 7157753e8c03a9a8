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

type CaseHandler struct {
	Service         *services.CaseService
	Storage         services.ObjectStorage
	OnContentChange func(ctx context.Context)
}

// CreateCase saves a before/after case. A treatment_id form field marks the
// inline-create path from the treatment editor.
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	c, treatmentID, ok := h.caseFromRequest(w, r, 0)
	if !ok {
		return
	}

	created, err := h.Service.CreateCase(r.Context(), c, treatmentID)
	if err != nil {
		if errors.Is(err, models.ErrTreatmentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to create case", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CaseHandler) GetCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.Service.GetAllCases(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cases)
}

func (h *CaseHandler) GetCaseByID(w http.ResponseWriter, r *http.Request) {
	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	c, err := h.Service.GetCaseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *CaseHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	c, _, ok := h.caseFromRequest(w, r, id)
	if !ok {
		return
	}

	updated, err := h.Service.UpdateCase(r.Context(), c)
	if err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update case", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	id, ok := caseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteCase(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (h *CaseHandler) caseFromRequest(w http.ResponseWriter, r *http.Request, id int) (models.Case, int, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return models.Case{}, 0, false
	}

	var c models.Case
	c.ID = id
	c.Title = r.FormValue("title")
	c.Description = r.FormValue("description")
	c.ImagePath = r.FormValue("image_path")
	c.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))
	treatmentID, _ := strconv.Atoi(r.FormValue("treatment_id"))

	categoryIDs, err := parseIDList(r.FormValue("category_ids"))
	if err != nil {
		http.Error(w, "Invalid category ids", http.StatusBadRequest)
		return models.Case{}, 0, false
	}
	c.CategoryIDs = categoryIDs

	data, _, err := readFormImage(r, "image")
	if err != nil {
		http.Error(w, "Failed to read uploaded image", http.StatusBadRequest)
		return models.Case{}, 0, false
	}
	if data != nil {
		rect, hasRect := cropRectFromForm(r)
		cropped, err := cropToSize(data, rect, hasRect, coverWidth, coverHeight)
		if err != nil {
			http.Error(w, "Invalid image upload", http.StatusBadRequest)
			return models.Case{}, 0, false
		}

		if h.Storage == nil {
			http.Error(w, "Image uploads are not configured", http.StatusInternalServerError)
			return models.Case{}, 0, false
		}
		path, err := h.Storage.Upload(cropped, fmt.Sprintf("%s.jpg", uuid.New().String()), "cases", "image/jpeg")
		if err != nil {
			// Keep the previous image reference when one exists.
			if c.ImagePath == "" {
				http.Error(w, "Failed to upload image", http.StatusInternalServerError)
				return models.Case{}, 0, false
			}
		} else {
			c.ImagePath = path
		}
	}

	return c, treatmentID, true
}

func (h *CaseHandler) contentChanged(ctx context.Context) {
	if h.OnContentChange != nil {
		h.OnContentChange(ctx)
	}
}

func caseIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing case ID", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid case ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
