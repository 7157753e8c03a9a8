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

type CategoryHandler struct {
	Service         *services.CategoryService
	Storage         services.ObjectStorage
	OnContentChange func(ctx context.Context)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.categoryFromRequest(w, r, 0)
	if !ok {
		return
	}

	created, err := h.Service.CreateCategory(r.Context(), category)
	if err != nil {
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetActiveCategories is the kiosk selection screen: active categories only.
func (h *CategoryHandler) GetActiveCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetActiveCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if categories == nil {
		categories = []models.ImprovementCategory{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryIDParam(w, r)
	if !ok {
		return
	}

	category, err := h.Service.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryIDParam(w, r)
	if !ok {
		return
	}

	category, ok := h.categoryFromRequest(w, r, id)
	if !ok {
		return
	}

	updated, err := h.Service.UpdateCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.contentChanged(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// categoryFromRequest parses the multipart form. The icon is either the
// symbolic name in the "icon" field or an uploaded image, square-cropped to
// the icon size; an uploaded file wins over the field.
func (h *CategoryHandler) categoryFromRequest(w http.ResponseWriter, r *http.Request, id int) (models.ImprovementCategory, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return models.ImprovementCategory{}, false
	}

	var category models.ImprovementCategory
	category.ID = id
	category.Name = r.FormValue("name")
	category.Icon = r.FormValue("icon")
	category.Description = r.FormValue("description")
	category.SortOrder, _ = strconv.Atoi(r.FormValue("sort_order"))
	category.IsActive = r.FormValue("is_active") != "false"

	if category.Name == "" {
		http.Error(w, "Missing category name", http.StatusBadRequest)
		return models.ImprovementCategory{}, false
	}

	data, _, err := readFormImage(r, "icon_image")
	if err != nil {
		http.Error(w, "Failed to read uploaded icon", http.StatusBadRequest)
		return models.ImprovementCategory{}, false
	}
	if data != nil {
		rect, hasRect := cropRectFromForm(r)
		cropped, err := cropToSize(data, rect, hasRect, iconSize, iconSize)
		if err != nil {
			http.Error(w, "Invalid icon upload", http.StatusBadRequest)
			return models.ImprovementCategory{}, false
		}

		if h.Storage == nil {
			http.Error(w, "Icon uploads are not configured", http.StatusInternalServerError)
			return models.ImprovementCategory{}, false
		}
		path, err := h.Storage.Upload(cropped, fmt.Sprintf("%s.jpg", uuid.New().String()), "categories", "image/jpeg")
		if err != nil {
			// No fallback value for a brand new icon: this one is blocking.
			if category.Icon == "" {
				http.Error(w, "Failed to upload icon", http.StatusInternalServerError)
				return models.ImprovementCategory{}, false
			}
		} else {
			category.Icon = path
		}
	}

	return category, true
}

func (h *CategoryHandler) contentChanged(ctx context.Context) {
	if h.OnContentChange != nil {
		h.OnContentChange(ctx)
	}
}

func categoryIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := r.URL.Query().Get(":id")
	if idStr == "" {
		http.Error(w, "Missing category ID", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
