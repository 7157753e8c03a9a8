package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"clinicBack/internal/models"
	"clinicBack/internal/services"
)

type SettingsHandler struct {
	Service         *services.SettingsService
	Storage         services.ObjectStorage
	OnContentChange func(ctx context.Context)
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpsertSettings writes the single branding row. A failed logo upload keeps
// the previous logo and the rest of the save still goes through.
func (h *SettingsHandler) UpsertSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var settings models.Settings
	settings.ClinicName = r.FormValue("clinic_name")
	settings.Tagline = r.FormValue("tagline")
	settings.LogoPath = r.FormValue("logo_path")
	settings.PrimaryColor = r.FormValue("primary_color")

	if settings.ClinicName == "" {
		http.Error(w, "Missing clinic name", http.StatusBadRequest)
		return
	}

	data, _, err := readFormImage(r, "logo")
	if err != nil {
		http.Error(w, "Failed to read uploaded logo", http.StatusBadRequest)
		return
	}
	if data != nil && h.Storage != nil {
		rect, hasRect := cropRectFromForm(r)
		cropped, err := cropToSize(data, rect, hasRect, iconSize, iconSize)
		if err != nil {
			http.Error(w, "Invalid logo upload", http.StatusBadRequest)
			return
		}
		if path, err := h.Storage.Upload(cropped, fmt.Sprintf("%s.jpg", uuid.New().String()), "branding", "image/jpeg"); err == nil {
			settings.LogoPath = path
		}
	}

	saved, err := h.Service.UpsertSettings(r.Context(), settings)
	if err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	if h.OnContentChange != nil {
		h.OnContentChange(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}
