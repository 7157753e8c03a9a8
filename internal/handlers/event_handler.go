package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"clinicBack/internal/models"
	"clinicBack/internal/services"
)

type EventHandler struct {
	Service  *services.EventService
	ErrorLog *log.Logger
}

// TrackEvent records a kiosk analytics event. The write is fire-and-forget:
// the response goes out immediately and a failed insert is only logged, so
// tracking never delays or breaks a page transition.
func (h *EventHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if event.Name == "" {
		http.Error(w, "Missing event name", http.StatusBadRequest)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Service.Record(ctx, event); err != nil && h.ErrorLog != nil {
			h.ErrorLog.Printf("recording event %q failed: %v", event.Name, err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}
