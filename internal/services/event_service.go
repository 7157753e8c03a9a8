package services

import (
	"context"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
)

type EventService struct {
	EventRepo *repositories.EventRepository
}

func (s *EventService) Record(ctx context.Context, event models.Event) error {
	return s.EventRepo.CreateEvent(ctx, event)
}
