package services

import (
	"context"
	"log"
	"strings"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
)

// CaseCRUDStore is the case repository surface the case service needs; the
// tier lookups live on CaseStore and stay with the treatment service.
type CaseCRUDStore interface {
	CreateCase(ctx context.Context, c models.Case) (models.Case, error)
	GetCaseByID(ctx context.Context, id int) (models.Case, error)
	GetAllCases(ctx context.Context) ([]models.Case, error)
	UpdateCase(ctx context.Context, c models.Case) (models.Case, error)
	DeleteCase(ctx context.Context, id int) error
}

type TreatmentTitleFinder interface {
	GetTreatmentByID(ctx context.Context, id int) (models.Treatment, error)
}

type CaseService struct {
	CaseRepo      CaseCRUDStore
	TreatmentRepo TreatmentTitleFinder
	RelationRepo  RelationStore
	ErrorLog      *log.Logger
}

// CreateCase saves a new gallery case. treatmentID > 0 is the inline-create
// path from the treatment editor: a blank title defaults to the treatment's
// title so the title matcher still associates the pair even if the explicit
// link row below is never written, and the explicit link is appended to the
// treatment's current selection.
func (s *CaseService) CreateCase(ctx context.Context, c models.Case, treatmentID int) (models.Case, error) {
	if treatmentID > 0 && strings.TrimSpace(c.Title) == "" {
		treatment, err := s.TreatmentRepo.GetTreatmentByID(ctx, treatmentID)
		if err != nil {
			return models.Case{}, err
		}
		c.Title = treatment.Title
	}

	created, err := s.CaseRepo.CreateCase(ctx, c)
	if err != nil {
		return models.Case{}, err
	}

	if len(c.CategoryIDs) > 0 {
		if err := s.RelationRepo.ReplaceRelations(ctx, repositories.CaseCategories, created.ID, c.CategoryIDs); err != nil {
			s.logWarn("replacing category relations for case %d failed: %v", created.ID, err)
		}
		created.CategoryIDs = c.CategoryIDs
	}

	if treatmentID > 0 {
		current, err := s.RelationRepo.ListCaseRelations(ctx, treatmentID)
		if err != nil {
			s.logWarn("listing case relations for treatment %d failed: %v", treatmentID, err)
			current = nil
		}
		if err := s.RelationRepo.ReplaceCaseRelations(ctx, treatmentID, append(current, created.ID)); err != nil {
			s.logWarn("linking case %d to treatment %d failed: %v", created.ID, treatmentID, err)
		}
	}

	return created, nil
}

func (s *CaseService) GetCaseByID(ctx context.Context, id int) (models.Case, error) {
	c, err := s.CaseRepo.GetCaseByID(ctx, id)
	if err != nil {
		return models.Case{}, err
	}
	if categoryIDs, err := s.RelationRepo.ListRelations(ctx, repositories.CaseCategories, id); err == nil {
		c.CategoryIDs = categoryIDs
	}
	return c, nil
}

func (s *CaseService) GetAllCases(ctx context.Context) ([]models.Case, error) {
	return s.CaseRepo.GetAllCases(ctx)
}

func (s *CaseService) UpdateCase(ctx context.Context, c models.Case) (models.Case, error) {
	updated, err := s.CaseRepo.UpdateCase(ctx, c)
	if err != nil {
		return models.Case{}, err
	}

	if err := s.RelationRepo.ReplaceRelations(ctx, repositories.CaseCategories, updated.ID, c.CategoryIDs); err != nil {
		s.logWarn("replacing category relations for case %d failed: %v", updated.ID, err)
	}
	updated.CategoryIDs = c.CategoryIDs

	return updated, nil
}

func (s *CaseService) DeleteCase(ctx context.Context, id int) error {
	return s.CaseRepo.DeleteCase(ctx, id)
}

func (s *CaseService) logWarn(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
