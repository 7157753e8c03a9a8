package services

import (
	"context"
	"log"

	"clinicBack/internal/models"
	"clinicBack/internal/repositories"
)

type TreatmentStore interface {
	CreateTreatment(ctx context.Context, treatment models.Treatment) (models.Treatment, error)
	GetTreatmentByID(ctx context.Context, id int) (models.Treatment, error)
	GetAllTreatments(ctx context.Context) ([]models.Treatment, error)
	UpdateTreatment(ctx context.Context, treatment models.Treatment) (models.Treatment, error)
	UpdateTreatmentTitle(ctx context.Context, id int, title string) error
	DeleteTreatment(ctx context.Context, id int) error
	ReplacePriceOptions(ctx context.Context, treatmentID int, options []models.PriceOption) error
}

type CaseStore interface {
	ActiveCasesForTreatment(ctx context.Context, treatmentID int) ([]models.Case, error)
	LegacyCasesForTreatment(ctx context.Context, treatmentID int) ([]models.Case, error)
	GetAllCases(ctx context.Context) ([]models.Case, error)
}

type RelationStore interface {
	ListRelations(ctx context.Context, table repositories.RelationTable, entityID int) ([]int, error)
	ListCaseRelations(ctx context.Context, treatmentID int) ([]int, error)
	ReplaceRelations(ctx context.Context, table repositories.RelationTable, entityID int, counterpartIDs []int) error
	ReplaceCaseRelations(ctx context.Context, treatmentID int, caseIDs []int) error
}

type ObjectStorage interface {
	Upload(file []byte, fileName, folder, contentType string) (string, error)
}

// TreatmentForm is one admin save: the entity row, its owned price options,
// the current relation selections, and an optionally staged cover image.
type TreatmentForm struct {
	Treatment    models.Treatment
	PriceOptions []models.PriceOption
	CategoryIDs  []int
	CaseIDs      []int
	CoverImage   []byte
	CoverName    string
}

type TreatmentService struct {
	TreatmentRepo TreatmentStore
	CaseRepo      CaseStore
	RelationRepo  RelationStore
	Storage       ObjectStorage
	ErrorLog      *log.Logger
}

// SaveTreatment runs the admin save as an ordered best-effort sequence.
// There is no cross-table transaction: the entity write is the only step
// whose failure fails the save; relation replacement failures are logged and
// the save still reports success, matching the admin UI's non-blocking
// warnings.
func (s *TreatmentService) SaveTreatment(ctx context.Context, form TreatmentForm) (models.Treatment, error) {
	t := form.Treatment

	// Step 1: staged cover image. A storage hiccup keeps the previous
	// reference and must never block text-field edits.
	if len(form.CoverImage) > 0 && s.Storage != nil {
		path, err := s.Storage.Upload(form.CoverImage, form.CoverName, "treatments", "image/jpeg")
		if err != nil {
			s.logWarn("cover upload failed, keeping previous image: %v", err)
		} else {
			t.ImagePath = path
		}
	}

	// Step 2: the entity row and its owned price options.
	if t.ID == 0 {
		created, err := s.TreatmentRepo.CreateTreatment(ctx, t)
		if err != nil {
			return models.Treatment{}, err
		}
		t = created
		if len(form.PriceOptions) > 0 {
			if err := s.TreatmentRepo.ReplacePriceOptions(ctx, t.ID, form.PriceOptions); err != nil {
				return models.Treatment{}, err
			}
		}
		s.replaceRelationSteps(ctx, t.ID, form, true)
		return t, nil
	}

	current, err := s.TreatmentRepo.GetTreatmentByID(ctx, t.ID)
	if err != nil {
		return models.Treatment{}, err
	}
	if t.ImagePath == "" {
		t.ImagePath = current.ImagePath
	}

	// Diff against the stored row and skip an unchanged write. The skip is
	// what keeps a no-op save from tripping the trigger-recursion limit on
	// the treatments table at all.
	if treatmentChanged(current, t) {
		updated, err := s.TreatmentRepo.UpdateTreatment(ctx, t)
		if err != nil {
			if !repositories.IsTriggerRecursionError(err) {
				return models.Treatment{}, err
			}
			// Full payload re-fired the trigger chain; retry with the
			// minimal single-field update.
			s.logWarn("treatment update hit trigger recursion limit, retrying title only: %v", err)
			if err := s.TreatmentRepo.UpdateTreatmentTitle(ctx, t.ID, t.Title); err != nil {
				return models.Treatment{}, err
			}
		} else {
			t = updated
		}
	}

	if priceOptionsChanged(current.PriceOptions, form.PriceOptions) {
		if err := s.TreatmentRepo.ReplacePriceOptions(ctx, t.ID, form.PriceOptions); err != nil {
			return models.Treatment{}, err
		}
	}

	s.replaceRelationSteps(ctx, t.ID, form, false)
	return t, nil
}

// replaceRelationSteps is steps 3 and 4 of the save: category links, then
// case links. Independent failure domains; neither rolls back the entity
// write nor blocks the other. On update, an unchanged selection issues no
// writes at all.
func (s *TreatmentService) replaceRelationSteps(ctx context.Context, treatmentID int, form TreatmentForm, created bool) {
	writeCategories := len(form.CategoryIDs) > 0
	writeCases := len(form.CaseIDs) > 0
	if !created {
		currentCats, err := s.RelationRepo.ListRelations(ctx, repositories.TreatmentCategories, treatmentID)
		if err == nil {
			writeCategories = !sameIDSet(currentCats, form.CategoryIDs)
		}
		currentCases, err := s.RelationRepo.ListCaseRelations(ctx, treatmentID)
		if err == nil {
			// Order matters here: display_order is the selection index.
			writeCases = !sameIDList(currentCases, form.CaseIDs)
		}
	}

	if writeCategories {
		if err := s.RelationRepo.ReplaceRelations(ctx, repositories.TreatmentCategories, treatmentID, form.CategoryIDs); err != nil {
			s.logWarn("replacing category relations for treatment %d failed: %v", treatmentID, err)
		}
	}
	if writeCases {
		if err := s.RelationRepo.ReplaceCaseRelations(ctx, treatmentID, form.CaseIDs); err != nil {
			s.logWarn("replacing case relations for treatment %d failed: %v", treatmentID, err)
		}
	}
}

// GetTreatmentDetail assembles a treatment with sorted price options, its
// category links, and its cases resolved through the three tiers.
func (s *TreatmentService) GetTreatmentDetail(ctx context.Context, id int) (models.Treatment, error) {
	t, err := s.TreatmentRepo.GetTreatmentByID(ctx, id)
	if err != nil {
		return models.Treatment{}, err
	}
	models.SortPriceOptions(t.PriceOptions)

	if categoryIDs, err := s.RelationRepo.ListRelations(ctx, repositories.TreatmentCategories, id); err == nil {
		t.CategoryIDs = categoryIDs
	} else {
		s.logWarn("listing category relations for treatment %d failed: %v", id, err)
	}

	t.Cases = dedupeCases(s.resolveCases(ctx, t))
	return t, nil
}

// resolveCases tries the three tiers in order and stops at the first
// non-empty one. A tier that errors counts as empty: a broken legacy table
// must not take the detail screen down with it.
func (s *TreatmentService) resolveCases(ctx context.Context, t models.Treatment) []models.Case {
	cases, err := s.CaseRepo.ActiveCasesForTreatment(ctx, t.ID)
	if err != nil {
		s.logWarn("active case lookup for treatment %d failed: %v", t.ID, err)
	}
	if len(cases) > 0 {
		return cases
	}

	cases, err = s.CaseRepo.LegacyCasesForTreatment(ctx, t.ID)
	if err != nil {
		s.logWarn("legacy case lookup for treatment %d failed: %v", t.ID, err)
	}
	if len(cases) > 0 {
		return cases
	}

	all, err := s.CaseRepo.GetAllCases(ctx)
	if err != nil {
		s.logWarn("case title match for treatment %d failed: %v", t.ID, err)
		return nil
	}
	return MatchCasesByTitle(all, t.Title)
}

func (s *TreatmentService) GetAllTreatments(ctx context.Context) ([]models.Treatment, error) {
	treatments, err := s.TreatmentRepo.GetAllTreatments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range treatments {
		models.SortPriceOptions(treatments[i].PriceOptions)
	}
	return treatments, nil
}

func (s *TreatmentService) DeleteTreatment(ctx context.Context, id int) error {
	return s.TreatmentRepo.DeleteTreatment(ctx, id)
}

func (s *TreatmentService) logWarn(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}

func treatmentChanged(current, next models.Treatment) bool {
	return current.Title != next.Title ||
		current.Description != next.Description ||
		current.SortOrder != next.SortOrder ||
		current.ImagePath != next.ImagePath
}

func priceOptionsChanged(current, next []models.PriceOption) bool {
	if len(current) != len(next) {
		return true
	}
	for i := range current {
		c, n := current[i], next[i]
		if c.Label != n.Label || c.Price != n.Price || c.SortOrder != n.SortOrder || c.IsActive != n.IsActive {
			return true
		}
		switch {
		case c.Sessions == nil && n.Sessions == nil:
		case c.Sessions == nil || n.Sessions == nil:
			return true
		case *c.Sessions != *n.Sessions:
			return true
		}
	}
	return false
}

func sameIDSet(current, next []int) bool {
	if len(current) != len(next) {
		return false
	}
	seen := make(map[int]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}
	for _, id := range next {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

func sameIDList(current, next []int) bool {
	if len(current) != len(next) {
		return false
	}
	for i := range current {
		if current[i] != next[i] {
			return false
		}
	}
	return true
}

// dedupeCases drops repeated ids, keeping the first occurrence so tier
// ordering survives.
func dedupeCases(cases []models.Case) []models.Case {
	if len(cases) == 0 {
		return cases
	}
	seen := make(map[int]struct{}, len(cases))
	result := cases[:0]
	for _, c := range cases {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		result = append(result, c)
	}
	return result
}
