package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRelationRepo(t *testing.T) (*RelationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &RelationRepository{DB: db}, mock
}

func TestReplaceRelationsDeletesThenInserts(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectExec("DELETE FROM treatment_categories WHERE treatment_id").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO treatment_categories").
		WithArgs(7, 1, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReplaceRelations(context.Background(), TreatmentCategories, 7, []int{1, 2}); err != nil {
		t.Fatalf("ReplaceRelations returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceRelationsEmptySetSkipsInsert(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectExec("DELETE FROM case_categories WHERE case_id").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ReplaceRelations(context.Background(), CaseCategories, 3, nil); err != nil {
		t.Fatalf("ReplaceRelations returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceCaseRelationsStampsOrderAndActive(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectExec("DELETE FROM treatment_cases WHERE treatment_id").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO treatment_cases").
		WithArgs(5, 10, 0, true, 5, 20, 1, true).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.ReplaceCaseRelations(context.Background(), 5, []int{10, 20}); err != nil {
		t.Fatalf("ReplaceCaseRelations returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListRelations(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectQuery("SELECT category_id FROM treatment_categories WHERE treatment_id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(1).AddRow(2))

	ids, err := repo.ListRelations(context.Background(), TreatmentCategories, 7)
	if err != nil {
		t.Fatalf("ListRelations returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestListCaseRelationsOrdered(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectQuery("SELECT case_id FROM treatment_cases WHERE treatment_id .+ ORDER BY display_order ASC").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"case_id"}).AddRow(20).AddRow(10))

	ids, err := repo.ListCaseRelations(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListCaseRelations returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 20 || ids[1] != 10 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestTreatmentIDsForCategories(t *testing.T) {
	repo, mock := newRelationRepo(t)

	mock.ExpectQuery("SELECT DISTINCT treatment_id FROM treatment_categories WHERE category_id IN").
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"treatment_id"}).AddRow(1).AddRow(3))

	ids, err := repo.TreatmentIDsForCategories(context.Background(), []int{10, 20})
	if err != nil {
		t.Fatalf("TreatmentIDsForCategories returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("unexpected ids: %v", ids)
	}

	ids, err = repo.TreatmentIDsForCategories(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty input returned error: %v", err)
	}
	if ids != nil {
		t.Fatalf("expected nil for empty input, got %v", ids)
	}
}
