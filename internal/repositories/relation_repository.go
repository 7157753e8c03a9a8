package repositories

import (
	"context"
	"database/sql"
	"strings"
)

// RelationTable describes one of the many-to-many link tables. Rows are bare
// identifier pairs; the pair itself is the uniqueness key.
type RelationTable struct {
	Name           string
	EntityCol      string
	CounterpartCol string
}

var (
	TreatmentCategories = RelationTable{Name: "treatment_categories", EntityCol: "treatment_id", CounterpartCol: "category_id"}
	TreatmentCases      = RelationTable{Name: "treatment_cases", EntityCol: "treatment_id", CounterpartCol: "case_id"}
	CaseCategories      = RelationTable{Name: "case_categories", EntityCol: "case_id", CounterpartCol: "category_id"}
)

type RelationRepository struct {
	DB *sql.DB
}

// ListRelations returns the counterpart ids linked to entityID. An unknown
// entityID is not an error, just an empty result.
func (r *RelationRepository) ListRelations(ctx context.Context, table RelationTable, entityID int) ([]int, error) {
	query := `SELECT ` + table.CounterpartCol + ` FROM ` + table.Name + ` WHERE ` + table.EntityCol + ` = ?`
	rows, err := r.DB.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceRelations deletes every link row for entityID and inserts one row
// per counterpart id. The two statements deliberately run outside a
// transaction: a crash in between leaves a brief "no relations" window,
// never duplicate or contradictory rows. The insert is skipped entirely for
// an empty set.
func (r *RelationRepository) ReplaceRelations(ctx context.Context, table RelationTable, entityID int, counterpartIDs []int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM `+table.Name+` WHERE `+table.EntityCol+` = ?`, entityID)
	if err != nil {
		return err
	}
	if len(counterpartIDs) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?),", len(counterpartIDs)), ",")
	args := make([]interface{}, 0, len(counterpartIDs)*2)
	for _, id := range counterpartIDs {
		args = append(args, entityID, id)
	}

	query := `INSERT INTO ` + table.Name + ` (` + table.EntityCol + `, ` + table.CounterpartCol + `) VALUES ` + placeholders
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// ReplaceCaseRelations is the treatment_cases variant: each inserted row is
// stamped with display_order equal to its index in the admin's selection
// order, and is_active true.
func (r *RelationRepository) ReplaceCaseRelations(ctx context.Context, treatmentID int, caseIDs []int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM treatment_cases WHERE treatment_id = ?`, treatmentID)
	if err != nil {
		return err
	}
	if len(caseIDs) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?, ?, ?),", len(caseIDs)), ",")
	args := make([]interface{}, 0, len(caseIDs)*4)
	for i, id := range caseIDs {
		args = append(args, treatmentID, id, i, true)
	}

	query := `INSERT INTO treatment_cases (treatment_id, case_id, display_order, is_active) VALUES ` + placeholders
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// ListCaseRelations returns the case ids linked to a treatment in display
// order, so callers can compare against a selection where order matters.
func (r *RelationRepository) ListCaseRelations(ctx context.Context, treatmentID int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT case_id FROM treatment_cases WHERE treatment_id = ? ORDER BY display_order ASC`, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TreatmentIDsForCategories projects the treatment-category table to the
// distinct treatment ids linked to any of the given categories (OR
// semantics).
func (r *RelationRepository) TreatmentIDsForCategories(ctx context.Context, categoryIDs []int) ([]int, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(categoryIDs)), ",")
	args := make([]interface{}, len(categoryIDs))
	for i, id := range categoryIDs {
		args[i] = id
	}

	query := `SELECT DISTINCT treatment_id FROM treatment_categories WHERE category_id IN (` + placeholders + `)`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
