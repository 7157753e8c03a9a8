package repositories

import (
	"context"
	"database/sql"
	"time"

	"clinicBack/internal/models"
)

var ErrCaseNotFound = models.ErrCaseNotFound

type CaseRepository struct {
	DB *sql.DB
}

const caseColumns = `id, title, description, image_path, sort_order, created_at, updated_at`

func (r *CaseRepository) CreateCase(ctx context.Context, c models.Case) (models.Case, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO cases (title, description, image_path, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		c.Title, c.Description, c.ImagePath, c.SortOrder, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return models.Case{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Case{}, err
	}
	c.ID = int(id)

	return c, nil
}

func (r *CaseRepository) GetCaseByID(ctx context.Context, id int) (models.Case, error) {
	var c models.Case

	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.ImagePath, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Case{}, ErrCaseNotFound
		}
		return models.Case{}, err
	}

	return c, nil
}

func (r *CaseRepository) GetAllCases(ctx context.Context) ([]models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY sort_order ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCases(rows)
}

func (r *CaseRepository) UpdateCase(ctx context.Context, c models.Case) (models.Case, error) {
	c.UpdatedAt = time.Now()

	query := `
		UPDATE cases
		SET title = ?, description = ?, image_path = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.Title, c.Description, c.ImagePath, c.SortOrder, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return models.Case{}, err
	}

	return c, nil
}

func (r *CaseRepository) DeleteCase(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// ActiveCasesForTreatment resolves cases through the current link table,
// active rows only, in display order. Stale links (deleted cases) drop out
// of the join silently.
func (r *CaseRepository) ActiveCasesForTreatment(ctx context.Context, treatmentID int) ([]models.Case, error) {
	query := `
		SELECT c.id, c.title, c.description, c.image_path, c.sort_order, c.created_at, c.updated_at
		FROM cases c
		JOIN treatment_cases tc ON tc.case_id = c.id
		WHERE tc.treatment_id = ? AND tc.is_active = TRUE
		ORDER BY tc.display_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCases(rows)
}

// LegacyCasesForTreatment reads the treatment_improvements table left over
// from an earlier schema. Naming drift: its improvement_id column
// historically held case ids, so it doubled as a case link table. Read-only
// at runtime, kept so pre-migration data still resolves.
func (r *CaseRepository) LegacyCasesForTreatment(ctx context.Context, treatmentID int) ([]models.Case, error) {
	query := `
		SELECT c.id, c.title, c.description, c.image_path, c.sort_order, c.created_at, c.updated_at
		FROM cases c
		JOIN treatment_improvements ti ON ti.improvement_id = c.id
		WHERE ti.treatment_id = ?
		ORDER BY c.sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCases(rows)
}

func scanCases(rows *sql.Rows) ([]models.Case, error) {
	var cases []models.Case
	for rows.Next() {
		var c models.Case
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ImagePath, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
