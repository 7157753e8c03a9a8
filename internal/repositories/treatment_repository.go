package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"clinicBack/internal/models"
)

var ErrTreatmentNotFound = models.ErrTreatmentNotFound

type TreatmentRepository struct {
	DB *sql.DB
}

func (r *TreatmentRepository) CreateTreatment(ctx context.Context, treatment models.Treatment) (models.Treatment, error) {
	now := time.Now()
	treatment.CreatedAt = now
	treatment.UpdatedAt = now

	query := `
		INSERT INTO treatments (title, description, sort_order, image_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		treatment.Title, treatment.Description, treatment.SortOrder, treatment.ImagePath,
		treatment.CreatedAt, treatment.UpdatedAt,
	)
	if err != nil {
		return models.Treatment{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Treatment{}, err
	}
	treatment.ID = int(id)

	return treatment, nil
}

func (r *TreatmentRepository) GetTreatmentByID(ctx context.Context, id int) (models.Treatment, error) {
	var t models.Treatment

	query := `
		SELECT id, title, description, sort_order, image_path, created_at, updated_at
		FROM treatments
		WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.SortOrder, &t.ImagePath, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Treatment{}, ErrTreatmentNotFound
		}
		return models.Treatment{}, err
	}

	options, err := r.priceOptionsForTreatments(ctx, []int{t.ID})
	if err != nil {
		return models.Treatment{}, err
	}
	t.PriceOptions = options[t.ID]

	return t, nil
}

func (r *TreatmentRepository) GetAllTreatments(ctx context.Context) ([]models.Treatment, error) {
	query := `
		SELECT id, title, description, sort_order, image_path, created_at, updated_at
		FROM treatments
		ORDER BY sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	treatments, ids, err := scanTreatments(rows)
	if err != nil {
		return nil, err
	}

	options, err := r.priceOptionsForTreatments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range treatments {
		treatments[i].PriceOptions = options[treatments[i].ID]
	}

	return treatments, nil
}

// GetTreatmentsByIDs loads full treatments (with nested price options) for
// the id set, ordered by sort position.
func (r *TreatmentRepository) GetTreatmentsByIDs(ctx context.Context, ids []int) ([]models.Treatment, error) {
	treatments, err := r.GetTreatmentsFlatByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(treatments) == 0 {
		return treatments, nil
	}

	found := make([]int, len(treatments))
	for i, t := range treatments {
		found[i] = t.ID
	}
	options, err := r.priceOptionsForTreatments(ctx, found)
	if err != nil {
		return nil, err
	}
	for i := range treatments {
		treatments[i].PriceOptions = options[treatments[i].ID]
	}

	return treatments, nil
}

// GetTreatmentsFlatByIDs is the degraded path: treatment rows only, no price
// options, so a list page can still render when the nested fetch fails.
func (r *TreatmentRepository) GetTreatmentsFlatByIDs(ctx context.Context, ids []int) ([]models.Treatment, error) {
	if len(ids) == 0 {
		return []models.Treatment{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := `
		SELECT id, title, description, sort_order, image_path, created_at, updated_at
		FROM treatments
		WHERE id IN (` + placeholders + `)
		ORDER BY sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	treatments, _, err := scanTreatments(rows)
	return treatments, err
}

func (r *TreatmentRepository) UpdateTreatment(ctx context.Context, treatment models.Treatment) (models.Treatment, error) {
	treatment.UpdatedAt = time.Now()

	query := `
		UPDATE treatments
		SET title = ?, description = ?, sort_order = ?, image_path = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		treatment.Title, treatment.Description, treatment.SortOrder, treatment.ImagePath,
		treatment.UpdatedAt, treatment.ID,
	)
	if err != nil {
		return models.Treatment{}, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// RowsAffected is also 0 when the row exists but nothing changed;
		// confirm existence before reporting not found.
		if _, err := r.GetTreatmentByID(ctx, treatment.ID); err != nil {
			return models.Treatment{}, err
		}
	}

	return treatment, nil
}

// UpdateTreatmentTitle is the minimal single-field retry used when the full
// update trips the store's trigger-recursion limit.
func (r *TreatmentRepository) UpdateTreatmentTitle(ctx context.Context, id int, title string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE treatments SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now(), id,
	)
	return err
}

func (r *TreatmentRepository) DeleteTreatment(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM treatments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTreatmentNotFound
	}
	return nil
}

// ReplacePriceOptions rewrites the option rows owned by a treatment. Options
// only ever change through the owning treatment's admin form, so a full
// rewrite is simpler than row diffing.
func (r *TreatmentRepository) ReplacePriceOptions(ctx context.Context, treatmentID int, options []models.PriceOption) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM price_options WHERE treatment_id = ?`, treatmentID)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?, ?, ?, ?, ?),", len(options)), ",")
	args := make([]interface{}, 0, len(options)*6)
	for _, o := range options {
		args = append(args, treatmentID, o.Label, o.Sessions, o.Price, o.SortOrder, o.IsActive)
	}

	query := `INSERT INTO price_options (treatment_id, label, sessions, price, sort_order, is_active) VALUES ` + placeholders
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

func (r *TreatmentRepository) priceOptionsForTreatments(ctx context.Context, treatmentIDs []int) (map[int][]models.PriceOption, error) {
	result := make(map[int][]models.PriceOption)
	if len(treatmentIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(treatmentIDs)), ",")
	args := make([]interface{}, len(treatmentIDs))
	for i, id := range treatmentIDs {
		args[i] = id
	}

	query := `
		SELECT id, treatment_id, label, sessions, price, sort_order, is_active
		FROM price_options
		WHERE treatment_id IN (` + placeholders + `)
		ORDER BY sort_order ASC, price ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o models.PriceOption
		if err := rows.Scan(&o.ID, &o.TreatmentID, &o.Label, &o.Sessions, &o.Price, &o.SortOrder, &o.IsActive); err != nil {
			return nil, err
		}
		result[o.TreatmentID] = append(result[o.TreatmentID], o)
	}

	return result, rows.Err()
}

func scanTreatments(rows *sql.Rows) ([]models.Treatment, []int, error) {
	var treatments []models.Treatment
	var ids []int
	for rows.Next() {
		var t models.Treatment
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.SortOrder, &t.ImagePath, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, nil, err
		}
		treatments = append(treatments, t)
		ids = append(ids, t.ID)
	}
	return treatments, ids, rows.Err()
}
