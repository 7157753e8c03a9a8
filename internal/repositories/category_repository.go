package repositories

import (
	"context"
	"database/sql"
	"time"

	"clinicBack/internal/models"
)

var ErrCategoryNotFound = models.ErrCategoryNotFound

type CategoryRepository struct {
	DB *sql.DB
}

const categoryColumns = `id, name, icon, description, sort_order, is_active, created_at, updated_at`

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.ImprovementCategory) (models.ImprovementCategory, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `
		INSERT INTO improvement_categories (name, icon, description, sort_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Icon, category.Description, category.SortOrder, category.IsActive,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return models.ImprovementCategory{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.ImprovementCategory{}, err
	}
	category.ID = int(id)

	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.ImprovementCategory, error) {
	var category models.ImprovementCategory

	query := `SELECT ` + categoryColumns + ` FROM improvement_categories WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Icon, &category.Description,
		&category.SortOrder, &category.IsActive, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ImprovementCategory{}, ErrCategoryNotFound
		}
		return models.ImprovementCategory{}, err
	}

	return category, nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.ImprovementCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM improvement_categories ORDER BY sort_order ASC`
	return r.queryCategories(ctx, query)
}

// GetActiveCategories is the kiosk-facing list: inactive categories stay
// editable in the back office but never show on the selection screen.
func (r *CategoryRepository) GetActiveCategories(ctx context.Context) ([]models.ImprovementCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM improvement_categories WHERE is_active = TRUE ORDER BY sort_order ASC`
	return r.queryCategories(ctx, query)
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.ImprovementCategory) (models.ImprovementCategory, error) {
	category.UpdatedAt = time.Now()

	query := `
		UPDATE improvement_categories
		SET name = ?, icon = ?, description = ?, sort_order = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Icon, category.Description, category.SortOrder, category.IsActive,
		category.UpdatedAt, category.ID,
	)
	if err != nil {
		return models.ImprovementCategory{}, err
	}

	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM improvement_categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string) ([]models.ImprovementCategory, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ImprovementCategory
	for rows.Next() {
		var c models.ImprovementCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
