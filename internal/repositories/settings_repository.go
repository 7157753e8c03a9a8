package repositories

import (
	"context"
	"database/sql"
	"time"

	"clinicBack/internal/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

// GetSettings returns the single branding row. An absent row means "use
// defaults" and is not an error.
func (r *SettingsRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings

	query := `
		SELECT id, clinic_name, tagline, logo_path, primary_color, updated_at
		FROM settings
		WHERE id = 1
	`
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.ClinicName, &s.Tagline, &s.LogoPath, &s.PrimaryColor, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}

	return s, nil
}

// UpsertSettings writes the branding row keyed on the fixed id.
func (r *SettingsRepository) UpsertSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	s.ID = 1
	s.UpdatedAt = time.Now()

	query := `
		INSERT INTO settings (id, clinic_name, tagline, logo_path, primary_color, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			clinic_name = VALUES(clinic_name),
			tagline = VALUES(tagline),
			logo_path = VALUES(logo_path),
			primary_color = VALUES(primary_color),
			updated_at = VALUES(updated_at)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ClinicName, s.Tagline, s.LogoPath, s.PrimaryColor, s.UpdatedAt)
	if err != nil {
		return models.Settings{}, err
	}

	return s, nil
}
