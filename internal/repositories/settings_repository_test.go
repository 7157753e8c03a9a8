package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"clinicBack/internal/models"
)

func TestGetSettingsMissingRowReturnsDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := &SettingsRepository{DB: db}

	mock.ExpectQuery("SELECT id, clinic_name, tagline, logo_path, primary_color, updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_name", "tagline", "logo_path", "primary_color", "updated_at"}))

	s, err := repo.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if s.ID != 1 || s.ClinicName == "" || s.PrimaryColor == "" {
		t.Fatalf("expected populated defaults, got %#v", s)
	}
}

func TestUpsertSettingsForcesFixedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := &SettingsRepository{DB: db}

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("Glow Clinic", "Look better", "settings/logo.jpg", "#102030", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s, err := repo.UpsertSettings(context.Background(), models.Settings{
		ID:           42,
		ClinicName:   "Glow Clinic",
		Tagline:      "Look better",
		LogoPath:     "settings/logo.jpg",
		PrimaryColor: "#102030",
	})
	if err != nil {
		t.Fatalf("UpsertSettings returned error: %v", err)
	}
	if s.ID != 1 {
		t.Errorf("id = %d, want the fixed row id 1", s.ID)
	}
	if s.UpdatedAt.IsZero() || time.Since(s.UpdatedAt) > time.Minute {
		t.Errorf("UpdatedAt not stamped: %v", s.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
