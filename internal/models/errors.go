package models

import (
	"errors"
)

var (
	ErrTreatmentNotFound    = errors.New("models: treatment not found")
	ErrCategoryNotFound     = errors.New("models: improvement category not found")
	ErrCaseNotFound         = errors.New("models: case not found")
	ErrUserNotFound         = errors.New("models: user not found")
	ErrInvalidCredentials   = errors.New("models: invalid credentials")
	ErrNoCategoriesSelected = errors.New("models: no improvement categories selected")
	ErrDuplicateEmail       = errors.New("models: duplicate email")
)
