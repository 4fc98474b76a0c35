package domain

import "errors"

var (
	ErrModNotFound       = errors.New("mod not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotInstalled  = errors.New("game install path not configured")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrEmptyProfileName  = errors.New("profile name is empty")
	ErrProtectedCategory = errors.New("default category cannot be renamed or deleted")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrWorkerUnavailable = errors.New("background worker is gone")
)
