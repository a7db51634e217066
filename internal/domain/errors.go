package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict with current state")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownRole      = errors.New("unknown role")

	// Rechazos locales: el cliente corta la acción antes de enviar cualquier request.
	ErrAlreadyApplied    = errors.New("already applied to this job")
	ErrRequestInFlight   = errors.New("a request for this item is already in progress")
	ErrJobNotOpen        = errors.New("job is not open for applications")
	ErrNotPDF            = errors.New("please upload a PDF file")
	ErrFileTooLarge      = errors.New("file size should be less than 5MB")
	ErrInvalidTransition = errors.New("status transition not available")
	ErrProtectedAccount  = errors.New("admin accounts cannot be blocked or deleted")
)
