package repository

import "errors"

// Common repository errors
var (
	// ErrWeddingNotFound is returned when a wedding is not found
	ErrWeddingNotFound = errors.New("wedding not found")

	// ErrTableNotFound is returned when a table is not found
	ErrTableNotFound = errors.New("table not found")

	// ErrMemberNotFound is returned when a family member is not found
	ErrMemberNotFound = errors.New("family member not found")

	// ErrSectionNotFound is returned when a checklist section is not found
	ErrSectionNotFound = errors.New("checklist section not found")

	// ErrTaskNotFound is returned when a checklist task is not found
	ErrTaskNotFound = errors.New("checklist task not found")
)
