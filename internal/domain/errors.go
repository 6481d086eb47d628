package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate marks a calendar date that could not be parsed. It is the
	// only input condition the analytics layer does not recover from.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrModuleDisabled is returned for analyses of a tracker module the user
	// switched off.
	ErrModuleDisabled = errors.New("tracker module disabled")
)
