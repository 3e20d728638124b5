// Package repository persists the festival catalog and schedule in MySQL.
package repository

import "errors"

// ErrFilmNotFound is returned when no film has the requested id.
var ErrFilmNotFound = errors.New("film not found")

// ErrDayNotFound is returned when the schedule has no such date.
var ErrDayNotFound = errors.New("schedule day not found")
