package domain

import "errors"

var (
	ErrEmptyName        = errors.New("empty boss name")
	ErrDuplicateName    = errors.New("boss name already taken")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrNotFound         = errors.New("boss not found")
)
