package model

import "errors"

// Sentinel kinds for profile construction failures. These are the only
// errors the scoring engine raises for caller input; use errors.Is at the
// transport boundary to translate them into 4xx responses.
var (
	ErrInvalidExperienceLevel = errors.New("invalid experience level")
	ErrInvalidSalaryRange     = errors.New("invalid salary range")
)
