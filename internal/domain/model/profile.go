// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// ExperienceLevel is a validated career seniority level.
type ExperienceLevel string

// Recognized experience levels, ordered from junior to senior.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// levelLadder orders levels for progression distance checks.
var levelLadder = []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelExecutive}

// ParseExperienceLevel normalizes and validates a level string.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	level := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range levelLadder {
		if level == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidExperienceLevel, s)
}

// Index returns the position of the level on the seniority ladder,
// or -1 for unknown levels.
func (l ExperienceLevel) Index() int {
	for i, known := range levelLadder {
		if l == known {
			return i
		}
	}
	return -1
}

// Levels returns the seniority ladder from junior to senior.
func Levels() []ExperienceLevel {
	ladder := make([]ExperienceLevel, len(levelLadder))
	copy(ladder, levelLadder)
	return ladder
}

// WorkType is a work arrangement preference.
type WorkType string

// Recognized work arrangements.
const (
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkOnsite WorkType = "onsite"
	WorkAny    WorkType = "any"
)

// SalaryRange is an inclusive annual salary band.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// UserProfile describes the candidate a recommendation request is scored
// against. Built once per request via NewUserProfile and never mutated.
type UserProfile struct {
	Skills         []string        `json:"skills"`
	Experience     ExperienceLevel `json:"experience_level"`
	PreferredRoles []string        `json:"preferred_roles"`
	Location       string          `json:"location,omitempty"`
	Salary         *SalaryRange    `json:"salary_range,omitempty"`
	WorkType       WorkType        `json:"work_type,omitempty"`
}

// ProfileOption applies an optional field to a profile under construction.
type ProfileOption func(*UserProfile)

// WithLocation sets the candidate's location.
func WithLocation(location string) ProfileOption {
	return func(p *UserProfile) {
		p.Location = strings.TrimSpace(location)
	}
}

// WithSalaryRange sets the desired salary band.
func WithSalaryRange(minSalary, maxSalary int) ProfileOption {
	return func(p *UserProfile) {
		p.Salary = &SalaryRange{Min: minSalary, Max: maxSalary}
	}
}

// WithWorkType sets the preferred work arrangement.
func WithWorkType(wt WorkType) ProfileOption {
	return func(p *UserProfile) {
		if wt != "" {
			p.WorkType = wt
		}
	}
}

// NewUserProfile validates and builds a profile. This is the only
// constructor in the engine that fails: an unknown experience level or an
// inverted salary range is a caller bug, not a scoring anomaly.
// Skills and preferred roles are lowercased and trimmed; empty entries are
// dropped.
func NewUserProfile(skills []string, experience string, preferredRoles []string, opts ...ProfileOption) (UserProfile, error) {
	level, err := ParseExperienceLevel(experience)
	if err != nil {
		return UserProfile{}, err
	}

	p := UserProfile{
		Skills:         cleanTerms(skills),
		Experience:     level,
		PreferredRoles: cleanTerms(preferredRoles),
		WorkType:       WorkAny,
	}
	for _, opt := range opts {
		opt(&p)
	}

	if p.Salary != nil && p.Salary.Min > p.Salary.Max {
		return UserProfile{}, fmt.Errorf("%w: min %d > max %d", ErrInvalidSalaryRange, p.Salary.Min, p.Salary.Max)
	}
	return p, nil
}

// cleanTerms lowercases and trims each term, dropping empties.
func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
