package domain

import (
	"fmt"
	"strings"

	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// Priority ranks how pressing a task is.
type Priority string

// Priority constants define the valid priority levels for tasks.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// ValidPriorities returns all valid priority values, most pressing first.
func ValidPriorities() []Priority {
	return []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid checks if the priority is a valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting; lower is more pressing.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// ParsePriority validates s case-insensitively. Empty input yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: priority %q must be one of %v", cerrors.ErrInvalidInput, s, ValidPriorities())
	}
	return p, nil
}
