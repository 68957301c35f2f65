package validation

import (
	"math"
	"strings"
	"time"
)

// ValidateGoalTitle requires a non-blank title of at most 200 characters.
func ValidateGoalTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return newError("title", "title is required")
	}
	if len(trimmed) > 200 {
		return newError("title", "title is too long (max 200 characters)")
	}
	return nil
}

// ValidateGoalValue rejects negative, NaN and infinite amounts.
func ValidateGoalValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newError(field, field+" must be a finite number")
	}
	if v < 0 {
		return newError(field, field+" must not be negative")
	}
	return nil
}

// ValidateDateRange checks that end is not before start when both are set.
func ValidateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return newError("endDate", "endDate must not be before startDate")
	}
	return nil
}
