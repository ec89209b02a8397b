package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAge accepts a non-empty run of ASCII digits. It is the only field
// the agent validates.
func ValidateAge(age string) *ValidationError {
	age = strings.TrimSpace(age)
	if age == "" {
		return &ValidationError{"age", "is required"}
	}
	for _, r := range age {
		if r < '0' || r > '9' {
			return &ValidationError{"age", "must be a number"}
		}
	}
	return nil
}
