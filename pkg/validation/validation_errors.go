package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Candidate fields
	"FullName":       "Full name",
	"Headline":       "Headline",
	"AvatarURL":      "Avatar URL",
	"Skills":         "Skills",
	"EducationLevel": "Education level",
	"PreferredAreas": "Preferred areas",
	"ExperienceTier": "Experience",
	"Age":            "Age",
	"Role":           "Role",

	// Preference fields
	"Name":               "Preference name",
	"RequiredSkills":     "Required skills",
	"MinExperienceYears": "Minimum experience (years)",
	"LocationType":       "Location type",
	"HiringLocation":     "Hiring location",
	"MinAge":             "Minimum age",
	"MaxAge":             "Maximum age",
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into a single line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at least %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s: must contain at most %s items", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation are allowed", label)
	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)
	case "experience_tier":
		return fmt.Sprintf("%s: must be one of NONE, UNDER_1Y, ONE_TO_2Y, THREE_TO_5Y, FIVE_PLUS_Y", label)
	case "job_role":
		return fmt.Sprintf("%s: unknown job role %q", label, e.Value())
	case "location_type":
		return fmt.Sprintf("%s: must be one of ONSITE, REMOTE, HYBRID", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-facing label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
