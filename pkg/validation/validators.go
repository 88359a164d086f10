package validation

import (
	"regexp"
	"unicode"

	"talent-network-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
var nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("experience_tier", ValidExperienceTier)
	_ = v.RegisterValidation("job_role", ValidJobRole)
	_ = v.RegisterValidation("location_type", ValidLocationType)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}

func ValidExperienceTier(fl validator.FieldLevel) bool {
	val := domain.ExperienceTier(fl.Field().String())
	for _, tier := range domain.ExperienceTiers {
		if val == tier {
			return true
		}
	}
	return false
}

func ValidJobRole(fl validator.FieldLevel) bool {
	val := domain.JobRole(fl.Field().String())
	for _, role := range domain.JobRoles {
		if val == role {
			return true
		}
	}
	return false
}

func ValidLocationType(fl validator.FieldLevel) bool {
	val := domain.LocationType(fl.Field().String())
	for _, lt := range domain.LocationTypes {
		if val == lt {
			return true
		}
	}
	return false
}
