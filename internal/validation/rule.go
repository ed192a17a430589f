// Package validation holds the field constraints of every entity as explicit rule
// tables. Rules are evaluated in declaration order, so the violation list for a given
// input is always the same.
package validation

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"hospital-api/internal/domain"
)

type Rule[T any] struct {
	Field   string
	Valid   func(*T) bool
	Message string
}

func Validate[T any](v *T, rules []Rule[T]) []domain.Violation {
	var out []domain.Violation
	for _, r := range rules {
		if !r.Valid(v) {
			out = append(out, domain.Violation{Field: r.Field, Message: r.Message})
		}
	}
	return out
}

// check turns a violation list into a *domain.ValidationError, or nil when empty.
func check(vs []domain.Violation) error {
	if len(vs) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: vs}
}

var syntax = validator.New()

func IsEmail(s string) bool { return syntax.Var(s, "required,email") == nil }

// IsPhone accepts an optional leading '+', then digits and the separators
// " -.()", with 7 to 15 digits overall.
func IsPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
