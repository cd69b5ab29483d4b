package userdata

import (
	"fmt"
	"strings"
)

// FieldValidationPolicy decides which values are acceptable for each user field.
// Every method returns the list of violated rules; an empty list means the value passes.
type FieldValidationPolicy interface {
	Name() string
	Username(v any) []string
	Email(v any) []string
	Password(v any) []string
	PersonName(v any, label string) []string
	MobileNumber(v any) []string
	Gender(v any) []string
}

const (
	PolicyLenient = "lenient"
	PolicyStrict  = "strict"
)

// LenientPolicy is the per-field helper rule set: mobile numbers may contain separators
// as long as exactly 11 digits remain, names only need two characters, and passwords
// need no special character.
type LenientPolicy struct {
	Genders GenderSet
}

func NewLenientPolicy() LenientPolicy {
	return LenientPolicy{Genders: BinaryGenders}
}

func (LenientPolicy) Name() string { return PolicyLenient }

func (LenientPolicy) Username(v any) []string {
	if !truthy(v) {
		return []string{"Username is required"}
	}
	if _, ok := v.(string); !ok {
		return []string{"Username must be a string"}
	}
	return []string{}
}

func (LenientPolicy) Email(v any) []string {
	if !IsValidEmail(v) {
		return []string{"Invalid email format"}
	}
	return []string{}
}

func (LenientPolicy) Password(v any) []string {
	if !IsStrongPassword(v) {
		return []string{"Password must be at least 8 characters long and contain uppercase, lowercase, and numbers"}
	}
	return []string{}
}

func (LenientPolicy) PersonName(v any, label string) []string {
	if s, ok := v.(string); ok && s != "" && strings.TrimSpace(s) == "" {
		return []string{fmt.Sprintf("%s is required", label)}
	}
	if !hasMinLength(v, minNameLen) {
		return []string{fmt.Sprintf("%s must be at least 2 characters long", label)}
	}
	return []string{}
}

func (LenientPolicy) MobileNumber(v any) []string {
	if !IsValidMobileNumber(v) {
		return []string{"Mobile number must be exactly 11 digits"}
	}
	return []string{}
}

func (p LenientPolicy) Gender(v any) []string {
	if !IsValidGender(v, p.Genders) {
		return []string{"Invalid gender value"}
	}
	return []string{}
}

// StrictPolicy is the full-record rule set: mobile numbers are an optional '+' and 10 to 15
// digits with no separators, names and usernames are checked for length and characters, and
// passwords need a special character. "other" is an accepted gender.
type StrictPolicy struct {
	Genders GenderSet
}

func NewStrictPolicy() StrictPolicy {
	return StrictPolicy{Genders: ExtendedGenders}
}

func (StrictPolicy) Name() string { return PolicyStrict }

func (StrictPolicy) Username(v any) []string { return UsernameViolations(v) }

func (StrictPolicy) Email(v any) []string {
	if !truthy(v) {
		return []string{"Email is required"}
	}
	if !IsValidEmail(v) {
		return []string{"Invalid email format"}
	}
	return []string{}
}

func (StrictPolicy) Password(v any) []string { return PasswordViolations(v, true) }

func (StrictPolicy) PersonName(v any, label string) []string { return NameViolations(v, label) }

func (StrictPolicy) MobileNumber(v any) []string {
	if !truthy(v) {
		return []string{"Mobile number is required"}
	}
	if !IsValidMobileNumberStrict(v) {
		return []string{"Invalid mobile number format"}
	}
	return []string{}
}

func (p StrictPolicy) Gender(v any) []string {
	if !truthy(v) {
		return []string{"Gender is required"}
	}
	if !IsValidGender(v, p.Genders) {
		return []string{"Invalid gender value"}
	}
	return []string{}
}

// PolicyByName resolves a configured policy name ("lenient" or "strict").
func PolicyByName(name string) (FieldValidationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyLenient:
		return NewLenientPolicy(), nil
	case PolicyStrict:
		return NewStrictPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown validation policy %q", name)
	}
}

func hasMinLength(v any, n int) bool {
	s, ok := v.(string)
	return ok && len([]rune(s)) >= n
}
