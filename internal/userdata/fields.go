package userdata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperPattern        = regexp.MustCompile(`[A-Z]`)
	lowerPattern        = regexp.MustCompile(`[a-z]`)
	digitPattern        = regexp.MustCompile(`[0-9]`)
	specialPattern      = regexp.MustCompile(`[!@#$%^&*]`)
	nonDigitPattern     = regexp.MustCompile(`\D`)
	elevenDigitsPattern = regexp.MustCompile(`^\d{11}$`)
	strictMobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	usernamePattern     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	namePattern         = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
)

const (
	minPasswordLen = 8
	minUsernameLen = 3
	maxUsernameLen = 30
	minNameLen     = 2
	maxNameLen     = 50
	mobileDigits   = 11
)

// nonEmptyString reports v as a string when it is one and is not "".
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// IsValidEmail accepts a non-empty local@domain.tld string without whitespace.
func IsValidEmail(v any) bool {
	s, ok := nonEmptyString(v)
	if !ok {
		return false
	}
	return emailPattern.MatchString(s)
}

// IsStrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter and a digit.
func IsStrongPassword(v any) bool {
	s, ok := nonEmptyString(v)
	if !ok {
		return false
	}
	return utf8.RuneCountInString(s) >= minPasswordLen &&
		upperPattern.MatchString(s) &&
		lowerPattern.MatchString(s) &&
		digitPattern.MatchString(s)
}

// IsValidMobileNumber is the lenient rule: separators are stripped and exactly
// 11 digits must remain.
func IsValidMobileNumber(v any) bool {
	s, ok := nonEmptyString(v)
	if !ok {
		return false
	}
	digits := nonDigitPattern.ReplaceAllString(s, "")
	return elevenDigitsPattern.MatchString(digits)
}

// IsValidMobileNumberStrict accepts an optional leading '+' and 10 to 15 digits, nothing else.
func IsValidMobileNumberStrict(v any) bool {
	s, ok := nonEmptyString(v)
	if !ok {
		return false
	}
	return strictMobilePattern.MatchString(s)
}

// IsValidGender reports whether v is, ignoring case, one of the accepted values.
func IsValidGender(v any, accepted GenderSet) bool {
	s, ok := nonEmptyString(v)
	if !ok {
		return false
	}
	return accepted.Contains(s)
}

// UsernameViolations returns every broken username rule; an empty result means the value passes.
func UsernameViolations(v any) []string {
	errs := []string{}
	if !truthy(v) {
		return append(errs, "Username is required")
	}
	s, ok := v.(string)
	if !ok {
		return append(errs, "Username must be a string")
	}
	n := utf8.RuneCountInString(s)
	if n < minUsernameLen {
		errs = append(errs, "Username must be at least 3 characters long")
	}
	if n > maxUsernameLen {
		errs = append(errs, "Username must be less than 30 characters")
	}
	if !usernamePattern.MatchString(s) {
		errs = append(errs, "Username can only contain letters, numbers, and underscores")
	}
	return errs
}

// NameViolations checks a first or last name; label is used in the messages ("First name").
func NameViolations(v any, label string) []string {
	errs := []string{}
	if !truthy(v) {
		return append(errs, fmt.Sprintf("%s is required", label))
	}
	s, ok := v.(string)
	if !ok {
		return append(errs, fmt.Sprintf("%s must be a string", label))
	}
	if strings.TrimSpace(s) == "" {
		return append(errs, fmt.Sprintf("%s is required", label))
	}
	n := utf8.RuneCountInString(s)
	if n < minNameLen {
		errs = append(errs, fmt.Sprintf("%s must be at least 2 characters long", label))
	}
	if n > maxNameLen {
		errs = append(errs, fmt.Sprintf("%s must be less than 50 characters", label))
	}
	if !namePattern.MatchString(s) {
		errs = append(errs, fmt.Sprintf("%s can only contain letters, spaces, hyphens, and apostrophes", label))
	}
	return errs
}

// PasswordViolations lists every unmet password requirement. requireSpecial adds the
// "one of !@#$%^&*" rule.
func PasswordViolations(v any, requireSpecial bool) []string {
	errs := []string{}
	if !truthy(v) {
		return append(errs, "Password is required")
	}
	s, ok := v.(string)
	if !ok {
		return append(errs, "Password must be a string")
	}
	if utf8.RuneCountInString(s) < minPasswordLen {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if !upperPattern.MatchString(s) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lowerPattern.MatchString(s) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digitPattern.MatchString(s) {
		errs = append(errs, "Password must contain at least one number")
	}
	if requireSpecial && !specialPattern.MatchString(s) {
		errs = append(errs, "Password must contain at least one special character (!@#$%^&*)")
	}
	return errs
}

// GenderSet is the list of accepted lower-case gender values.
type GenderSet []string

var (
	BinaryGenders   = GenderSet{"male", "female"}
	ExtendedGenders = GenderSet{"male", "female", "other"}
)

func (s GenderSet) Contains(g string) bool {
	g = strings.ToLower(g)
	for _, v := range s {
		if v == g {
			return true
		}
	}
	return false
}
