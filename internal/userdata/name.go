package userdata

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baechuer/account-service/internal/domain"
)

// FormatName trims v and returns it with the first character upper-cased and the rest
// lower-cased. It is the only place name casing is decided.
//
// Errors: invalid_argument when v is not a string or is "", empty_value when nothing is left
// after trimming.
func FormatName(v any) (string, error) {
	name, ok := v.(string)
	if !ok || name == "" {
		return "", domain.ErrInvalidArgument("name", "name must be a non-empty string")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrEmptyValue("name")
	}

	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:]), nil
}

// UserInitials returns the upper-cased first letters of first and last name, or "" unless both
// are strings that are non-empty after trimming.
func UserInitials(firstName, lastName any) string {
	first, ok := firstName.(string)
	if !ok {
		return ""
	}
	last, ok := lastName.(string)
	if !ok {
		return ""
	}

	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return ""
	}

	f, _ := utf8.DecodeRuneInString(first)
	l, _ := utf8.DecodeRuneInString(last)
	return string(unicode.ToUpper(f)) + string(unicode.ToUpper(l))
}
