// Package userdata holds the rules that decide whether submitted identity data is acceptable
// and how it is canonicalized before it is stored or compared.
//
// Everything in this package is pure: no I/O, no shared mutable state. Functions may be called
// from any number of goroutines.
package userdata

// Record is a raw submitted user record as decoded from a JSON object.
// Values keep their JSON types, so a field may hold a number, a bool or nil.
type Record map[string]any

// Wire names of the record fields.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldMobileNumber    = "mobileNumber"
	FieldGender          = "gender"
)

// RecordFields lists the fields reported by the aggregate validator, in report order.
var RecordFields = []string{
	FieldUsername,
	FieldEmail,
	FieldPassword,
	FieldFirstName,
	FieldLastName,
	FieldMobileNumber,
	FieldGender,
}

// MissingFields returns the names from fields whose value in r is absent or falsy.
func MissingFields(r Record, fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if !truthy(r[f]) {
			missing = append(missing, f)
		}
	}
	return missing
}

// String returns r[key] when it holds a string.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// truthy mirrors the "value was supplied" test used by the record-level rules:
// nil, "", false and numeric zero count as absent.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	default:
		return true
	}
}
