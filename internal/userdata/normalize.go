package userdata

import (
	"strings"

	"github.com/baechuer/account-service/internal/domain"
)

// FormatUserData returns the canonical form of a record: names through FormatName,
// email/username/gender lower-cased. Keys absent from the input stay absent.
//
// A nil result with a nil error means v was not record-shaped (nil, a primitive, a slice)
// and there is nothing to format. Only FormatName failures are returned as errors.
func FormatUserData(v any) (Record, error) {
	var in map[string]any
	switch r := v.(type) {
	case Record:
		in = r
	case map[string]any:
		in = r
	case map[string]string:
		in = make(map[string]any, len(r))
		for k, s := range r {
			in[k] = s
		}
	default:
		return nil, nil
	}
	if in == nil {
		return nil, nil
	}

	out := make(Record, len(in))
	for k, val := range in {
		out[k] = val
	}

	for _, f := range []string{FieldFirstName, FieldLastName} {
		if !truthy(out[f]) {
			continue
		}
		name, err := FormatName(out[f])
		if err != nil {
			return nil, err
		}
		out[f] = name
	}

	for _, f := range []string{FieldEmail, FieldUsername, FieldGender} {
		if s, ok := out[f].(string); ok && s != "" {
			out[f] = strings.ToLower(s)
		}
	}

	return out, nil
}

// CanonicalEmail is the form emails are stored and looked up in.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanonicalUsername is the form usernames are stored and looked up in.
func CanonicalUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeUser applies the FormatUserData contract to a typed user. Empty fields are left as is.
func NormalizeUser(u domain.User) (domain.User, error) {
	if u.FirstName != "" {
		name, err := FormatName(u.FirstName)
		if err != nil {
			return domain.User{}, err
		}
		u.FirstName = name
	}
	if u.LastName != "" {
		name, err := FormatName(u.LastName)
		if err != nil {
			return domain.User{}, err
		}
		u.LastName = name
	}
	u.Email = CanonicalEmail(u.Email)
	u.Username = CanonicalUsername(u.Username)
	u.Gender = strings.ToLower(strings.TrimSpace(u.Gender))
	u.MobileNumber = strings.TrimSpace(u.MobileNumber)
	return u, nil
}
