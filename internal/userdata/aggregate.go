package userdata

import (
	"reflect"

	"github.com/baechuer/account-service/internal/domain"
)

// Verdict is the aggregate outcome for a full record.
// Errors holds one list per field in RecordFields; an empty list means the field passed.
type Verdict struct {
	IsValid bool                `json:"isValid"`
	Errors  map[string][]string `json:"errors"`
}

// Err returns nil for a valid verdict, otherwise a validation_failed error carrying
// the fields that have messages.
func (v Verdict) Err() error {
	if v.IsValid {
		return nil
	}
	fields := make(map[string][]string)
	for f, msgs := range v.Errors {
		if len(msgs) > 0 {
			fields[f] = append([]string(nil), msgs...)
		}
	}
	return domain.ErrValidationFailed(fields)
}

// Validate runs every field rule of p against r. It never stops at the first failing field:
// callers render the complete set. A password that differs from confirmPassword adds
// "Passwords do not match" to the password list.
func Validate(p FieldValidationPolicy, r Record) Verdict {
	errs := map[string][]string{
		FieldUsername:     p.Username(r[FieldUsername]),
		FieldEmail:        p.Email(r[FieldEmail]),
		FieldPassword:     p.Password(r[FieldPassword]),
		FieldFirstName:    p.PersonName(r[FieldFirstName], "First name"),
		FieldLastName:     p.PersonName(r[FieldLastName], "Last name"),
		FieldMobileNumber: p.MobileNumber(r[FieldMobileNumber]),
		FieldGender:       p.Gender(r[FieldGender]),
	}

	if !reflect.DeepEqual(r[FieldPassword], r[FieldConfirmPassword]) {
		errs[FieldPassword] = append(errs[FieldPassword], "Passwords do not match")
	}

	valid := true
	for _, f := range RecordFields {
		if errs[f] == nil {
			errs[f] = []string{}
		}
		if len(errs[f]) > 0 {
			valid = false
		}
	}

	return Verdict{IsValid: valid, Errors: errs}
}
