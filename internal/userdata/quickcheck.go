package userdata

// FieldCheck is the live-validation result for one field.
type FieldCheck struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// QuickReport maps field names to their live-validation result.
type QuickReport map[string]FieldCheck

// QuickFields are the fields covered by QuickCheck; all of them are required by its callers.
var QuickFields = []string{
	FieldEmail,
	FieldPassword,
	FieldFirstName,
	FieldLastName,
	FieldMobileNumber,
	FieldGender,
}

// AllValid reports whether every field in the report passed.
func (q QuickReport) AllValid() bool {
	for _, c := range q {
		if !c.IsValid {
			return false
		}
	}
	return true
}

// QuickCheck produces one {isValid, message} pair per field for lightweight callers such as a
// form that validates as the user types. It is not the aggregate verdict: names only need two
// characters here, whatever the policy says, gender accepts "other" under every policy, and each
// field yields a single message.
func QuickCheck(p FieldValidationPolicy, r Record) QuickReport {
	return QuickReport{
		FieldEmail:        check(p.Email(r[FieldEmail]), "Valid email format"),
		FieldPassword:     check(p.Password(r[FieldPassword]), "Password meets requirements"),
		FieldFirstName:    nameCheck(r[FieldFirstName], "Valid first name", "First name must be at least 2 characters long"),
		FieldLastName:     nameCheck(r[FieldLastName], "Valid last name", "Last name must be at least 2 characters long"),
		FieldMobileNumber: check(p.MobileNumber(r[FieldMobileNumber]), "Valid mobile number"),
		FieldGender:       genderCheck(r[FieldGender]),
	}
}

func check(violations []string, okMsg string) FieldCheck {
	if len(violations) == 0 {
		return FieldCheck{IsValid: true, Message: okMsg}
	}
	return FieldCheck{IsValid: false, Message: violations[0]}
}

func nameCheck(v any, okMsg, failMsg string) FieldCheck {
	if hasMinLength(v, minNameLen) {
		return FieldCheck{IsValid: true, Message: okMsg}
	}
	return FieldCheck{IsValid: false, Message: failMsg}
}

func genderCheck(v any) FieldCheck {
	if IsValidGender(v, ExtendedGenders) {
		return FieldCheck{IsValid: true, Message: "Valid gender"}
	}
	return FieldCheck{IsValid: false, Message: "Invalid gender value"}
}
