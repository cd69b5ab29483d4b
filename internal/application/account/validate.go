package account

import (
	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

// CheckFields is the quick per-field check used while a form is being filled in.
// Every field in userdata.QuickFields must be present.
func (s *Service) CheckFields(r userdata.Record) (userdata.QuickReport, error) {
	if missing := userdata.MissingFields(r, userdata.QuickFields...); len(missing) > 0 {
		return nil, domain.ErrMissingField(missing[0])
	}
	return userdata.QuickCheck(s.validatePolicy, r), nil
}

// RecordCheck is the full-record verdict plus, when the record passes, its canonical form.
type RecordCheck struct {
	Verdict    userdata.Verdict
	Normalized userdata.Record
}

// ValidateRecord runs the aggregate validator with the policy used for registration.
func (s *Service) ValidateRecord(r userdata.Record) (RecordCheck, error) {
	v := userdata.Validate(s.registerPolicy, r)
	if !v.IsValid {
		return RecordCheck{Verdict: v}, nil
	}

	normalized, err := userdata.FormatUserData(r)
	if err != nil {
		return RecordCheck{}, err
	}
	delete(normalized, userdata.FieldPassword)
	delete(normalized, userdata.FieldConfirmPassword)
	return RecordCheck{Verdict: v, Normalized: normalized}, nil
}
