package account

import (
	"context"

	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

var updateRequired = []string{
	userdata.FieldEmail,
	userdata.FieldFirstName,
	userdata.FieldLastName,
	userdata.FieldMobileNumber,
	userdata.FieldGender,
}

// Update overwrites the profile of the account identified by email.
// The password is re-hashed only when one is supplied and it differs from the stored value.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.User, error) {
	const action = "account.update"
	fields := map[string]string{"email": in.Email}

	rec := in.Record()
	if missing := userdata.MissingFields(rec, updateRequired...); len(missing) > 0 {
		err := domain.ErrMissingField(missing[0])
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	p := s.registerPolicy
	violations := map[string][]string{}
	collect(violations, userdata.FieldFirstName, p.PersonName(in.FirstName, "First name"))
	collect(violations, userdata.FieldLastName, p.PersonName(in.LastName, "Last name"))
	collect(violations, userdata.FieldMobileNumber, p.MobileNumber(in.MobileNumber))
	collect(violations, userdata.FieldGender, p.Gender(in.Gender))
	if len(violations) > 0 {
		err := domain.ErrValidationFailed(violations)
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	u, err := s.users.FindByEmail(ctx, userdata.CanonicalEmail(in.Email))
	if err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}
	fields["user_id"] = u.ID

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.MobileNumber = in.MobileNumber
	u.Gender = in.Gender
	u, err = userdata.NormalizeUser(u)
	if err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	passwordChanged := false
	if in.Password != "" && in.Password != u.PasswordHash {
		if msgs := p.Password(in.Password); len(msgs) > 0 {
			err := domain.ErrValidationFailed(map[string][]string{userdata.FieldPassword: msgs})
			s.record(ctx, action, err, fields)
			return domain.User{}, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			err = domain.ErrHashFailed(err)
			s.record(ctx, action, err, fields)
			return domain.User{}, err
		}
		u.PasswordHash = hash
		passwordChanged = true
	}
	u.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	if passwordChanged {
		fields["password_changed"] = "true"
	}
	s.record(ctx, action, nil, fields)

	s.publish(ctx, "account.publish_updated", updated.ID, s.pub.PublishUserUpdated(ctx, UserUpdatedEvent{
		UserID:          updated.ID,
		Email:           updated.Email,
		PasswordChanged: passwordChanged,
		OccurredAt:      u.UpdatedAt,
	}))

	return updated.Public(), nil
}

func collect(dst map[string][]string, field string, msgs []string) {
	if len(msgs) > 0 {
		dst[field] = msgs
	}
}
