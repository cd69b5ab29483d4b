package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

// Register creates an account. Checks run in a fixed order and stop at the first failure:
// confirmation mismatch, field rules, email uniqueness, username uniqueness.
// Nothing is hashed or stored before all of them pass.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	const action = "account.register"
	fields := map[string]string{
		"email":    in.Email,
		"username": in.Username,
	}

	if in.Password != in.ConfirmPassword {
		err := domain.ErrPasswordMismatch()
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	if err := userdata.Validate(s.registerPolicy, in.Record()).Err(); err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	u, err := userdata.NormalizeUser(domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		MobileNumber: in.MobileNumber,
		Gender:       in.Gender,
	})
	if err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	if err := s.ensureAvailable(ctx, u); err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		err = domain.ErrHashFailed(err)
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	now := s.now().UTC()
	u.ID = uuid.NewString()
	u.PasswordHash = hash
	u.CreatedAt = now
	u.UpdatedAt = now

	created, err := s.users.Insert(ctx, u)
	if err != nil {
		s.record(ctx, action, err, fields)
		return domain.User{}, err
	}

	fields["user_id"] = created.ID
	s.record(ctx, action, nil, fields)

	s.publish(ctx, "account.publish_registered", created.ID, s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:     created.ID,
		Username:   created.Username,
		Email:      created.Email,
		OccurredAt: now,
	}))

	return created.Public(), nil
}

// ensureAvailable reports a Conflict when the email or username is already registered.
// The store's unique constraints still catch concurrent registrations on Insert.
func (s *Service) ensureAvailable(ctx context.Context, u domain.User) error {
	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return err
	}

	if _, err := s.users.FindByUsername(ctx, u.Username); err == nil {
		return domain.ErrUsernameAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return err
	}
	return nil
}

// publish records a failed event publication. The account change is already committed,
// so the caller's request still succeeds.
func (s *Service) publish(ctx context.Context, action, userID string, err error) {
	if err == nil {
		return
	}
	s.record(ctx, action, err, map[string]string{
		"user_id": userID,
		"error":   err.Error(),
	})
}
