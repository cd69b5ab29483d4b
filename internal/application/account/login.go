package account

import (
	"context"

	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

// Login checks the credentials and issues a session token bound to the user ID.
// An unknown email and a wrong password are reported differently (user_not_found vs
// invalid_credentials), both as 400s.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	const action = "account.login"
	email = userdata.CanonicalEmail(email)
	fields := map[string]string{"email": email}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			err = domain.ErrLoginUserNotFound()
		}
		s.record(ctx, action, err, fields)
		return LoginResult{}, err
	}
	fields["user_id"] = u.ID

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		err = domain.ErrInvalidCredentials()
		s.record(ctx, action, err, fields)
		return LoginResult{}, err
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		err = domain.ErrTokenSignFailed(err)
		s.record(ctx, action, err, fields)
		return LoginResult{}, err
	}

	s.record(ctx, action, nil, fields)
	return LoginResult{User: u.Public(), Token: tok}, nil
}

// VerifyToken validates a bearer token for the auth gate.
func (s *Service) VerifyToken(raw string) (TokenClaims, error) {
	return s.tokens.Verify(raw)
}
