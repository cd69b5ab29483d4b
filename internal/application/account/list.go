package account

import (
	"context"

	"github.com/baechuer/account-service/internal/domain"
)

// List returns every account with the password hash removed.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
