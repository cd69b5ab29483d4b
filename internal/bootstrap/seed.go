package bootstrap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

type seedUser struct {
	Username  string
	Email     string
	Pass      string
	FirstName string
	LastName  string
	Mobile    string
	Gender    string
}

var devSeeds = []seedUser{
	{Username: "demo_admin", Email: "admin@example.com", Pass: "AdminPassw0rd!", FirstName: "ada", LastName: "admin", Mobile: "+201000000001", Gender: "female"},
	{Username: "demo_user", Email: "user@example.com", Pass: "UserPassw0rd!", FirstName: "ugo", LastName: "user", Mobile: "+201000000002", Gender: "male"},
}

// SeedUsers inserts the demo accounts. Existing accounts are left alone, so it is restart safe.
// It returns how many accounts were created.
func SeedUsers(ctx context.Context, users account.UserStore, hasher account.PasswordHasher, log zerolog.Logger) int {
	created := 0
	for _, s := range devSeeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Warn().Err(err).Str("username", s.Username).Msg("seed hash failed")
			continue
		}

		u, err := userdata.NormalizeUser(domain.User{
			Username:     s.Username,
			Email:        s.Email,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			MobileNumber: s.Mobile,
			Gender:       s.Gender,
		})
		if err != nil {
			log.Warn().Err(err).Str("username", s.Username).Msg("seed normalize failed")
			continue
		}
		now := time.Now().UTC()
		u.ID = uuid.NewString()
		u.PasswordHash = hash
		u.CreatedAt = now
		u.UpdatedAt = now

		if _, err := users.Insert(ctx, u); err != nil {
			if domain.KindOf(err) != domain.KindConflict {
				log.Warn().Err(err).Str("username", s.Username).Msg("seed insert failed")
			}
			continue
		}
		created++
	}

	log.Info().Int("created", created).Msg("dev users seeded")
	return created
}
