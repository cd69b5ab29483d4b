package account

import (
	"context"
	"time"

	"github.com/baechuer/account-service/internal/domain"
)

/*
UserStore
---------
Persistence port for user records.
Missing records are reported as domain.ErrUserNotFound; infrastructure
failures as domain.ErrStorageUnavailable. Uniqueness of email and username
is enforced by the store (Conflict errors on Insert).
*/
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type Token struct {
	Value     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(subjectID string) (Token, error)
	Verify(raw string) (TokenClaims, error)
}

/*
EventPublisher
--------------
Publishes account lifecycle events to RabbitMQ.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishUserUpdated(ctx context.Context, evt UserUpdatedEvent) error
}

type UserRegisteredEvent struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserUpdatedEvent struct {
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	PasswordChanged bool      `json:"password_changed"`
	OccurredAt      time.Time `json:"occurred_at"`
}
