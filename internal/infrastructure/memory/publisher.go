package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/baechuer/account-service/internal/application/account"
)

// NoopPublisher logs events instead of sending them. Used when the broker is unavailable in dev.
type NoopPublisher struct {
	log zerolog.Logger
}

func NewNoopPublisher(log zerolog.Logger) *NoopPublisher {
	return &NoopPublisher{log: log.With().Str("component", "noop_publisher").Logger()}
}

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt account.UserRegisteredEvent) error {
	p.log.Debug().Str("user_id", evt.UserID).Str("event", "user.registered").Msg("event dropped")
	return nil
}

func (p *NoopPublisher) PublishUserUpdated(ctx context.Context, evt account.UserUpdatedEvent) error {
	p.log.Debug().
		Str("user_id", evt.UserID).
		Str("event", "user.updated").
		Bool("password_changed", evt.PasswordChanged).
		Msg("event dropped")
	return nil
}
