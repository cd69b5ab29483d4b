package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/domain"
)

const (
	DefaultExchange = "account.events"

	RoutingUserRegistered = "account.user.registered"
	RoutingUserUpdated    = "account.user.updated"

	// How long to wait for the broker confirm.
	confirmWait = 2 * time.Second
)

type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetConn()
	return nil
}

// ---- account.EventPublisher ----

func (p *Publisher) PublishUserRegistered(ctx context.Context, evt account.UserRegisteredEvent) error {
	return p.publishJSON(ctx, RoutingUserRegistered, evt)
}

func (p *Publisher) PublishUserUpdated(ctx context.Context, evt account.UserUpdatedEvent) error {
	return p.publishJSON(ctx, RoutingUserUpdated, evt)
}

// ---- internal ----

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	// Declare topic exchange (idempotent).
	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("exchange declare: %w", err)
	}

	// Enable confirm mode.
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}

	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil {
		return nil
	}
	return p.connect()
}

// buildPublishing wraps payload in a persistent JSON message.
func buildPublishing(routingKey string, payload any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal payload: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         routingKey,
		Timestamp:    now,
		Body:         body,
	}, nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, payload any) error {
	msg, err := buildPublishing(routingKey, payload, time.Now().UTC())
	if err != nil {
		return domain.ErrInternal(err)
	}

	// Ensure there is a deadline to avoid blocking forever.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, confirmWait)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return domain.ErrBrokerUnavailable(err)
	}

	// Drain any stale confirms to avoid mixing results.
drain:
	for {
		select {
		case <-p.confirmCh:
		default:
			break drain
		}
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		// Publish call itself failed (channel/connection level error).
		p.resetConn()
		return domain.ErrBrokerUnavailable(fmt.Errorf("publish failed: %w", err))
	}

	select {
	case conf, ok := <-p.confirmCh:
		if !ok {
			p.resetConn()
			return domain.ErrBrokerUnavailable(fmt.Errorf("rabbitmq channel closed: key=%s", routingKey))
		}
		if !conf.Ack {
			return domain.ErrBrokerUnavailable(fmt.Errorf("rabbitmq nack: key=%s deliveryTag=%d", routingKey, conf.DeliveryTag))
		}
		return nil

	case <-ctx.Done():
		return domain.ErrBrokerUnavailable(fmt.Errorf("rabbitmq confirm: key=%s: %w", routingKey, ctx.Err()))
	}
}

func (p *Publisher) resetConn() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
