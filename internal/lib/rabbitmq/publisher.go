package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UserRegisteredEvent событие об успешной регистрации пользователя.
type UserRegisteredEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUserRegisteredEvent собирает событие для только что созданного пользователя.
func NewUserRegisteredEvent(u *models.User, now time.Time) UserRegisteredEvent {
	return UserRegisteredEvent{
		EventID:    uuid.NewString(),
		Type:       RoutingUserRegistered,
		UserID:     u.ID,
		Email:      u.Email,
		OccurredAt: now.UTC(),
	}
}

// Publisher публикует доменные события сервиса в один обменник.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewPublisher создаёт издателя поверх настроенного канала.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// PublishUserRegistered отправляет событие user.registered.
func (p *Publisher) PublishUserRegistered(ctx context.Context, u *models.User) error {
	const op = "rabbitmq.PublishUserRegistered"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := PublishMessage(p.ch, p.exchange, RoutingUserRegistered, NewUserRegisteredEvent(u, time.Now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал издателя.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

// NopPublisher используется, когда брокер не настроен.
type NopPublisher struct{}

// PublishUserRegistered ничего не делает.
func (NopPublisher) PublishUserRegistered(context.Context, *models.User) error { return nil }
