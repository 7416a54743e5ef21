package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

func TestNewUserRegisteredEvent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	u := &models.User{ID: "6f1c1a5e-1111-4222-8333-444455556666", Email: "a@b.com"}

	first := NewUserRegisteredEvent(u, now)
	second := NewUserRegisteredEvent(u, now)

	_, err := uuid.Parse(first.EventID)
	require.NoError(t, err)
	assert.NotEqual(t, first.EventID, second.EventID)
	assert.Equal(t, "user.registered", first.Type)
	assert.Equal(t, u.ID, first.UserID)
	assert.Equal(t, u.Email, first.Email)
	assert.Equal(t, time.UTC, first.OccurredAt.Location())
	assert.True(t, now.Equal(first.OccurredAt))

	body, err := json.Marshal(first)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	for _, key := range []string{"event_id", "type", "user_id", "email", "occurred_at"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, string(body), "password")
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.PublishUserRegistered(context.Background(), &models.User{}))
}

func TestPublishMessage(t *testing.T) {
	amqpURI := amqpURIForTest(t)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer func() {
		if err := ch.Close(); err != nil {
			t.Errorf("failed to close channel: %v", err)
		}
	}()

	queueName := "publish-test"
	_, err = ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	type TestMsg struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	t.Run("success publish and consume", func(t *testing.T) {
		msg := TestMsg{ID: 1, Name: "Hello"}

		err = PublishMessage(ch, "", queueName, msg)
		require.NoError(t, err)

		deliveries, err := ch.Consume(queueName, "test-consumer", true, false, false, false, nil)
		require.NoError(t, err)

		select {
		case d := <-deliveries:
			var got TestMsg
			err := json.Unmarshal(d.Body, &got)
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, "application/json", d.ContentType)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for message")
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		// В json marshal нельзя сериализовать канал
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{
			Ch: make(chan int),
		}

		err := PublishMessage(ch, "", queueName, badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
	})
}

func TestPublisher_PublishUserRegistered(t *testing.T) {
	amqpURI := amqpURIForTest(t)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	exchange := "auth.events.publisher-test"
	ch, err := SetupChannel(conn, exchange, GetAuthQueues())
	require.NoError(t, err)
	publisher := NewPublisher(ch, exchange)
	defer func() { _ = publisher.Close() }()

	consumeCh, err := conn.Channel()
	require.NoError(t, err)
	defer func() { _ = consumeCh.Close() }()

	u := &models.User{ID: uuid.NewString(), Email: "new@example.com"}
	require.NoError(t, publisher.PublishUserRegistered(context.Background(), u))

	deliveries, err := consumeCh.Consume(GetAuthQueues()[0].QueueName, "auth-test", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got UserRegisteredEvent
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, u.ID, got.UserID)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, RoutingUserRegistered, d.RoutingKey)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for user.registered event")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, publisher.PublishUserRegistered(ctx, u), context.Canceled)
}
