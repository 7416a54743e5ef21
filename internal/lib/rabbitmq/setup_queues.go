package rabbitmq

// ExchangeKind тип обменника для доменных событий.
const ExchangeKind = "topic"

// RoutingUserRegistered ключ маршрутизации события регистрации.
const RoutingUserRegistered = "user.registered"

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAuthQueues возвращает очереди, которые слушают события сервиса.
func GetAuthQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "auth.user.registered", RoutingKey: RoutingUserRegistered},
	}
}
