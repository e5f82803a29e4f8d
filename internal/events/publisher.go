package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kovalevdm/disaster-alert-service/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock.go -package=mocks

const sosEventsChannel = "sos_events"

// Типы событий живого канала
const (
	EventSosNew     = "sos:new"
	EventSosRemoved = "sos:removed"
)

// SosEvent - событие для подключенных real-time клиентов.
// Доставка не гарантируется: отключенные клиенты событие не получат.
type SosEvent struct {
	Type  string             `json:"type"`
	SosID uuid.UUID          `json:"sos_id"`
	Sos   *models.SosRequest `json:"sos,omitempty"`
}

// EventPublisher - интерфейс публикации событий живого канала
type EventPublisher interface {
	Publish(ctx context.Context, event SosEvent) error
}

// RedisEventPublisher - реализация EventPublisher поверх Redis Pub/Sub
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в канал Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event SosEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sos event: %w", err)
	}

	if err := p.redisClient.Publish(ctx, sosEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sos event to Redis: %w", err)
	}
	return nil
}
