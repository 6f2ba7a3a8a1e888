package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

type streamRepository struct {
	client    *redis.Client
	blockTime time.Duration
	logger    *zap.Logger
}

// NewStreamRepository создает StreamRepository; blockTime - сколько XReadGroup ждёт новых сообщений
func NewStreamRepository(client *redis.Client, blockTime time.Duration, logger *zap.Logger) repository.StreamRepository {
	if blockTime <= 0 {
		blockTime = time.Second
	}
	return &streamRepository{
		client:    client,
		blockTime: blockTime,
		logger:    logger,
	}
}

// CreateConsumerGroup создаёт consumer group; MKSTREAM создаёт и сам стрим
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает до count новых сообщений; пустой результат, если за blockTime ничего не пришло
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(count),
		Block:    r.blockTime,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream %s: %w", stream, err)
	}

	var messages []domain.StreamMessage
	for _, s := range result {
		messages = append(messages, r.toMessages(stream, s.Messages)...)
	}

	return messages, nil
}

// ClaimPending - XAUTOCLAIM: сообщения упавших или перезапущенных consumer'ов переходят к consumer
func (r *streamRepository) ClaimPending(
	ctx context.Context,
	stream, group, consumer string,
	minIdle time.Duration,
	count int,
) ([]domain.StreamMessage, error) {
	claimed, _, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdle,
		Start:    "0-0",
		Count:    int64(count),
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim pending messages from %s: %w", stream, err)
	}

	if len(claimed) > 0 {
		r.logger.Info("Claimed pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(claimed)))
	}

	return r.toMessages(stream, claimed), nil
}

func (r *streamRepository) toMessages(stream string, raw []redis.XMessage) []domain.StreamMessage {
	messages := make([]domain.StreamMessage, 0, len(raw))
	for _, msg := range raw {
		data, ok := msg.Values["data"].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("stream", stream),
				zap.String("message_id", msg.ID))
		}
		// сообщение без data тоже отдаём: обработчик подтвердит и отбросит его
		messages = append(messages, domain.StreamMessage{ID: msg.ID, Data: data})
	}
	return messages
}

func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		return fmt.Errorf("failed to acknowledge message %s: %w", messageID, err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream кладёт data в поле "data" в виде JSON
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
