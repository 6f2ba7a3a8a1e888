package warmup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/worker"
)

const (
	errorBackoff     = time.Second
	emptyQueueSleep  = 100 * time.Millisecond
	defaultClaimIdle = time.Minute
)

// Enricher - обогащение ближайших мест (EnrichmentUseCase)
type Enricher interface {
	Enrich(ctx context.Context, seedID string, radiusMiles float64, maxResults int) (*domain.EnrichmentResult, error)
}

// Worker читает WarmEvent из stream:nearby:warm и прогревает кеш страниц,
// выполняя обогащение для каждого события
type Worker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	enricher   Enricher
	batchSize  int
	claimIdle  time.Duration
}

func NewWorker(
	streamRepo repository.StreamRepository,
	enricher Enricher,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *Worker {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker("nearby-warmup", consumerGroup, logger),
		streamRepo: streamRepo,
		enricher:   enricher,
		batchSize:  batchSize,
		claimIdle:  defaultClaimIdle,
	}
}

// WithClaimIdle - через сколько простоя неподтверждённое сообщение забирается этим воркером
func (w *Worker) WithClaimIdle(d time.Duration) *Worker {
	if d >= 0 {
		w.claimIdle = d
	}
	return w
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting warm-up worker",
		zap.String("stream", domain.StreamNearbyWarm),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize),
		zap.Duration("claim_idle", w.claimIdle))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamNearbyWarm, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.sleep(ctx, errorBackoff)
			continue
		}
		if processed == 0 {
			w.sleep(ctx, emptyQueueSleep)
		}
	}
}

// sleep прерывается остановкой воркера или отменой ctx
func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-w.StopChan():
	case <-ctx.Done():
	}
}

// ProcessBatch обрабатывает одну пачку сообщений и возвращает их количество.
// Сначала забираются зависшие в pending сообщения (свои и чужих consumer'ов), затем новые.
// Каждое сообщение подтверждается после обработки; битые подтверждаются и отбрасываются.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ClaimPending(ctx, domain.StreamNearbyWarm, w.ConsumerGroup(), w.ConsumerName(), w.claimIdle, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending messages: %w", err)
	}

	if len(messages) == 0 {
		messages, err = w.streamRepo.ConsumeBatch(ctx, domain.StreamNearbyWarm, w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
		if err != nil {
			return 0, fmt.Errorf("failed to consume batch: %w", err)
		}
	}

	for i, msg := range messages {
		if err := w.handle(ctx, msg); err != nil {
			// сообщение и остаток пачки остаются в pending; через claimIdle их заберёт ClaimPending
			return i, err
		}
		if err := w.streamRepo.AckMessage(ctx, domain.StreamNearbyWarm, w.ConsumerGroup(), msg.ID); err != nil {
			w.Logger().Warn("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// handle возвращает ошибку только при отмене ctx
func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) error {
	logger := w.Logger()

	var event domain.WarmEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.Valid() {
		logger.Warn("Dropping malformed warm event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return nil
	}

	result, err := w.enricher.Enrich(ctx, event.SeedID, event.RadiusMiles, event.MaxResults)
	if err != nil {
		return fmt.Errorf("warm-up interrupted for %s: %w", event.SeedID, err)
	}

	logger.Info("Warm event processed",
		zap.String("event_id", event.EventID.String()),
		zap.String("seed_id", event.SeedID),
		zap.Int("pages", len(result.Pages)),
		zap.Int("failed", result.Failed))

	return nil
}
