package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/restaurant-discovery/internal/domain"
	"github.com/restaurant-discovery/internal/domain/repository"
	apperrors "github.com/restaurant-discovery/internal/pkg/errors"
	"github.com/restaurant-discovery/internal/usecase"
	"github.com/restaurant-discovery/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// CoordsBackfillWorker догеокодирует заведения без координат по событиям из стрима
type CoordsBackfillWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	listingRepo  repository.ListingRepository
	geocodeUC    *usecase.GeocodeUseCase
	consumerName string
	maxRetries   int
}

// NewCoordsBackfillWorker создает новый CoordsBackfillWorker
func NewCoordsBackfillWorker(
	streamRepo repository.StreamRepository,
	listingRepo repository.ListingRepository,
	geocodeUC *usecase.GeocodeUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CoordsBackfillWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CoordsBackfillWorker{
		BaseWorker:   worker.NewBaseWorker("coords-backfill", consumerGroup, logger),
		streamRepo:   streamRepo,
		listingRepo:  listingRepo,
		geocodeUC:    geocodeUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *CoordsBackfillWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CoordsBackfillWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCoordsBackfill, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений
// Возвращает количество обработанных сообщений
func (w *CoordsBackfillWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamCoordsBackfill,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch",
		zap.Int("message_count", len(messages)))

	messageIDs := make([]string, 0, len(messages))
	success := 0
	failed := 0

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamCoordsBackfill, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.processEvent(ctx, event); err != nil {
			failed++
		} else {
			success++
		}
		messageIDs = append(messageIDs, msg.ID)
	}

	// ACK всех обработанных сообщений
	if err := w.streamRepo.AckMessages(ctx, domain.StreamCoordsBackfill, w.ConsumerGroup(), messageIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
		// Не критично - сообщения будут переобработаны
	}

	logger.Info("Batch processed",
		zap.Int("processed", len(messageIDs)),
		zap.Int("success", success),
		zap.Int("errors", failed))

	return len(messages), nil
}

// processEvent геокодирует одно заведение и публикует результат
func (w *CoordsBackfillWorker) processEvent(ctx context.Context, event *domain.CoordsBackfillEvent) error {
	logger := w.Logger()

	if !event.HasAddress() {
		logger.Warn("Event has no address to geocode",
			zap.String("listing_id", event.ListingID.String()))
		return w.publishDone(ctx, &domain.CoordsDoneEvent{
			ListingID: event.ListingID,
			Error:     "no address to geocode",
		})
	}

	pos, err := w.resolveWithRetry(ctx, event.Address, event.City)
	if err != nil {
		logger.Warn("Geocoding failed",
			zap.String("listing_id", event.ListingID.String()),
			zap.String("address", event.Address),
			zap.Error(err))
		_ = w.publishDone(ctx, &domain.CoordsDoneEvent{
			ListingID: event.ListingID,
			Error:     err.Error(),
		})
		return err
	}

	if err := w.listingRepo.UpdateCoordinates(ctx, event.ListingID, *pos); err != nil {
		logger.Error("Failed to save coordinates",
			zap.String("listing_id", event.ListingID.String()),
			zap.Error(err))
		_ = w.publishDone(ctx, &domain.CoordsDoneEvent{
			ListingID: event.ListingID,
			Error:     err.Error(),
		})
		return err
	}

	logger.Debug("Coordinates backfilled",
		zap.String("listing_id", event.ListingID.String()),
		zap.Float64("lat", pos.Lat),
		zap.Float64("lng", pos.Lng))

	return w.publishDone(ctx, &domain.CoordsDoneEvent{
		ListingID: event.ListingID,
		Position:  pos,
	})
}

// resolveWithRetry повторяет геокодирование до maxRetries раз
func (w *CoordsBackfillWorker) resolveWithRetry(ctx context.Context, address, city string) (*domain.Position, error) {
	var lastErr error
	attempts := w.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		pos, err := w.geocodeUC.ResolveAddress(ctx, address, city)
		if err == nil {
			return pos, nil
		}
		lastErr = err

		// Адрес не найден - повторять бессмысленно
		if errors.Is(err, apperrors.ErrGeocodeNoResult) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}

	return nil, lastErr
}

func (w *CoordsBackfillWorker) publishDone(ctx context.Context, event *domain.CoordsDoneEvent) error {
	if err := w.streamRepo.PublishToStream(ctx, domain.StreamCoordsDone, event); err != nil {
		w.Logger().Error("Failed to publish done event",
			zap.String("listing_id", event.ListingID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// parseMessage парсит сообщение из стрима в CoordsBackfillEvent
func (w *CoordsBackfillWorker) parseMessage(msg domain.StreamMessage) (*domain.CoordsBackfillEvent, error) {
	data, ok := msg.Data["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.CoordsBackfillEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
