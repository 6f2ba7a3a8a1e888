package handler

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/pkg/validator"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/usecase/dto"
)

// EnrichmentHandler - страницы контента для ближайших мест и фоновый прогрев
type EnrichmentHandler struct {
	enrichmentUC *usecase.EnrichmentUseCase
	streamRepo   repository.StreamRepository
	defaults     config.EnrichmentConfig
	logger       *zap.Logger
}

// NewEnrichmentHandler - streamRepo может быть nil, тогда прогрев недоступен
func NewEnrichmentHandler(
	enrichmentUC *usecase.EnrichmentUseCase,
	streamRepo repository.StreamRepository,
	defaults config.EnrichmentConfig,
	logger *zap.Logger,
) *EnrichmentHandler {
	return &EnrichmentHandler{
		enrichmentUC: enrichmentUC,
		streamRepo:   streamRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// NearbyPages godoc
// @Summary Страницы контента для ближайших мест
// @Description Запрашивает страницы для ближайших мест по порядку расстояния, пока не наберётся max найденных. Сбои отдельных запросов пропускаются. При таймауте запроса возвращаются найденные к этому моменту страницы с partial=true.
// @Tags Enrichment
// @Produce json
// @Param id query string true "Глобальный идентификатор seed"
// @Param radius query number false "Радиус в милях" default(5)
// @Param max query int false "Максимум страниц" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyPagesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/nearby/pages [get]
func (h *EnrichmentHandler) NearbyPages(c *fiber.Ctx) error {
	req := dto.NearbyPagesRequest{
		ID:          c.Query("id"),
		RadiusMiles: c.QueryFloat("radius", h.defaults.DefaultRadiusMiles),
		MaxResults:  c.QueryInt("max", h.defaults.DefaultMaxResults),
	}
	if !utils.ValidateRadius(req.RadiusMiles) {
		return utils.SendError(c, errors.ErrInvalidRadius)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	var ctx context.Context = c.Context()
	if h.defaults.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.defaults.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := h.enrichmentUC.Enrich(ctx, req.ID, req.RadiusMiles, req.MaxResults)
	partial := false
	if err != nil {
		if result == nil || !(stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled)) {
			return utils.SendError(c, err)
		}
		// прерванный запрос отдаёт страницы, найденные до прерывания
		h.logger.Warn("Nearby enrichment interrupted, returning partial result",
			zap.String("seed_id", req.ID),
			zap.Int("pages", len(result.Pages)),
			zap.Error(err))
		partial = true
	}

	resp := dto.NewNearbyPagesResponse(result)
	resp.Partial = partial

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:    len(result.Pages),
		Limit:    req.MaxResults,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// Warm godoc
// @Summary Фоновый прогрев кеша страниц
// @Description Ставит событие в стрим; воркер выполнит обогащение и заполнит кеш страниц.
// @Tags Enrichment
// @Accept json
// @Produce json
// @Param request body dto.WarmRequest true "Seed и параметры обогащения"
// @Success 202 {object} utils.SuccessResponse{data=dto.WarmResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/nearby/warm [post]
func (h *EnrichmentHandler) Warm(c *fiber.Ctx) error {
	if h.streamRepo == nil {
		return utils.SendError(c, errors.ErrStreamError.WithDetails(map[string]interface{}{
			"reason": "redis streams are disabled",
		}))
	}

	var req dto.WarmRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if req.RadiusMiles == 0 {
		req.RadiusMiles = h.defaults.DefaultRadiusMiles
	}
	if req.MaxResults == 0 {
		req.MaxResults = h.defaults.DefaultMaxResults
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	event := domain.WarmEvent{
		EventID:     uuid.New(),
		SeedID:      req.ID,
		RadiusMiles: req.RadiusMiles,
		MaxResults:  req.MaxResults,
		RequestedAt: time.Now().UTC(),
	}

	if err := h.streamRepo.PublishToStream(c.Context(), domain.StreamNearbyWarm, event); err != nil {
		h.logger.Error("Failed to publish warm event",
			zap.String("seed_id", req.ID),
			zap.Error(err))
		return utils.SendError(c, errors.ErrStreamError)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.WarmResponse{EventID: event.EventID, Stream: domain.StreamNearbyWarm}, nil)
}
