package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/pkg/validator"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/usecase/dto"
)

// PlaceHandler - обработчик запросов ближайших мест
type PlaceHandler struct {
	proximityUC   *usecase.ProximityUseCase
	defaultRadius float64
	logger        *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(proximityUC *usecase.ProximityUseCase, defaultRadius float64, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		proximityUC:   proximityUC,
		defaultRadius: defaultRadius,
		logger:        logger,
	}
}

// parseNearbyRequest - общий разбор id и radius
func parseNearbyRequest(c *fiber.Ctx, defaultRadius float64) (dto.NearbyRequest, error) {
	req := dto.NearbyRequest{
		ID:          c.Query("id"),
		RadiusMiles: c.QueryFloat("radius", defaultRadius),
	}
	if !utils.ValidateRadius(req.RadiusMiles) {
		return req, errors.ErrInvalidRadius
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// Nearby godoc
// @Summary Места в радиусе от seed
// @Description Возвращает места в радиусе от места с данным глобальным идентификатором, по возрастанию расстояния. Сам seed (и его точные дубликаты) исключается. Неизвестный id даёт пустой список.
// @Tags Places
// @Produce json
// @Param id query string true "Глобальный идентификатор seed"
// @Param radius query number false "Радиус в милях" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/nearby [get]
func (h *PlaceHandler) Nearby(c *fiber.Ctx) error {
	req, err := parseNearbyRequest(c, h.defaultRadius)
	if err != nil {
		return utils.SendError(c, err)
	}

	results := h.proximityUC.Nearby(req.ID, req.RadiusMiles)

	return utils.SendSuccess(c, dto.NewNearbyResponse(req.ID, req.RadiusMiles, results), &utils.Meta{
		Total: len(results),
	})
}

// NearbyIDs godoc
// @Summary Идентификаторы ближайших мест
// @Description Первый глобальный идентификатор каждого ближайшего места, в порядке расстояния. Места без идентификаторов пропускаются.
// @Tags Places
// @Produce json
// @Param id query string true "Глобальный идентификатор seed"
// @Param radius query number false "Радиус в милях" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyIDsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/nearby/ids [get]
func (h *PlaceHandler) NearbyIDs(c *fiber.Ctx) error {
	req, err := parseNearbyRequest(c, h.defaultRadius)
	if err != nil {
		return utils.SendError(c, err)
	}

	ids := h.proximityUC.NearbyIDs(req.ID, req.RadiusMiles)
	if ids == nil {
		ids = []string{}
	}

	return utils.SendSuccess(c, dto.NearbyIDsResponse{SeedID: req.ID, IDs: ids}, &utils.Meta{
		Total: len(ids),
	})
}
