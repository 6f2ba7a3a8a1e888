package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/pkg/validator"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/usecase/dto"
)

type SuggestionHandler struct {
	suggestionUC *usecase.SuggestionUseCase
	logger       *zap.Logger
}

func NewSuggestionHandler(suggestionUC *usecase.SuggestionUseCase, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUC: suggestionUC,
		logger:       logger,
	}
}

// Suggest godoc
// @Summary Подсказки для строки поиска
// @Description До 8 подсказок: локации, затем категории, затем города. Совпадение без учёта регистра, по подстроке, префиксу или с опечатками.
// @Tags Search
// @Produce json
// @Param q query string true "Строка поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.SuggestResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/suggest [get]
func (h *SuggestionHandler) Suggest(c *fiber.Ctx) error {
	req := dto.SuggestRequest{Query: strings.TrimSpace(c.Query("q"))}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidQuery)
	}

	suggestions := h.suggestionUC.Suggest(req.Query)

	return utils.SendSuccess(c, dto.NewSuggestResponse(req.Query, suggestions), &utils.Meta{
		Total: len(suggestions),
		Limit: usecase.MaxSuggestions,
	})
}
