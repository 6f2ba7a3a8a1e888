package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/delivery/http/handler"
	"github.com/place-discovery/internal/delivery/http/middleware"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
)

// IndexStats - размеры загруженных индексов для health check
type IndexStats struct {
	Places    int `json:"places"`
	Locations int `json:"locations"`
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	placeHandler      *handler.PlaceHandler
	enrichmentHandler *handler.EnrichmentHandler
	suggestionHandler *handler.SuggestionHandler

	gatherer prometheus.Gatherer
	stats    IndexStats
}

// NewServer - gatherer может быть nil, тогда /metrics не регистрируется
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placeHandler *handler.PlaceHandler,
	enrichmentHandler *handler.EnrichmentHandler,
	suggestionHandler *handler.SuggestionHandler,
	gatherer prometheus.Gatherer,
	stats IndexStats,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Place Discovery",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		placeHandler:      placeHandler,
		enrichmentHandler: enrichmentHandler,
		suggestionHandler: suggestionHandler,
		gatherer:          gatherer,
		stats:             stats,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now(),
			"indexes": s.stats,
		})
	})

	// Places
	api.Get("/places/nearby", s.placeHandler.Nearby)
	api.Get("/places/nearby/ids", s.placeHandler.NearbyIDs)

	// Enrichment
	api.Get("/places/nearby/pages", s.enrichmentHandler.NearbyPages)
	api.Post("/nearby/warm", s.enrichmentHandler.Warm)

	// Suggestions
	api.Get("/suggest", s.suggestionHandler.Suggest)
}

// App - доступ к fiber.App (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404, 405, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Int("status", fe.Code), zap.Error(err))
			}
			return utils.SendError(c, errors.New("HTTP_ERROR", fe.Message, fe.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
