package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/delivery/http/handler"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/index"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) LookupPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedPage), args.Error(1)
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

func milesNorth(d float64) float64 {
	return d / (utils.EarthRadiusMiles * math.Pi / 180)
}

func testPlaces() []domain.Place {
	return []domain.Place{
		{Label: "A", Lat: 0, Lon: 0, Kind: domain.PlaceKindFeature, Source: "Trails", ExternalIDs: []string{"A-id"}},
		{Label: "B", Lat: milesNorth(1), Lon: 0, Kind: domain.PlaceKindFeature, Source: "Trails", ExternalIDs: []string{"B-id"}},
		{Label: "C", Lat: milesNorth(2), Lon: 0, Kind: domain.PlaceKindMarker, Source: "Parks", ExternalIDs: []string{"C-id"}},
		{Label: "Far", Lat: milesNorth(40), Lon: 0, Kind: domain.PlaceKindMarker, ExternalIDs: []string{"far-id"}},
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *utils.Meta     `json:"meta"`
	Error *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func setupApp(content *MockContentRepository, stream *MockStreamRepository) *fiber.App {
	return setupAppWithDefaults(content, stream, config.EnrichmentConfig{DefaultRadiusMiles: 5, DefaultMaxResults: 5, Concurrency: 1})
}

func setupAppWithDefaults(content *MockContentRepository, stream *MockStreamRepository, defaults config.EnrichmentConfig) *fiber.App {
	logger := zap.NewNop()

	proximity := usecase.NewProximityUseCase(index.NewPlaceIndex(testPlaces(), logger), logger)
	enrichment := usecase.NewEnrichmentUseCase(proximity, content, usecase.NewLogObserver(logger), logger, 1, 0)
	suggestion := usecase.NewSuggestionUseCase(index.NewLocationIndex([]domain.Location{
		{ID: "1", Name: "Hiking Trail", Type: "Hike", City: "Hikesville"},
	}, logger), logger)

	var streamRepo repository.StreamRepository
	if stream != nil {
		streamRepo = stream
	}

	app := fiber.New()
	placeHandler := handler.NewPlaceHandler(proximity, defaults.DefaultRadiusMiles, logger)
	enrichmentHandler := handler.NewEnrichmentHandler(enrichment, streamRepo, defaults, logger)
	suggestionHandler := handler.NewSuggestionHandler(suggestion, logger)

	app.Get("/api/v1/places/nearby", placeHandler.Nearby)
	app.Get("/api/v1/places/nearby/ids", placeHandler.NearbyIDs)
	app.Get("/api/v1/places/nearby/pages", enrichmentHandler.NearbyPages)
	app.Post("/api/v1/nearby/warm", enrichmentHandler.Warm)
	app.Get("/api/v1/suggest", suggestionHandler.Suggest)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestPlaceHandler_Nearby(t *testing.T) {
	app := setupApp(&MockContentRepository{}, nil)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby?id=A-id&radius=5", nil))
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Places []struct {
			Label         string  `json:"label"`
			DistanceMiles float64 `json:"distance_miles"`
		} `json:"places"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Places, 2)
	assert.Equal(t, "B", data.Places[0].Label)
	assert.InDelta(t, 1.0, data.Places[0].DistanceMiles, 1e-6)
	assert.Equal(t, "C", data.Places[1].Label)
	assert.Equal(t, 2, env.Meta.Total)
}

func TestPlaceHandler_NearbyIDs(t *testing.T) {
	app := setupApp(&MockContentRepository{}, nil)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby/ids?id=A-id", nil))
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		IDs []string `json:"ids"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"B-id", "C-id"}, data.IDs)

	status, env = doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby/ids?id=unknown", nil))
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.IDs)
}

func TestPlaceHandler_Validation(t *testing.T) {
	app := setupApp(&MockContentRepository{}, nil)

	tests := []struct {
		name string
		url  string
		code string
	}{
		{"missing id", "/api/v1/places/nearby", "INVALID_REQUEST"},
		{"zero radius", "/api/v1/places/nearby?id=A-id&radius=0", "INVALID_RADIUS"},
		{"negative radius", "/api/v1/places/nearby?id=A-id&radius=-3", "INVALID_RADIUS"},
		{"radius too large", "/api/v1/places/nearby/ids?id=A-id&radius=501", "INVALID_RADIUS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doRequest(t, app, httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, fiber.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestEnrichmentHandler_NearbyPages(t *testing.T) {
	content := &MockContentRepository{}
	content.On("LookupPage", mock.Anything, "B-id").Return(nil, errors.New("connection refused"))
	content.On("LookupPage", mock.Anything, "C-id").Return(&domain.EnrichedPage{ID: "7", Title: "Perrot State Park", Published: true}, nil)
	app := setupApp(content, nil)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby/pages?id=A-id&radius=5&max=2", nil))
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Pages []struct {
			GlobalID string `json:"global_id"`
			Title    string `json:"title"`
		} `json:"pages"`
		Failed  int  `json:"failed"`
		Partial bool `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Pages, 1)
	assert.Equal(t, "C-id", data.Pages[0].GlobalID)
	assert.Equal(t, "Perrot State Park", data.Pages[0].Title)
	assert.Equal(t, 1, data.Failed)
	assert.Equal(t, 2, env.Meta.Limit)
	assert.False(t, data.Partial)
}

func TestEnrichmentHandler_NearbyPages_TimeoutReturnsPartial(t *testing.T) {
	content := &MockContentRepository{}
	content.On("LookupPage", mock.Anything, "B-id").Return(&domain.EnrichedPage{ID: "3", Title: "Great River Trail"}, nil)
	content.On("LookupPage", mock.Anything, "C-id").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	app := setupAppWithDefaults(content, nil, config.EnrichmentConfig{
		DefaultRadiusMiles: 5,
		DefaultMaxResults:  5,
		Concurrency:        1,
		RequestTimeout:     100 * time.Millisecond,
	})

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby/pages?id=A-id&max=2", nil))
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Pages []struct {
			GlobalID string `json:"global_id"`
		} `json:"pages"`
		Partial bool `json:"partial"`
		Failed  int  `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Partial)
	require.Len(t, data.Pages, 1)
	assert.Equal(t, "B-id", data.Pages[0].GlobalID)
	assert.Equal(t, 0, data.Failed, "interrupted lookup is not counted as a failure")
	assert.Equal(t, 1, env.Meta.Total)
}

func TestEnrichmentHandler_NearbyPages_InvalidMax(t *testing.T) {
	app := setupApp(&MockContentRepository{}, nil)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/places/nearby/pages?id=A-id&max=0", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	assert.Contains(t, env.Error.Details, "max")
}

func TestEnrichmentHandler_Warm(t *testing.T) {
	t.Run("publishes event", func(t *testing.T) {
		stream := &MockStreamRepository{}
		stream.On("PublishToStream", mock.Anything, domain.StreamNearbyWarm, mock.MatchedBy(func(e domain.WarmEvent) bool {
			return e.SeedID == "A-id" && e.RadiusMiles == 5 && e.MaxResults == 3
		})).Return(nil)
		app := setupApp(&MockContentRepository{}, stream)

		req := httptest.NewRequest("POST", "/api/v1/nearby/warm", strings.NewReader(`{"id":"A-id","max":3}`))
		req.Header.Set("Content-Type", "application/json")

		status, env := doRequest(t, app, req)
		assert.Equal(t, fiber.StatusAccepted, status)

		var data struct {
			EventID string `json:"event_id"`
			Stream  string `json:"stream"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.EventID)
		assert.Equal(t, domain.StreamNearbyWarm, data.Stream)
		stream.AssertExpectations(t)
	})

	t.Run("publish failure", func(t *testing.T) {
		stream := &MockStreamRepository{}
		stream.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
		app := setupApp(&MockContentRepository{}, stream)

		req := httptest.NewRequest("POST", "/api/v1/nearby/warm", strings.NewReader(`{"id":"A-id"}`))
		req.Header.Set("Content-Type", "application/json")

		status, env := doRequest(t, app, req)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "STREAM_ERROR", env.Error.Code)
	})

	t.Run("streams disabled", func(t *testing.T) {
		app := setupApp(&MockContentRepository{}, nil)

		req := httptest.NewRequest("POST", "/api/v1/nearby/warm", strings.NewReader(`{"id":"A-id"}`))
		req.Header.Set("Content-Type", "application/json")

		status, _ := doRequest(t, app, req)
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})

	t.Run("missing id", func(t *testing.T) {
		app := setupApp(&MockContentRepository{}, &MockStreamRepository{})

		req := httptest.NewRequest("POST", "/api/v1/nearby/warm", strings.NewReader(`{"radius":2}`))
		req.Header.Set("Content-Type", "application/json")

		status, env := doRequest(t, app, req)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})
}

func TestSuggestionHandler_Suggest(t *testing.T) {
	app := setupApp(&MockContentRepository{}, nil)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/api/v1/suggest?q=hik", nil))
	require.Equal(t, fiber.StatusOK, status)

	var data struct {
		Suggestions []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Suggestions, 3)
	assert.Equal(t, "location", data.Suggestions[0].Kind)
	assert.Equal(t, "category", data.Suggestions[1].Kind)
	assert.Equal(t, "Hike", data.Suggestions[1].Text)
	assert.Equal(t, "city", data.Suggestions[2].Kind)

	for _, target := range []string{"/api/v1/suggest", "/api/v1/suggest?q=", "/api/v1/suggest?q=%20%20%20"} {
		status, env = doRequest(t, app, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, fiber.StatusBadRequest, status, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, "INVALID_QUERY", env.Error.Code, target)
	}
}
