package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

const existsPath = "/api/v1/pages/exists"

// existsResponse - ответ GET /api/v1/pages/exists
type existsResponse struct {
	GISID  string    `json:"gisID"`
	Exists bool      `json:"exists"`
	Page   *pageData `json:"page"`
}

type pageData struct {
	ID          flexibleID `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	City        *string    `json:"city"`
	PageContent string     `json:"pageContent"`
	GISID       string     `json:"gisId"`
	Published   bool       `json:"published"`
}

// flexibleID принимает id страницы и числом, и строкой
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("page id: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient создает клиент сервиса страниц контента
func NewClient(cfg *config.ContentConfig, logger *zap.Logger) repository.ContentRepository {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// LookupPage возвращает страницу для внешнего идентификатора места.
// (nil, nil) - страницы нет (exists=false или 404); ошибка - сбой запроса или прочий ответ не 200.
func (c *client) LookupPage(ctx context.Context, externalID string) (*domain.EnrichedPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s?gis_id=%s", c.baseURL, existsPath, url.QueryEscape(externalID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("content service error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var existsResp existsResponse
	if err := json.NewDecoder(resp.Body).Decode(&existsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Content service call finished",
		zap.String("external_id", externalID),
		zap.Bool("exists", existsResp.Exists),
		zap.Duration("elapsed", time.Since(started)))

	if !existsResp.Exists || existsResp.Page == nil {
		return nil, nil
	}

	p := existsResp.Page
	return &domain.EnrichedPage{
		ExternalID: externalID,
		ID:         string(p.ID),
		Title:      p.Title,
		Kind:       p.Type,
		City:       p.City,
		RawContent: p.PageContent,
		Published:  p.Published,
	}, nil
}
