package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
)

func newTestClient(url string) *client {
	cfg := &config.ContentConfig{
		BaseURL:        url,
		RequestTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_LookupPage(t *testing.T) {
	t.Run("page exists", func(t *testing.T) {
		var gotQuery, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("gis_id")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"gisID": "{DD0D23A9-B65A-47E7-80F5-74E90EAC2E5C}",
				"exists": true,
				"page": {"id": 17, "title": "Great River Trail", "type": "trail", "city": "Trempealeau",
				         "pageContent": "<p>24 miles</p>", "gisId": "{DD0D23A9-B65A-47E7-80F5-74E90EAC2E5C}", "published": true}
			}`))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).LookupPage(context.Background(), "{DD0D23A9-B65A-47E7-80F5-74E90EAC2E5C}")
		require.NoError(t, err)
		require.NotNil(t, page)

		assert.Equal(t, "/api/v1/pages/exists", gotPath)
		assert.Equal(t, "{DD0D23A9-B65A-47E7-80F5-74E90EAC2E5C}", gotQuery)
		assert.Equal(t, "17", page.ID)
		assert.Equal(t, "Great River Trail", page.Title)
		assert.Equal(t, "trail", page.Kind)
		require.NotNil(t, page.City)
		assert.Equal(t, "Trempealeau", *page.City)
		assert.Equal(t, "<p>24 miles</p>", page.RawContent)
		assert.True(t, page.Published)
		assert.Equal(t, "{DD0D23A9-B65A-47E7-80F5-74E90EAC2E5C}", page.ExternalID)
	})

	t.Run("string page id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"exists": true, "page": {"id": "abc-1", "title": "Park", "published": false}}`))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).LookupPage(context.Background(), "park")
		require.NoError(t, err)
		assert.Equal(t, "abc-1", page.ID)
		assert.Nil(t, page.City)
	})

	t.Run("page does not exist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"gisID": "x", "exists": false}`))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).LookupPage(context.Background(), "x")
		assert.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).LookupPage(context.Background(), "x")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Nil(t, page)
	})

	t.Run("404 is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		page, err := newTestClient(server.URL).LookupPage(context.Background(), "x")
		assert.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"exists": tru`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).LookupPage(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("identifier is escaped", func(t *testing.T) {
		var rawQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"exists": false}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).LookupPage(context.Background(), "a&b=c d")
		require.NoError(t, err)
		assert.Equal(t, "gis_id=a%26b%3Dc+d", rawQuery)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := newTestClient(server.URL).LookupPage(ctx, "x")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewClient_RateLimit(t *testing.T) {
	c := NewClient(&config.ContentConfig{BaseURL: "http://localhost", RateLimit: 5, Burst: 2}, zap.NewNop()).(*client)
	assert.InDelta(t, 5.0, float64(c.limiter.Limit()), 1e-9)
	assert.Equal(t, 2, c.limiter.Burst())

	unlimited := NewClient(&config.ContentConfig{BaseURL: "http://localhost"}, zap.NewNop()).(*client)
	assert.Equal(t, 1, unlimited.limiter.Burst())
}
