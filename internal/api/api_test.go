package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"reviewlens-backend/internal/db"
	"reviewlens-backend/lib/scrapers/trustpilot"
	"reviewlens-backend/lib/testutil"
	"reviewlens-backend/services/analytics"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/reports"
	"reviewlens-backend/services/reviews"
	"reviewlens-backend/services/sentiment"

	_ "modernc.org/sqlite"
)

type stubFetcher struct {
	pages map[string][]trustpilot.Review
}

func (f *stubFetcher) FetchPage(ctx context.Context, pageUrl string) ([]trustpilot.Review, error) {
	return f.pages[pageUrl], nil
}

func setupAPI(t *testing.T) (*echo.Echo, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "internal/api",
		DbSchema: db.Schema,
	})

	tagger, err := keywords.NewTagger()
	require.NoError(t, err)
	keywordSvc := keywords.NewService(setup.DB, tagger)
	analyticsSvc := analytics.NewService(setup.DB)
	reviewSvc := reviews.NewService(setup.DB, &stubFetcher{
		pages: map[string][]trustpilot.Review{
			"https://www.trustpilot.com/review/acme.example?page=1": {
				{
					CustomerName: "Alice",
					Text:         "Runs small but lovely colour.",
					Rating:       4,
					Date:         "2025-07-07",
					Link:         "https://www.trustpilot.com/review/1",
				},
			},
		},
	}, sentiment.NewVADER(), keywordSvc, reviews.CrawlConfig{
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	})

	server := NewServer(ServerParams{
		Reviews:   reviewSvc,
		Analytics: analyticsSvc,
		Keywords:  keywordSvc,
		Reports:   reports.NewService(reports.Config{}, analyticsSvc),
		Registry:  reviews.NewRegistry(),
	})
	return server, cleanup
}

func doJSON(t *testing.T, server *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}

func TestBrandEndpoints(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodPost, "/api/brands",
		`{"id": "acme", "source_url": "https://www.trustpilot.com/review/acme.example"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// missing source url is rejected
	rec = doJSON(t, server, http.MethodPost, "/api/brands", `{"id": "bad"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/brands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var brands []reviews.Brand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brands))
	require.Len(t, brands, 1)
	require.Equal(t, "acme", brands[0].ID)

	rec = doJSON(t, server, http.MethodDelete, "/api/brands/acme", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodDelete, "/api/brands/nonexistent", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewAndAnalyticsEndpoints(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodPost, "/api/brands",
		`{"id": "acme", "source_url": "https://www.trustpilot.com/review/acme.example"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// crawl synchronously through the service: the scrape endpoint is
	// async and tested separately
	rec = doJSON(t, server, http.MethodPost, "/api/scrape",
		`{"brand": "acme", "is_new_brand": true, "max_pages": 1}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	waitForReviews(t, server, "acme", 1)

	rec = doJSON(t, server, http.MethodGet, "/api/brands/acme/reviews?page=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page analytics.ReviewPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Alice", page.Reviews[0].CustomerName)

	rec = doJSON(t, server, http.MethodGet, "/api/brands/acme/reviews?ratings=1,2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Zero(t, page.Total)

	rec = doJSON(t, server, http.MethodGet, "/api/brands/acme/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash analytics.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Equal(t, 1, dash.TotalReviews)

	rec = doJSON(t, server, http.MethodGet, "/api/brands/acme/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"dashboard"`)
	require.Contains(t, rec.Body.String(), `"reviews"`)
}

// waitForReviews polls until the background crawl has persisted the
// expected number of reviews.
func waitForReviews(t *testing.T, server *echo.Echo, brand string, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := doJSON(t, server, http.MethodGet,
			fmt.Sprintf("/api/brands/%s/reviews", brand), "")
		if rec.Code == http.StatusOK {
			var page analytics.ReviewPage
			if json.Unmarshal(rec.Body.Bytes(), &page) == nil && page.Total >= want {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d reviews of brand %q", want, brand)
}

func TestScrapeValidation(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodPost, "/api/scrape", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/scrape", `{"brand": "nonexistent"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/brands/nonexistent/cancel", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/scrapes", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestKeywordEndpoints(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodPost, "/api/brands",
		`{"id": "acme", "source_url": "https://www.trustpilot.com/review/acme.example"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/keywords",
		`{"category": "Delivery", "keywords": ["late", "courier"]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/brands/acme/keywords",
		`{"category": "Sizing & Fit", "keywords": ["runs small"]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/keywords", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "courier")

	rec = doJSON(t, server, http.MethodGet, "/api/brands/acme/keywords", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "runs small")

	// empty category is rejected
	rec = doJSON(t, server, http.MethodPost, "/api/keywords",
		`{"category": "", "keywords": ["x"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/update-reviews-keywords",
		`{"brand": "acme", "category": "Delivery", "keywords": ["late"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"updated"`)

	rec = doJSON(t, server, http.MethodPost, "/api/update-reviews-keywords",
		`{"category": "Delivery"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateReportValidation(t *testing.T) {
	server, cleanup := setupAPI(t)
	defer cleanup()

	rec := doJSON(t, server, http.MethodPost, "/api/generate-report", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/generate-report",
		`{"brand": "nonexistent"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
