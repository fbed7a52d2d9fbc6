package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewlens-backend/services/reviews"
)

type scrapeRequest struct {
	Brand      string `json:"brand"`
	MaxPages   int    `json:"max_pages"`
	StartPage  int    `json:"start_page"`
	IsNewBrand bool   `json:"is_new_brand"`
}

// handleScrape kicks off a crawl in the background and returns
// immediately. The registry rejects a second crawl of the same brand.
func (s *Server) handleScrape(c echo.Context) error {
	var req scrapeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Brand == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "brand is required")
	}

	brand, err := s.reviews.ResolveBrand(c.Request().Context(), req.Brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	// the crawl outlives the request, so it runs on its own context
	ctx, done, err := s.registry.Begin(context.Background(), brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	go func() {
		defer done()
		count, err := s.reviews.CrawlBrand(ctx, reviews.CrawlRequest{
			Brand:      brand,
			MaxPages:   req.MaxPages,
			StartPage:  req.StartPage,
			IsNewBrand: req.IsNewBrand,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.ErrorContext(ctx, "background crawl failed",
				"brand", brand, "error", err)
			return
		}
		slog.InfoContext(ctx, "background crawl finished",
			"brand", brand, "new_reviews", count)
	}()

	return c.JSON(http.StatusAccepted, map[string]string{
		"brand":  brand,
		"status": "started",
	})
}

func (s *Server) handleRunningScrapes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"running": s.registry.Running(),
	})
}

func (s *Server) handleCancelScrape(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	if !s.registry.Cancel(brand) {
		return echo.NewHTTPError(http.StatusNotFound, "no crawl running for brand")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"brand":  brand,
		"status": "cancelled",
	})
}
