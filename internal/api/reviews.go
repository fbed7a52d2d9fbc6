package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"reviewlens-backend/services/analytics"
)

// filterFromQuery builds an analytics filter from the request's query
// parameters. List-valued parameters are comma separated.
func filterFromQuery(c echo.Context) analytics.Filter {
	filter := analytics.Filter{
		Sentiment: c.QueryParam("sentiment"),
		DateFrom:  c.QueryParam("date_from"),
		DateTo:    c.QueryParam("date_to"),
	}
	for _, raw := range splitList(c.QueryParam("ratings")) {
		if rating, err := strconv.Atoi(raw); err == nil {
			filter.Ratings = append(filter.Ratings, rating)
		}
	}
	filter.Categories = splitList(c.QueryParam("categories"))
	return filter
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Server) handleListReviews(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}

	page, err := s.analytics.ListReviews(
		c.Request().Context(), brand, filterFromQuery(c),
		intQueryParam(c, "page", 1), intQueryParam(c, "page_size", 0),
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleAnalytics(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}

	dash, err := s.analytics.BuildDashboard(c.Request().Context(), brand, filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dash)
}

// handleDashboard bundles the aggregates with the first page of reviews so
// the overview renders from a single request.
func (s *Server) handleDashboard(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	filter := filterFromQuery(c)

	dash, err := s.analytics.BuildDashboard(ctx, brand, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	recent, err := s.analytics.ListReviews(ctx, brand, filter, 1, intQueryParam(c, "page_size", 0))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"brand":     brand,
		"dashboard": dash,
		"reviews":   recent,
	})
}
