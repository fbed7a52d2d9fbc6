package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewlens-backend/services/analytics"
)

type generateReportRequest struct {
	Brand  string           `json:"brand"`
	Filter analytics.Filter `json:"filter"`
}

func (s *Server) handleGenerateReport(c echo.Context) error {
	var req generateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Brand == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "brand is required")
	}

	ctx := c.Request().Context()
	brand, err := s.reviews.ResolveBrand(ctx, req.Brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	summary, err := s.reports.Generate(ctx, brand, req.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"brand":  brand,
		"report": summary,
	})
}
