package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type setKeywordsRequest struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

type retagRequest struct {
	// Brand scopes the backfill; empty means every brand.
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleGetGlobalKeywords(c echo.Context) error {
	kws, err := s.keywords.GlobalKeywords(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, kws)
}

func (s *Server) handleSetGlobalKeywords(c echo.Context) error {
	var req setKeywordsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	err := s.keywords.SetGlobalCategory(c.Request().Context(), req.Category, req.Keywords)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetBrandKeywords(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	kws, err := s.keywords.BrandKeywords(c.Request().Context(), brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, kws)
}

func (s *Server) handleSetBrandKeywords(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	var req setKeywordsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	err = s.keywords.SetBrandCategory(c.Request().Context(), brand, req.Category, req.Keywords)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// handleRetag re-tags stored reviews against a new or changed keyword set
// without re-crawling anything.
func (s *Server) handleRetag(c echo.Context) error {
	var req retagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Category == "" || len(req.Keywords) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "category and keywords are required")
	}

	ctx := c.Request().Context()
	brand := req.Brand
	if brand != "" {
		resolved, err := s.reviews.ResolveBrand(ctx, brand)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		brand = resolved
	}

	updated, err := s.keywords.Retag(ctx, brand, req.Category, req.Keywords)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": updated})
}
